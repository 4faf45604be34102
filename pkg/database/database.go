package database

import (
	"fmt"
	"log"

	"educatif_backend/internal/config"
	"educatif_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.Eleve{},
		&model.Admin{},
		&model.Question{},
		&model.Reponse{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedAdmin(db, &cfg.Admin); err != nil {
		return nil, err
	}
	seedQuestions(db)

	return db, nil
}

// seedAdmin creates the bootstrap admin account when the table is empty.
func seedAdmin(db *gorm.DB, cfg *config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	var count int64
	db.Model(&model.Admin{}).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.Admin{
		Email:    cfg.Email,
		Password: string(hashed),
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	log.Printf("Bootstrap admin created (%s)", cfg.Email)
	return nil
}

// seedQuestions inserts a small sample bank on an empty questions table.
func seedQuestions(db *gorm.DB) {
	var count int64
	db.Model(&model.Question{}).Count(&count)
	if count > 0 {
		return
	}

	samples := []model.Question{
		{
			Age:          7,
			Niveau:       "CE1",
			Question:     "Combien font 5 + 3 ?",
			Choix:        []string{"6", "7", "8", "9"},
			BonneReponse: "8",
		},
		{
			Age:          7,
			Niveau:       "CE1",
			Question:     "Quel est le premier mois de l'année ?",
			Choix:        []string{"Février", "Janvier", "Mars", "Décembre"},
			BonneReponse: "Janvier",
		},
		{
			Age:          8,
			Niveau:       "CE2",
			Question:     "Combien font 7 × 6 ?",
			Choix:        []string{"40", "42", "46", "48"},
			BonneReponse: "42",
		},
	}
	for _, q := range samples {
		db.Create(&q)
	}
}
