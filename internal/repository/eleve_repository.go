package repository

import (
	"educatif_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EleveRepository struct {
	DB *gorm.DB
}

func NewEleveRepository(db *gorm.DB) *EleveRepository {
	return &EleveRepository{DB: db}
}

func (r *EleveRepository) Create(eleve *model.Eleve) error {
	return r.DB.Create(eleve).Error
}

func (r *EleveRepository) FindByID(id uint) (*model.Eleve, error) {
	var eleve model.Eleve
	err := r.DB.First(&eleve, id).Error
	return &eleve, err
}

func (r *EleveRepository) FindByEmail(email string) (*model.Eleve, error) {
	var eleve model.Eleve
	err := r.DB.Where("email = ?", email).First(&eleve).Error
	return &eleve, err
}

func (r *EleveRepository) FindAll() ([]model.Eleve, error) {
	var eleves []model.Eleve
	err := r.DB.Find(&eleves).Error
	return eleves, err
}

func (r *EleveRepository) Update(eleve *model.Eleve) error {
	return r.DB.Save(eleve).Error
}

func (r *EleveRepository) Delete(id uint) error {
	res := r.DB.Delete(&model.Eleve{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByIDForUpdate loads a student under a SELECT ... FOR UPDATE row lock.
// Must be called inside a transaction; serializes concurrent progression
// updates for the same student.
func (r *EleveRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*model.Eleve, error) {
	var eleve model.Eleve
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&eleve, id).Error
	return &eleve, err
}

// UpdateLocked runs fn on the student inside one transaction with the row
// locked, then persists the result. The returned record reflects fn's changes.
func (r *EleveRepository) UpdateLocked(id uint, fn func(eleve *model.Eleve) error) (*model.Eleve, error) {
	var eleve *model.Eleve
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		eleve, err = r.FindByIDForUpdate(tx, id)
		if err != nil {
			return err
		}
		if err := fn(eleve); err != nil {
			return err
		}
		return tx.Save(eleve).Error
	})
	if err != nil {
		return nil, err
	}
	return eleve, nil
}
