package repository

import (
	"educatif_backend/internal/model"

	"gorm.io/gorm"
)

type ReponseRepository struct {
	DB *gorm.DB
}

func NewReponseRepository(db *gorm.DB) *ReponseRepository {
	return &ReponseRepository{DB: db}
}

func (r *ReponseRepository) Create(reponse *model.Reponse) error {
	return r.DB.Create(reponse).Error
}

func (r *ReponseRepository) FindByEleve(eleveID uint) ([]model.Reponse, error) {
	var reponses []model.Reponse
	err := r.DB.Where("eleve_id = ?", eleveID).Order("date asc").Find(&reponses).Error
	return reponses, err
}
