package repository

import (
	"educatif_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) FindAll() ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) FindByNiveau(niveau string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("niveau = ?", niveau).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) FindByNiveauAndAge(niveau string, age int) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("niveau = ? AND age = ?", niveau, age).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) FindByNiveauAndAgeRange(niveau string, minAge, maxAge int) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("niveau = ? AND age BETWEEN ? AND ?", niveau, minAge, maxAge).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	res := r.DB.Delete(&model.Question{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
