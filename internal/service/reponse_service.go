package service

import (
	"errors"
	"math"
	"time"

	"educatif_backend/internal/model"
	"educatif_backend/internal/util"

	"gorm.io/gorm"
)

// ReponseStore is the persistence surface of the answer log. Satisfied by
// *repository.ReponseRepository.
type ReponseStore interface {
	Create(reponse *model.Reponse) error
	FindByEleve(eleveID uint) ([]model.Reponse, error)
}

// ReponseService owns the single-answer submission path and the statistics
// derived from it. It is independent of the level-submission flow: level
// grading does not append rows here.
type ReponseService struct {
	Reponses  ReponseStore
	Questions QuestionStore
}

func NewReponseService(reponseRepo ReponseStore, questions QuestionStore) *ReponseService {
	return &ReponseService{
		Reponses:  reponseRepo,
		Questions: questions,
	}
}

// Submit grades one answer against its question and appends the audit row.
func (s *ReponseService) Submit(eleveID, questionID uint, reponseDonnee string) (*model.Reponse, error) {
	question, err := s.Questions.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	reponse := &model.Reponse{
		EleveID:       eleveID,
		QuestionID:    questionID,
		ReponseDonnee: reponseDonnee,
		EstCorrecte:   question.BonneReponse == reponseDonnee,
		Date:          time.Now(),
	}
	if err := s.Reponses.Create(reponse); err != nil {
		return nil, err
	}
	return reponse, nil
}

type ProgressionStats struct {
	Total       int `json:"total"`
	Bonnes      int `json:"bonnes"`
	Pourcentage int `json:"pourcentage"`
}

// Progression aggregates a student's answer records into correct/total counts.
func (s *ReponseService) Progression(eleveID uint) (*ProgressionStats, error) {
	reponses, err := s.Reponses.FindByEleve(eleveID)
	if err != nil {
		return nil, err
	}

	stats := &ProgressionStats{Total: len(reponses)}
	for _, r := range reponses {
		if r.EstCorrecte {
			stats.Bonnes++
		}
	}
	if stats.Total > 0 {
		stats.Pourcentage = int(math.Round(float64(stats.Bonnes) / float64(stats.Total) * 100))
	}
	return stats, nil
}
