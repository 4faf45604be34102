package model

import "time"

// Reponse is one answer-submission audit row. Append-only: created once per
// submission, never mutated.
type Reponse struct {
	UUIDBase
	EleveID       uint      `gorm:"index;not null" json:"eleveId"`
	QuestionID    uint      `gorm:"index;not null" json:"questionId"`
	ReponseDonnee string    `gorm:"size:255;not null" json:"reponseDonnee"`
	EstCorrecte   bool      `gorm:"not null" json:"estCorrecte"`
	Date          time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"date"`
}

func (Reponse) TableName() string {
	return "reponses"
}
