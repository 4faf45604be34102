package model

import (
	"gorm.io/datatypes"
)

// Question is a single multiple-choice item, globally shared.
//
// Niveau is a free string label: progression endpoints use numeric levels
// ("1".."13") while seed/admin data may carry curriculum codes ("CE1", "CE2").
// Lookups always compare the literal string.
type Question struct {
	BaseModel
	Age          int                          `gorm:"not null;index:idx_questions_niveau_age,priority:2" json:"age"`
	Niveau       string                       `gorm:"size:50;not null;index:idx_questions_niveau_age,priority:1" json:"niveau"`
	Question     string                       `gorm:"type:text;not null" json:"question"`
	Choix        datatypes.JSONSlice[string]  `gorm:"type:json" json:"choix"`
	BonneReponse string                       `gorm:"size:255;not null" json:"bonneReponse"`
	Explication  string                       `gorm:"type:text" json:"explication"`
}

func (Question) TableName() string {
	return "questions"
}
