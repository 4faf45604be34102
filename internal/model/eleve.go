package model

import (
	"gorm.io/datatypes"
)

// LevelCount is the size of the progression vectors: levels are indexed 0..13.
const LevelCount = 14

// Eleve is a student account together with its level-progression state.
type Eleve struct {
	BaseModel
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`
	Nom      string `gorm:"size:100;not null" json:"nom"`
	Prenom   string `gorm:"size:100;not null" json:"prenom"`
	Age      int    `gorm:"not null" json:"age"` // domain range 5..18

	// Niveau is the current progression level. It only ever increases.
	Niveau int `gorm:"default:1" json:"niveau"`

	// NiveauxCompletes is the set of level indices with a perfect submission.
	NiveauxCompletes datatypes.JSONSlice[int] `gorm:"type:json" json:"niveauxCompletes"`

	// AccessibleLevels and CompletedLevels are fixed-size boolean vectors
	// (index = level 0..13). Index 0 of AccessibleLevels is true from creation.
	// CompletedLevels redundantly encodes NiveauxCompletes.
	AccessibleLevels datatypes.JSONSlice[bool] `gorm:"type:json" json:"accessibleLevels"`
	CompletedLevels  datatypes.JSONSlice[bool] `gorm:"type:json" json:"completedLevels"`
}

func (Eleve) TableName() string {
	return "eleves"
}

// DefaultAccessibleLevels returns the creation-time unlock vector: only level 0.
func DefaultAccessibleLevels() []bool {
	v := make([]bool, LevelCount)
	v[0] = true
	return v
}

// DefaultCompletedLevels returns an all-false completion vector.
func DefaultCompletedLevels() []bool {
	return make([]bool, LevelCount)
}
