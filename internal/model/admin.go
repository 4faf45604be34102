package model

// Admin is a separate identity class with no progression state.
type Admin struct {
	BaseModel
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`
}

func (Admin) TableName() string {
	return "admins"
}
