package models

// User 由身份提供方同步，ExternalID 为其 subject
type User struct {
	Base
	ExternalID string `gorm:"uniqueIndex;not null" json:"-"`
	Name       string `gorm:"not null" json:"name"`
	Email      string `json:"email,omitempty"`
	ImageURL   string `gorm:"type:text" json:"imageUrl"`
}

func (User) TableName() string {
	return "users"
}
