package models

import "github.com/google/uuid"

type Comment struct {
	Base
	VideoID uuid.UUID `gorm:"type:uuid;not null;index" json:"videoId"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Value   string    `gorm:"type:text;not null" json:"value"`

	Video *Video `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User  *User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
