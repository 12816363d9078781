package models

import "github.com/google/uuid"

// VideoView 每个用户对每个视频只记一次
type VideoView struct {
	VideoID uuid.UUID `gorm:"type:uuid;primaryKey" json:"videoId"`
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	Timestamps

	Video *Video `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User  *User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (VideoView) TableName() string {
	return "video_views"
}
