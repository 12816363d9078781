package models

import (
	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// 处理状态，取值来自视频处理服务
const (
	StatusWaiting   = "waiting"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusErrored   = "errored"
)

type Video struct {
	Base
	Title          string     `gorm:"not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	ThumbnailURL   *string    `gorm:"type:text" json:"thumbnailUrl"`
	ThumbnailKey   *string    `json:"-"`
	PreviewURL     *string    `gorm:"type:text" json:"previewUrl"`
	PreviewKey     *string    `json:"-"`
	Duration       int64      `gorm:"not null;default:0" json:"duration"`
	Visibility     Visibility `gorm:"type:varchar(16);not null;default:'private'" json:"visibility"`
	MuxStatus      string     `gorm:"not null;default:'waiting'" json:"muxStatus"`
	MuxUploadID    *string    `gorm:"uniqueIndex" json:"muxUploadId"`
	MuxAssetID     *string    `gorm:"uniqueIndex" json:"muxAssetId"`
	MuxPlaybackID  *string    `gorm:"uniqueIndex" json:"muxPlaybackId"`
	MuxTrackID     *string    `gorm:"uniqueIndex" json:"muxTrackId"`
	MuxTrackStatus *string    `json:"muxTrackStatus"`
	CategoryID     *uuid.UUID `gorm:"type:uuid;index" json:"categoryId"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`

	User     *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}

func (Video) TableName() string {
	return "videos"
}
