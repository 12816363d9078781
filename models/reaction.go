package models

import "github.com/google/uuid"

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// VideoReaction 每个 (video, user) 至多一行
type VideoReaction struct {
	VideoID uuid.UUID    `gorm:"type:uuid;primaryKey" json:"videoId"`
	UserID  uuid.UUID    `gorm:"type:uuid;primaryKey" json:"userId"`
	Type    ReactionType `gorm:"type:varchar(16);not null" json:"type"`
	Timestamps

	Video *Video `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User  *User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (VideoReaction) TableName() string {
	return "video_reactions"
}

type CommentReaction struct {
	CommentID uuid.UUID    `gorm:"type:uuid;primaryKey" json:"commentId"`
	UserID    uuid.UUID    `gorm:"type:uuid;primaryKey" json:"userId"`
	Type      ReactionType `gorm:"type:varchar(16);not null" json:"type"`
	Timestamps

	Comment *Comment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User    *User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (CommentReaction) TableName() string {
	return "comment_reactions"
}
