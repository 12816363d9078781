package models

import "github.com/google/uuid"

type Subscription struct {
	ViewerID  uuid.UUID `gorm:"type:uuid;primaryKey;check:chk_subscriptions_not_self,viewer_id <> creator_id" json:"viewerId"`
	CreatorID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"creatorId"`
	Timestamps

	Viewer  *User `gorm:"foreignKey:ViewerID;constraint:OnDelete:CASCADE" json:"-"`
	Creator *User `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
