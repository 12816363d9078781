package models

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookEvent 已验签的回调事件，按事件 id 去重
type WebhookEvent struct {
	ID         string         `gorm:"primaryKey"`
	Type       string         `gorm:"not null;index"`
	ObjectID   string         `gorm:"index"`
	Payload    datatypes.JSON `gorm:"type:jsonb"`
	ReceivedAt time.Time      `gorm:"not null;default:now()"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}
