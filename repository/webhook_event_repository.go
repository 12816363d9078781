package repository

import (
	"context"

	"github.com/RigelNana/arktube/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WebhookEventRepository interface {
	// Record 返回 false 表示该事件 id 已经记录过
	Record(ctx context.Context, event *models.WebhookEvent) (bool, error)
}

type WebhookEventRepositoryImpl struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &WebhookEventRepositoryImpl{db: db}
}

func (r *WebhookEventRepositoryImpl) Record(ctx context.Context, event *models.WebhookEvent) (bool, error) {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(event)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
