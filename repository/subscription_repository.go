package repository

import (
	"context"
	"time"

	"github.com/RigelNana/arktube/models"
	"github.com/RigelNana/arktube/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRow 已订阅的创作者
type SubscriptionRow struct {
	CreatorID       uuid.UUID
	UpdatedAt       time.Time
	Name            string
	ImageURL        string
	SubscriberCount int64
}

func (r SubscriptionRow) Cursor() pagination.Cursor[time.Time] {
	return pagination.Cursor[time.Time]{ID: r.CreatorID, Value: r.UpdatedAt}
}

type SubscriptionRepository interface {
	// Create 重复订阅不报错
	Create(ctx context.Context, viewerID, creatorID uuid.UUID) error
	Delete(ctx context.Context, viewerID, creatorID uuid.UUID) error
	ListByViewer(ctx context.Context, viewerID uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]SubscriptionRow, error)
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, viewerID, creatorID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Subscription{ViewerID: viewerID, CreatorID: creatorID}).Error
	return translate(err)
}

func (r *SubscriptionRepositoryImpl) Delete(ctx context.Context, viewerID, creatorID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("viewer_id = ? AND creator_id = ?", viewerID, creatorID).
		Delete(&models.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var subscriptionKey = pagination.Key{Sort: "subscriptions.updated_at", ID: "subscriptions.creator_id"}

func (r *SubscriptionRepositoryImpl) ListByViewer(ctx context.Context, viewerID uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]SubscriptionRow, error) {
	q := r.db.WithContext(ctx).
		Table("subscriptions").
		Select("subscriptions.creator_id, subscriptions.updated_at, users.name, users.image_url, "+
			subscriberCountOf("subscriptions.creator_id")+" AS subscriber_count").
		Joins("JOIN users ON users.id = subscriptions.creator_id").
		Where("subscriptions.viewer_id = ?", viewerID)

	var rows []SubscriptionRow
	err := pagination.Apply(q, subscriptionKey, cursor, limit).Find(&rows).Error
	return rows, err
}
