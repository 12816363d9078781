package repository

import (
	"context"

	"github.com/RigelNana/arktube/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	BaseRepository[models.User]
	// Upsert 按 external_id 插入或更新资料，返回本地用户
	Upsert(ctx context.Context, user *models.User) error
	GetProfile(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*UserProfileRow, error)
}

// UserProfileRow 用户主页：订阅数、视频数与当前观看者是否已订阅
type UserProfileRow struct {
	models.User
	SubscriberCount  int64
	VideoCount       int64
	ViewerSubscribed bool
}

type UserRepositoryImpl struct {
	*BaseRepositoryImpl[models.User]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{BaseRepositoryImpl: NewBaseRepository[models.User](db)}
}

func (r *UserRepositoryImpl) Upsert(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "image_url", "updated_at"}),
		},
		clause.Returning{Columns: []clause.Column{{Name: "id"}, {Name: "created_at"}}},
	).Create(user).Error
}

func (r *UserRepositoryImpl) GetProfile(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*UserProfileRow, error) {
	var row UserProfileRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.*, "+
			subscriberCountOf("users.id")+" AS subscriber_count, "+
			"(SELECT COUNT(*) FROM videos v WHERE v.user_id = users.id AND v.visibility = 'public') AS video_count, "+
			"viewer_subscriptions.creator_id IS NOT NULL AS viewer_subscribed").
		Joins("LEFT JOIN (?) AS viewer_subscriptions ON viewer_subscriptions.creator_id = users.id",
			viewerSubscriptions(r.db, viewer)).
		Where("users.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
