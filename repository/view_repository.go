package repository

import (
	"context"

	"github.com/RigelNana/arktube/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ViewRepository interface {
	// Record 每个用户对每个视频只记录一次，视频不存在返回 gorm.ErrRecordNotFound
	Record(ctx context.Context, videoID, userID uuid.UUID) error
}

type ViewRepositoryImpl struct {
	db *gorm.DB
}

func NewViewRepository(db *gorm.DB) ViewRepository {
	return &ViewRepositoryImpl{db: db}
}

func (r *ViewRepositoryImpl) Record(ctx context.Context, videoID, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.VideoView{VideoID: videoID, UserID: userID}).Error
	return translate(err)
}
