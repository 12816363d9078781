package repository

import (
	"context"

	"github.com/RigelNana/arktube/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository 每个 (subject, user) 至多一条反应；
// 同类型重复提交视为取消，不同类型覆盖原有反应
type ReactionRepository interface {
	ReactToVideo(ctx context.Context, videoID, userID uuid.UUID, t models.ReactionType) (*models.ReactionType, error)
	ReactToComment(ctx context.Context, commentID, userID uuid.UUID, t models.ReactionType) (*models.ReactionType, error)
}

type ReactionRepositoryImpl struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &ReactionRepositoryImpl{db: db}
}

func (r *ReactionRepositoryImpl) ReactToVideo(ctx context.Context, videoID, userID uuid.UUID, t models.ReactionType) (*models.ReactionType, error) {
	return toggleReaction(ctx, r.db, "video_id", videoID, userID, t,
		&models.VideoReaction{VideoID: videoID, UserID: userID, Type: t})
}

func (r *ReactionRepositoryImpl) ReactToComment(ctx context.Context, commentID, userID uuid.UUID, t models.ReactionType) (*models.ReactionType, error) {
	return toggleReaction(ctx, r.db, "comment_id", commentID, userID, t,
		&models.CommentReaction{CommentID: commentID, UserID: userID, Type: t})
}

// toggleReaction 返回操作后的反应，取消时为 nil
func toggleReaction[T any](ctx context.Context, db *gorm.DB, subjectCol string, subjectID, userID uuid.UUID, t models.ReactionType, row *T) (*models.ReactionType, error) {
	var current *models.ReactionType
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zero T
		removed := tx.Where(subjectCol+" = ? AND user_id = ? AND type = ?", subjectID, userID, t).Delete(&zero)
		if removed.Error != nil {
			return removed.Error
		}
		if removed.RowsAffected > 0 {
			return nil
		}

		// 复合主键冲突时转为更新，避免并发写入产生重复行
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: subjectCol}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"type":       t,
				"updated_at": gorm.Expr("now()"),
			}),
		}).Create(row).Error
		if err != nil {
			return translate(err)
		}
		current = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return current, nil
}
