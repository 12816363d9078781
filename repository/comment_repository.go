package repository

import (
	"context"
	"strings"
	"time"

	"github.com/RigelNana/arktube/models"
	"github.com/RigelNana/arktube/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRow 评论及作者、反应计数
type CommentRow struct {
	models.Comment
	UserName       string
	UserImageURL   string
	LikeCount      int64
	DislikeCount   int64
	ViewerReaction *models.ReactionType
}

func (r CommentRow) Cursor() pagination.Cursor[time.Time] {
	return pagination.Cursor[time.Time]{ID: r.ID, Value: r.UpdatedAt}
}

type CommentRepository interface {
	BaseRepository[models.Comment]
	ListByVideo(ctx context.Context, videoID uuid.UUID, viewer *uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]CommentRow, error)
	CountByVideo(ctx context.Context, videoID uuid.UUID) (int64, error)
	DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*models.Comment, error)
}

type CommentRepositoryImpl struct {
	*BaseRepositoryImpl[models.Comment]
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &CommentRepositoryImpl{BaseRepositoryImpl: NewBaseRepository[models.Comment](db)}
}

var commentKey = pagination.Key{Sort: "comments.updated_at", ID: "comments.id"}

func (r *CommentRepositoryImpl) ListByVideo(ctx context.Context, videoID uuid.UUID, viewer *uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]CommentRow, error) {
	q := r.db.WithContext(ctx).
		Table("comments").
		Select(strings.Join([]string{
			"comments.*",
			"users.name AS user_name",
			"users.image_url AS user_image_url",
			commentReactionCountOf("comments.id", string(models.ReactionLike)) + " AS like_count",
			commentReactionCountOf("comments.id", string(models.ReactionDislike)) + " AS dislike_count",
			"viewer_reactions.type AS viewer_reaction",
		}, ", ")).
		Joins("JOIN users ON users.id = comments.user_id").
		Joins("LEFT JOIN (?) AS viewer_reactions ON viewer_reactions.comment_id = comments.id", viewerCommentReactions(r.db, viewer)).
		Where("comments.video_id = ?", videoID)

	var rows []CommentRow
	err := pagination.Apply(q, commentKey, cursor, limit).Find(&rows).Error
	return rows, err
}

func (r *CommentRepositoryImpl) CountByVideo(ctx context.Context, videoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

func (r *CommentRepositoryImpl) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", id, owner).
		Delete(&comment)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &comment, nil
}
