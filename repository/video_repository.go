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

// VideoRow 视频及其聚合指标
type VideoRow struct {
	models.Video
	UserName         string
	UserImageURL     string
	ViewCount        int64
	LikeCount        int64
	DislikeCount     int64
	ViewerReaction   *models.ReactionType
	SubscriberCount  int64
	ViewerSubscribed bool
}

func (r VideoRow) UpdatedCursor() pagination.Cursor[time.Time] {
	return pagination.Cursor[time.Time]{ID: r.ID, Value: r.UpdatedAt}
}

func (r VideoRow) ViewCursor() pagination.Cursor[int64] {
	return pagination.Cursor[int64]{ID: r.ID, Value: r.ViewCount}
}

// VideoFilter 列表查询条件
type VideoFilter struct {
	CategoryID *uuid.UUID
	UserID     *uuid.UUID
	Query      string
}

type VideoRepository interface {
	BaseRepository[models.Video]
	GetRow(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*VideoRow, error)
	ListPublic(ctx context.Context, filter VideoFilter, viewer *uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]VideoRow, error)
	ListTrending(ctx context.Context, viewer *uuid.UUID, cursor *pagination.Cursor[int64], limit int) ([]VideoRow, error)
	ListSubscribed(ctx context.Context, viewer uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]VideoRow, error)
	ListByOwner(ctx context.Context, owner uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]VideoRow, error)

	GetOwned(ctx context.Context, id, owner uuid.UUID) (*models.Video, error)
	UpdateOwned(ctx context.Context, id, owner uuid.UUID, updates map[string]interface{}) (*models.Video, error)
	DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*models.Video, error)

	// 以下按视频处理服务下发的关联 id 更新，未命中返回 0 行而非错误
	UpdateByUploadID(ctx context.Context, uploadID string, updates map[string]interface{}) (int64, error)
	UpdateByAssetID(ctx context.Context, assetID string, updates map[string]interface{}) (int64, error)
	DeleteByUploadID(ctx context.Context, uploadID string) (int64, error)
}

type VideoRepositoryImpl struct {
	*BaseRepositoryImpl[models.Video]
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &VideoRepositoryImpl{BaseRepositoryImpl: NewBaseRepository[models.Video](db)}
}

var (
	updatedKey = pagination.Key{Sort: "videos.updated_at", ID: "videos.id"}
	trendKey   = pagination.Key{Sort: viewCountOf("videos.id"), ID: "videos.id"}
)

// rows 单次查询返回视频、作者、计数与当前观看者的关系
func (r *VideoRepositoryImpl) rows(ctx context.Context, viewer *uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("videos").
		Select(strings.Join([]string{
			"videos.*",
			"users.name AS user_name",
			"users.image_url AS user_image_url",
			viewCountOf("videos.id") + " AS view_count",
			videoReactionCountOf("videos.id", string(models.ReactionLike)) + " AS like_count",
			videoReactionCountOf("videos.id", string(models.ReactionDislike)) + " AS dislike_count",
			"viewer_reactions.type AS viewer_reaction",
			subscriberCountOf("videos.user_id") + " AS subscriber_count",
			"viewer_subscriptions.creator_id IS NOT NULL AS viewer_subscribed",
		}, ", ")).
		Joins("JOIN users ON users.id = videos.user_id").
		Joins("LEFT JOIN (?) AS viewer_reactions ON viewer_reactions.video_id = videos.id", viewerVideoReactions(r.db, viewer)).
		Joins("LEFT JOIN (?) AS viewer_subscriptions ON viewer_subscriptions.creator_id = videos.user_id", viewerSubscriptions(r.db, viewer))
}

func (r *VideoRepositoryImpl) GetRow(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*VideoRow, error) {
	var row VideoRow
	// 私有视频仅作者可见
	err := r.rows(ctx, viewer).
		Where("videos.id = ?", id).
		Where("(videos.visibility = ? OR videos.user_id IN ?)", models.VisibilityPublic, viewerIDs(viewer)).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *VideoRepositoryImpl) ListPublic(ctx context.Context, filter VideoFilter, viewer *uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]VideoRow, error) {
	q := r.rows(ctx, viewer).Where("videos.visibility = ?", models.VisibilityPublic)
	if filter.CategoryID != nil {
		q = q.Where("videos.category_id = ?", *filter.CategoryID)
	}
	if filter.UserID != nil {
		q = q.Where("videos.user_id = ?", *filter.UserID)
	}
	if filter.Query != "" {
		q = q.Where("videos.title ILIKE ?", "%"+escapeLike(filter.Query)+"%")
	}
	var rows []VideoRow
	err := pagination.Apply(q, updatedKey, cursor, limit).Find(&rows).Error
	return rows, err
}

func (r *VideoRepositoryImpl) ListTrending(ctx context.Context, viewer *uuid.UUID, cursor *pagination.Cursor[int64], limit int) ([]VideoRow, error) {
	q := r.rows(ctx, viewer).Where("videos.visibility = ?", models.VisibilityPublic)
	var rows []VideoRow
	err := pagination.Apply(q, trendKey, cursor, limit).Find(&rows).Error
	return rows, err
}

func (r *VideoRepositoryImpl) ListSubscribed(ctx context.Context, viewer uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]VideoRow, error) {
	q := r.rows(ctx, &viewer).
		Joins("JOIN subscriptions AS feed ON feed.creator_id = videos.user_id AND feed.viewer_id = ?", viewer).
		Where("videos.visibility = ?", models.VisibilityPublic)
	var rows []VideoRow
	err := pagination.Apply(q, updatedKey, cursor, limit).Find(&rows).Error
	return rows, err
}

func (r *VideoRepositoryImpl) ListByOwner(ctx context.Context, owner uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]VideoRow, error) {
	q := r.rows(ctx, &owner).Where("videos.user_id = ?", owner)
	var rows []VideoRow
	err := pagination.Apply(q, updatedKey, cursor, limit).Find(&rows).Error
	return rows, err
}

func (r *VideoRepositoryImpl) GetOwned(ctx context.Context, id, owner uuid.UUID) (*models.Video, error) {
	var video models.Video
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// UpdateOwned 所有权条件并入更新语句，不存在与非本人均返回 gorm.ErrRecordNotFound
func (r *VideoRepositoryImpl) UpdateOwned(ctx context.Context, id, owner uuid.UUID, updates map[string]interface{}) (*models.Video, error) {
	var video models.Video
	result := r.db.WithContext(ctx).
		Model(&video).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", id, owner).
		Updates(updates)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &video, nil
}

func (r *VideoRepositoryImpl) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*models.Video, error) {
	var video models.Video
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", id, owner).
		Delete(&video)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &video, nil
}

func (r *VideoRepositoryImpl) UpdateByUploadID(ctx context.Context, uploadID string, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Video{}).Where("mux_upload_id = ?", uploadID).Updates(updates)
	return result.RowsAffected, translate(result.Error)
}

func (r *VideoRepositoryImpl) UpdateByAssetID(ctx context.Context, assetID string, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Video{}).Where("mux_asset_id = ?", assetID).Updates(updates)
	return result.RowsAffected, translate(result.Error)
}

func (r *VideoRepositoryImpl) DeleteByUploadID(ctx context.Context, uploadID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("mux_upload_id = ?", uploadID).Delete(&models.Video{})
	return result.RowsAffected, result.Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
