package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RigelNana/arktube/auth"
	"github.com/RigelNana/arktube/models"
	"github.com/RigelNana/arktube/pagination"
	"github.com/RigelNana/arktube/pkg/metrics"
	"github.com/RigelNana/arktube/processor"
	"github.com/RigelNana/arktube/repository"
	"github.com/RigelNana/arktube/storage"
	"github.com/RigelNana/arktube/workflow"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultVideoTitle = "Untitled"

// VideoProcessor 外部视频处理服务
type VideoProcessor interface {
	CreateUpload(ctx context.Context, passthrough string) (*processor.Upload, error)
	GetUpload(ctx context.Context, uploadID string) (*processor.Upload, error)
	GetAsset(ctx context.Context, assetID string) (*processor.Asset, error)
	ThumbnailURL(playbackID string) string
	PreviewURL(playbackID string) string
}

// UpdateVideoInput 为 nil 的字段保持不变；CategoryID 为空字符串表示清除分类
type UpdateVideoInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CategoryID  *string `json:"categoryId"`
	Visibility  *string `json:"visibility"`
}

// StudioService 创作者对自己视频的管理，所有操作按所有者过滤
type StudioService interface {
	List(ctx context.Context, cursor *pagination.Cursor[time.Time], limit int) (VideoPage, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Video, error)
	Create(ctx context.Context) (*models.Video, string, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateVideoInput) (*models.Video, error)
	Remove(ctx context.Context, id uuid.UUID) (*models.Video, error)
	Revalidate(ctx context.Context, id uuid.UUID) (*models.Video, error)
	RestoreThumbnail(ctx context.Context, id uuid.UUID) (*models.Video, error)
	Generate(ctx context.Context, id uuid.UUID, kind workflow.Kind, prompt string) (uuid.UUID, error)
}

type StudioServiceImpl struct {
	videos    repository.VideoRepository
	processor VideoProcessor
	blob      storage.Blob
	publisher workflow.Publisher
	retries   int
	logger    *logrus.Logger
}

func NewStudioService(videos repository.VideoRepository, proc VideoProcessor, blob storage.Blob, publisher workflow.Publisher, retries int, logger *logrus.Logger) StudioService {
	return &StudioServiceImpl{
		videos:    videos,
		processor: proc,
		blob:      blob,
		publisher: publisher,
		retries:   retries,
		logger:    logger,
	}
}

func (s *StudioServiceImpl) List(ctx context.Context, cursor *pagination.Cursor[time.Time], limit int) (VideoPage, error) {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return VideoPage{}, err
	}
	if err := checkLimit(limit); err != nil {
		return VideoPage{}, err
	}
	rows, err := s.videos.ListByOwner(ctx, viewer.ID, cursor, limit)
	if err != nil {
		return VideoPage{}, internal("list studio videos", err)
	}
	return pagination.NewPage(rows, limit, repository.VideoRow.UpdatedCursor), nil
}

func (s *StudioServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	video, err := s.videos.GetOwned(ctx, id, viewer.ID)
	if err != nil {
		return nil, fromRepo(err, "video")
	}
	return video, nil
}

// Create 先在处理服务创建直传地址，成功后才写入 waiting 状态的视频
func (s *StudioServiceImpl) Create(ctx context.Context) (*models.Video, string, error) {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return nil, "", err
	}
	upload, err := s.processor.CreateUpload(ctx, viewer.ID.String())
	if err != nil {
		metrics.VideoUploadsTotal.WithLabelValues("failed").Inc()
		s.logger.WithError(err).WithField("user_id", viewer.ID).Error("failed to create upload")
		return nil, "", internal("create upload", err)
	}
	metrics.VideoUploadsTotal.WithLabelValues("created").Inc()

	uploadID := upload.ID
	video := &models.Video{
		Title:       defaultVideoTitle,
		UserID:      viewer.ID,
		MuxStatus:   models.StatusWaiting,
		MuxUploadID: &uploadID,
		Visibility:  models.VisibilityPrivate,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, "", internal("create video", err)
	}
	return video, upload.URL, nil
}

func (s *StudioServiceImpl) Update(ctx context.Context, id uuid.UUID, input UpdateVideoInput) (*models.Video, error) {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	updates, err := input.updates()
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, badRequest("nothing to update")
	}
	video, err := s.videos.UpdateOwned(ctx, id, viewer.ID, updates)
	if err != nil {
		return nil, fromRepo(err, "video")
	}
	return video, nil
}

func (in UpdateVideoInput) updates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, badRequest("title must not be empty")
		}
		if len(title) > 100 {
			return nil, badRequest("title must be at most 100 characters")
		}
		updates["title"] = title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.CategoryID != nil {
		if *in.CategoryID == "" {
			updates["category_id"] = nil
		} else {
			categoryID, err := uuid.Parse(*in.CategoryID)
			if err != nil {
				return nil, badRequest("invalid category id")
			}
			updates["category_id"] = categoryID
		}
	}
	if in.Visibility != nil {
		visibility := models.Visibility(*in.Visibility)
		if !visibility.Valid() {
			return nil, badRequest("visibility must be public or private")
		}
		updates["visibility"] = visibility
	}
	return updates, nil
}

func (s *StudioServiceImpl) Remove(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	video, err := s.videos.DeleteOwned(ctx, id, viewer.ID)
	if err != nil {
		return nil, fromRepo(err, "video")
	}
	if video.ThumbnailKey != nil {
		if err := s.blob.Delete(ctx, *video.ThumbnailKey); err != nil {
			s.logger.WithError(err).WithField("key", *video.ThumbnailKey).Warn("failed to delete thumbnail")
		}
	}
	return video, nil
}

// Revalidate 重新从处理服务拉取上传与资源状态，用于回调丢失时手动同步
func (s *StudioServiceImpl) Revalidate(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	video, err := s.videos.GetOwned(ctx, id, viewer.ID)
	if err != nil {
		return nil, fromRepo(err, "video")
	}
	if video.MuxUploadID == nil {
		return nil, badRequest("video has no upload")
	}

	upload, err := s.processor.GetUpload(ctx, *video.MuxUploadID)
	if err != nil {
		return nil, internal("get upload", err)
	}
	if upload.AssetID == "" {
		return nil, badRequest("upload has no asset yet")
	}
	asset, err := s.processor.GetAsset(ctx, upload.AssetID)
	if err != nil {
		return nil, internal("get asset", err)
	}

	updates := map[string]interface{}{
		"mux_status":   asset.Status,
		"mux_asset_id": asset.ID,
		"duration":     asset.DurationMillis(),
	}
	if playbackID := asset.PlaybackID(); playbackID != "" {
		updates["mux_playback_id"] = playbackID
	}
	if track := asset.TextTrack(); track != nil {
		updates["mux_track_id"] = track.ID
		updates["mux_track_status"] = track.Status
	}

	updated, err := s.videos.UpdateOwned(ctx, video.ID, viewer.ID, updates)
	if err != nil {
		return nil, fromRepo(err, "video")
	}
	return updated, nil
}

// RestoreThumbnail 用处理服务生成的默认缩略图替换自定义缩略图
func (s *StudioServiceImpl) RestoreThumbnail(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	video, err := s.videos.GetOwned(ctx, id, viewer.ID)
	if err != nil {
		return nil, fromRepo(err, "video")
	}
	if video.MuxPlaybackID == nil {
		return nil, badRequest("video has no playback id")
	}

	if video.ThumbnailKey != nil {
		if err := s.blob.Delete(ctx, *video.ThumbnailKey); err != nil {
			return nil, internal("delete thumbnail", err)
		}
	}

	key := fmt.Sprintf("thumbnails/%s/%s.jpg", video.ID, uuid.New())
	url, err := storage.CopyFromURL(ctx, s.blob, s.processor.ThumbnailURL(*video.MuxPlaybackID), key)
	if err != nil {
		return nil, internal("upload thumbnail", err)
	}

	updated, err := s.videos.UpdateOwned(ctx, video.ID, viewer.ID, map[string]interface{}{
		"thumbnail_url": url,
		"thumbnail_key": key,
	})
	if err != nil {
		return nil, fromRepo(err, "video")
	}
	return updated, nil
}

// Generate 投递生成任务并返回运行 id，失败重试交给工作流
func (s *StudioServiceImpl) Generate(ctx context.Context, id uuid.UUID, kind workflow.Kind, prompt string) (uuid.UUID, error) {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return uuid.Nil, err
	}
	if _, ok := workflow.ParseKind(string(kind)); !ok {
		return uuid.Nil, badRequest("unknown generation kind")
	}
	if _, err := s.videos.GetOwned(ctx, id, viewer.ID); err != nil {
		return uuid.Nil, fromRepo(err, "video")
	}

	job := workflow.Job{
		RunID:   uuid.New(),
		Kind:    kind,
		VideoID: id,
		UserID:  viewer.ID,
		Prompt:  prompt,
		Retries: s.retries,
	}
	if err := s.publisher.Publish(ctx, job); err != nil {
		s.logger.WithError(err).WithField("video_id", id).Error("failed to trigger workflow")
		return uuid.Nil, internal("trigger workflow", err)
	}
	return job.RunID, nil
}
