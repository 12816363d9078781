package service

import (
	"context"
	"io"
	"time"

	"github.com/RigelNana/arktube/auth"
	"github.com/RigelNana/arktube/models"
	"github.com/RigelNana/arktube/pagination"
	"github.com/RigelNana/arktube/processor"
	"github.com/RigelNana/arktube/repository"
	"github.com/RigelNana/arktube/workflow"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func asViewer(id uuid.UUID) context.Context {
	return auth.WithViewer(context.Background(), auth.Viewer{ID: id, Name: "viewer"})
}

// MockBase 实现 BaseRepository 的通用部分
type MockBase[T any] struct{ mock.Mock }

func (m *MockBase[T]) Create(ctx context.Context, entity *T) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *MockBase[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*T), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBase[T]) Update(ctx context.Context, entity *T) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *MockBase[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBase[T]) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockVideoRepository struct {
	MockBase[models.Video]
}

var _ repository.VideoRepository = (*MockVideoRepository)(nil)

func (m *MockVideoRepository) GetRow(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*repository.VideoRow, error) {
	args := m.Called(ctx, id, viewer)
	if v := args.Get(0); v != nil {
		return v.(*repository.VideoRow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepository) ListPublic(ctx context.Context, filter repository.VideoFilter, viewer *uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]repository.VideoRow, error) {
	args := m.Called(ctx, filter, viewer, cursor, limit)
	rows, _ := args.Get(0).([]repository.VideoRow)
	return rows, args.Error(1)
}

func (m *MockVideoRepository) ListTrending(ctx context.Context, viewer *uuid.UUID, cursor *pagination.Cursor[int64], limit int) ([]repository.VideoRow, error) {
	args := m.Called(ctx, viewer, cursor, limit)
	rows, _ := args.Get(0).([]repository.VideoRow)
	return rows, args.Error(1)
}

func (m *MockVideoRepository) ListSubscribed(ctx context.Context, viewer uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]repository.VideoRow, error) {
	args := m.Called(ctx, viewer, cursor, limit)
	rows, _ := args.Get(0).([]repository.VideoRow)
	return rows, args.Error(1)
}

func (m *MockVideoRepository) ListByOwner(ctx context.Context, owner uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]repository.VideoRow, error) {
	args := m.Called(ctx, owner, cursor, limit)
	rows, _ := args.Get(0).([]repository.VideoRow)
	return rows, args.Error(1)
}

func (m *MockVideoRepository) GetOwned(ctx context.Context, id, owner uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, id, owner)
	if v := args.Get(0); v != nil {
		return v.(*models.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepository) UpdateOwned(ctx context.Context, id, owner uuid.UUID, updates map[string]interface{}) (*models.Video, error) {
	args := m.Called(ctx, id, owner, updates)
	if v := args.Get(0); v != nil {
		return v.(*models.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepository) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, id, owner)
	if v := args.Get(0); v != nil {
		return v.(*models.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepository) UpdateByUploadID(ctx context.Context, uploadID string, updates map[string]interface{}) (int64, error) {
	args := m.Called(ctx, uploadID, updates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVideoRepository) UpdateByAssetID(ctx context.Context, assetID string, updates map[string]interface{}) (int64, error) {
	args := m.Called(ctx, assetID, updates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVideoRepository) DeleteByUploadID(ctx context.Context, uploadID string) (int64, error) {
	args := m.Called(ctx, uploadID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCommentRepository struct {
	MockBase[models.Comment]
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, viewer *uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]repository.CommentRow, error) {
	args := m.Called(ctx, videoID, viewer, cursor, limit)
	rows, _ := args.Get(0).([]repository.CommentRow)
	return rows, args.Error(1)
}

func (m *MockCommentRepository) CountByVideo(ctx context.Context, videoID uuid.UUID) (int64, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, id, owner)
	if v := args.Get(0); v != nil {
		return v.(*models.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserRepository struct {
	MockBase[models.User]
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetProfile(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*repository.UserProfileRow, error) {
	args := m.Called(ctx, id, viewer)
	if v := args.Get(0); v != nil {
		return v.(*repository.UserProfileRow), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockReactionRepository struct{ mock.Mock }

func (m *MockReactionRepository) ReactToVideo(ctx context.Context, videoID, userID uuid.UUID, t models.ReactionType) (*models.ReactionType, error) {
	args := m.Called(ctx, videoID, userID, t)
	current, _ := args.Get(0).(*models.ReactionType)
	return current, args.Error(1)
}

func (m *MockReactionRepository) ReactToComment(ctx context.Context, commentID, userID uuid.UUID, t models.ReactionType) (*models.ReactionType, error) {
	args := m.Called(ctx, commentID, userID, t)
	current, _ := args.Get(0).(*models.ReactionType)
	return current, args.Error(1)
}

type MockSubscriptionRepository struct{ mock.Mock }

func (m *MockSubscriptionRepository) Create(ctx context.Context, viewerID, creatorID uuid.UUID) error {
	return m.Called(ctx, viewerID, creatorID).Error(0)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, viewerID, creatorID uuid.UUID) error {
	return m.Called(ctx, viewerID, creatorID).Error(0)
}

func (m *MockSubscriptionRepository) ListByViewer(ctx context.Context, viewerID uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) ([]repository.SubscriptionRow, error) {
	args := m.Called(ctx, viewerID, cursor, limit)
	rows, _ := args.Get(0).([]repository.SubscriptionRow)
	return rows, args.Error(1)
}

type MockViewRepository struct{ mock.Mock }

func (m *MockViewRepository) Record(ctx context.Context, videoID, userID uuid.UUID) error {
	return m.Called(ctx, videoID, userID).Error(0)
}

type MockWebhookEventRepository struct{ mock.Mock }

func (m *MockWebhookEventRepository) Record(ctx context.Context, event *models.WebhookEvent) (bool, error) {
	args := m.Called(ctx, event)
	return args.Bool(0), args.Error(1)
}

type MockProcessor struct{ mock.Mock }

var _ VideoProcessor = (*MockProcessor)(nil)

func (m *MockProcessor) CreateUpload(ctx context.Context, passthrough string) (*processor.Upload, error) {
	args := m.Called(ctx, passthrough)
	if v := args.Get(0); v != nil {
		return v.(*processor.Upload), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProcessor) GetUpload(ctx context.Context, uploadID string) (*processor.Upload, error) {
	args := m.Called(ctx, uploadID)
	if v := args.Get(0); v != nil {
		return v.(*processor.Upload), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProcessor) GetAsset(ctx context.Context, assetID string) (*processor.Asset, error) {
	args := m.Called(ctx, assetID)
	if v := args.Get(0); v != nil {
		return v.(*processor.Asset), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProcessor) ThumbnailURL(playbackID string) string {
	return "https://image.test/" + playbackID + "/thumbnail.jpg"
}

func (m *MockProcessor) PreviewURL(playbackID string) string {
	return "https://image.test/" + playbackID + "/animated.gif"
}

type MockBlob struct{ mock.Mock }

func (m *MockBlob) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockBlob) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, job workflow.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockPublisher) Close() error { return nil }
