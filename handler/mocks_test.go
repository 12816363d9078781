package handler

import (
	"context"
	"io"
	"time"

	"github.com/RigelNana/arktube/models"
	"github.com/RigelNana/arktube/pagination"
	"github.com/RigelNana/arktube/repository"
	"github.com/RigelNana/arktube/service"
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

type MockVideoService struct{ mock.Mock }

var _ service.VideoService = (*MockVideoService)(nil)

func (m *MockVideoService) GetOne(ctx context.Context, id uuid.UUID) (*repository.VideoRow, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*repository.VideoRow)
	return row, args.Error(1)
}

func (m *MockVideoService) GetMany(ctx context.Context, filter repository.VideoFilter, cursor *pagination.Cursor[time.Time], limit int) (service.VideoPage, error) {
	args := m.Called(ctx, filter, cursor, limit)
	return args.Get(0).(service.VideoPage), args.Error(1)
}

func (m *MockVideoService) GetTrending(ctx context.Context, cursor *pagination.Cursor[int64], limit int) (service.TrendingPage, error) {
	args := m.Called(ctx, cursor, limit)
	return args.Get(0).(service.TrendingPage), args.Error(1)
}

func (m *MockVideoService) GetSubscribed(ctx context.Context, cursor *pagination.Cursor[time.Time], limit int) (service.VideoPage, error) {
	args := m.Called(ctx, cursor, limit)
	return args.Get(0).(service.VideoPage), args.Error(1)
}

func (m *MockVideoService) Search(ctx context.Context, query string, categoryID *uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) (service.VideoPage, error) {
	args := m.Called(ctx, query, categoryID, cursor, limit)
	return args.Get(0).(service.VideoPage), args.Error(1)
}

func (m *MockVideoService) RecordView(ctx context.Context, videoID uuid.UUID) error {
	return m.Called(ctx, videoID).Error(0)
}

func (m *MockVideoService) React(ctx context.Context, videoID uuid.UUID, reaction models.ReactionType) (*models.ReactionType, error) {
	args := m.Called(ctx, videoID, reaction)
	current, _ := args.Get(0).(*models.ReactionType)
	return current, args.Error(1)
}

type MockCommentService struct{ mock.Mock }

var _ service.CommentService = (*MockCommentService)(nil)

func (m *MockCommentService) List(ctx context.Context, videoID uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) (service.CommentPage, error) {
	args := m.Called(ctx, videoID, cursor, limit)
	return args.Get(0).(service.CommentPage), args.Error(1)
}

func (m *MockCommentService) Create(ctx context.Context, videoID uuid.UUID, value string) (*models.Comment, error) {
	args := m.Called(ctx, videoID, value)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *MockCommentService) Remove(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *MockCommentService) React(ctx context.Context, commentID uuid.UUID, reaction models.ReactionType) (*models.ReactionType, error) {
	args := m.Called(ctx, commentID, reaction)
	current, _ := args.Get(0).(*models.ReactionType)
	return current, args.Error(1)
}

type MockStudioService struct{ mock.Mock }

var _ service.StudioService = (*MockStudioService)(nil)

func (m *MockStudioService) List(ctx context.Context, cursor *pagination.Cursor[time.Time], limit int) (service.VideoPage, error) {
	args := m.Called(ctx, cursor, limit)
	return args.Get(0).(service.VideoPage), args.Error(1)
}

func (m *MockStudioService) Get(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, id)
	video, _ := args.Get(0).(*models.Video)
	return video, args.Error(1)
}

func (m *MockStudioService) Create(ctx context.Context) (*models.Video, string, error) {
	args := m.Called(ctx)
	video, _ := args.Get(0).(*models.Video)
	return video, args.String(1), args.Error(2)
}

func (m *MockStudioService) Update(ctx context.Context, id uuid.UUID, input service.UpdateVideoInput) (*models.Video, error) {
	args := m.Called(ctx, id, input)
	video, _ := args.Get(0).(*models.Video)
	return video, args.Error(1)
}

func (m *MockStudioService) Remove(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, id)
	video, _ := args.Get(0).(*models.Video)
	return video, args.Error(1)
}

func (m *MockStudioService) Revalidate(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, id)
	video, _ := args.Get(0).(*models.Video)
	return video, args.Error(1)
}

func (m *MockStudioService) RestoreThumbnail(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, id)
	video, _ := args.Get(0).(*models.Video)
	return video, args.Error(1)
}

func (m *MockStudioService) Generate(ctx context.Context, id uuid.UUID, kind workflow.Kind, prompt string) (uuid.UUID, error) {
	args := m.Called(ctx, id, kind, prompt)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type MockWebhookService struct{ mock.Mock }

func (m *MockWebhookService) Handle(ctx context.Context, body []byte, signature string) error {
	return m.Called(ctx, body, signature).Error(0)
}
