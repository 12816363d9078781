package service

import (
	"context"
	"time"

	"github.com/RigelNana/arktube/auth"
	"github.com/RigelNana/arktube/models"
	"github.com/RigelNana/arktube/pagination"
	"github.com/RigelNana/arktube/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type (
	VideoPage    = pagination.Page[repository.VideoRow, time.Time]
	TrendingPage = pagination.Page[repository.VideoRow, int64]
)

// VideoService 面向观众的视频读取与互动
type VideoService interface {
	GetOne(ctx context.Context, id uuid.UUID) (*repository.VideoRow, error)
	GetMany(ctx context.Context, filter repository.VideoFilter, cursor *pagination.Cursor[time.Time], limit int) (VideoPage, error)
	GetTrending(ctx context.Context, cursor *pagination.Cursor[int64], limit int) (TrendingPage, error)
	GetSubscribed(ctx context.Context, cursor *pagination.Cursor[time.Time], limit int) (VideoPage, error)
	Search(ctx context.Context, query string, categoryID *uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) (VideoPage, error)
	RecordView(ctx context.Context, videoID uuid.UUID) error
	React(ctx context.Context, videoID uuid.UUID, reaction models.ReactionType) (*models.ReactionType, error)
}

type VideoServiceImpl struct {
	videos    repository.VideoRepository
	views     repository.ViewRepository
	reactions repository.ReactionRepository
	logger    *logrus.Logger
}

func NewVideoService(videos repository.VideoRepository, views repository.ViewRepository, reactions repository.ReactionRepository, logger *logrus.Logger) VideoService {
	return &VideoServiceImpl{videos: videos, views: views, reactions: reactions, logger: logger}
}

func (s *VideoServiceImpl) GetOne(ctx context.Context, id uuid.UUID) (*repository.VideoRow, error) {
	row, err := s.videos.GetRow(ctx, id, auth.ViewerID(ctx))
	if err != nil {
		return nil, fromRepo(err, "video")
	}
	return row, nil
}

func (s *VideoServiceImpl) GetMany(ctx context.Context, filter repository.VideoFilter, cursor *pagination.Cursor[time.Time], limit int) (VideoPage, error) {
	if err := checkLimit(limit); err != nil {
		return VideoPage{}, err
	}
	rows, err := s.videos.ListPublic(ctx, filter, auth.ViewerID(ctx), cursor, limit)
	if err != nil {
		return VideoPage{}, internal("list videos", err)
	}
	return pagination.NewPage(rows, limit, repository.VideoRow.UpdatedCursor), nil
}

func (s *VideoServiceImpl) GetTrending(ctx context.Context, cursor *pagination.Cursor[int64], limit int) (TrendingPage, error) {
	if err := checkLimit(limit); err != nil {
		return TrendingPage{}, err
	}
	rows, err := s.videos.ListTrending(ctx, auth.ViewerID(ctx), cursor, limit)
	if err != nil {
		return TrendingPage{}, internal("list trending videos", err)
	}
	return pagination.NewPage(rows, limit, repository.VideoRow.ViewCursor), nil
}

func (s *VideoServiceImpl) GetSubscribed(ctx context.Context, cursor *pagination.Cursor[time.Time], limit int) (VideoPage, error) {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return VideoPage{}, err
	}
	if err := checkLimit(limit); err != nil {
		return VideoPage{}, err
	}
	rows, err := s.videos.ListSubscribed(ctx, viewer.ID, cursor, limit)
	if err != nil {
		return VideoPage{}, internal("list subscribed videos", err)
	}
	return pagination.NewPage(rows, limit, repository.VideoRow.UpdatedCursor), nil
}

func (s *VideoServiceImpl) Search(ctx context.Context, query string, categoryID *uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) (VideoPage, error) {
	return s.GetMany(ctx, repository.VideoFilter{Query: query, CategoryID: categoryID}, cursor, limit)
}

func (s *VideoServiceImpl) RecordView(ctx context.Context, videoID uuid.UUID) error {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return err
	}
	if err := s.views.Record(ctx, videoID, viewer.ID); err != nil {
		return fromRepo(err, "video")
	}
	return nil
}

func (s *VideoServiceImpl) React(ctx context.Context, videoID uuid.UUID, reaction models.ReactionType) (*models.ReactionType, error) {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	if !reaction.Valid() {
		return nil, badRequest("reaction type must be like or dislike")
	}
	current, err := s.reactions.ReactToVideo(ctx, videoID, viewer.ID, reaction)
	if err != nil {
		return nil, fromRepo(err, "video")
	}
	return current, nil
}
