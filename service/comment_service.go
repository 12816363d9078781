package service

import (
	"context"
	"strings"
	"time"

	"github.com/RigelNana/arktube/auth"
	"github.com/RigelNana/arktube/models"
	"github.com/RigelNana/arktube/pagination"
	"github.com/RigelNana/arktube/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxCommentLength = 5000

// CommentPage 一页评论及该视频评论总数
type CommentPage struct {
	pagination.Page[repository.CommentRow, time.Time]
	TotalCount int64
}

type CommentService interface {
	List(ctx context.Context, videoID uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) (CommentPage, error)
	Create(ctx context.Context, videoID uuid.UUID, value string) (*models.Comment, error)
	Remove(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	React(ctx context.Context, commentID uuid.UUID, reaction models.ReactionType) (*models.ReactionType, error)
}

type CommentServiceImpl struct {
	comments  repository.CommentRepository
	reactions repository.ReactionRepository
	logger    *logrus.Logger
}

func NewCommentService(comments repository.CommentRepository, reactions repository.ReactionRepository, logger *logrus.Logger) CommentService {
	return &CommentServiceImpl{comments: comments, reactions: reactions, logger: logger}
}

func (s *CommentServiceImpl) List(ctx context.Context, videoID uuid.UUID, cursor *pagination.Cursor[time.Time], limit int) (CommentPage, error) {
	if err := checkLimit(limit); err != nil {
		return CommentPage{}, err
	}
	total, err := s.comments.CountByVideo(ctx, videoID)
	if err != nil {
		return CommentPage{}, internal("count comments", err)
	}
	rows, err := s.comments.ListByVideo(ctx, videoID, auth.ViewerID(ctx), cursor, limit)
	if err != nil {
		return CommentPage{}, internal("list comments", err)
	}
	return CommentPage{
		Page:       pagination.NewPage(rows, limit, repository.CommentRow.Cursor),
		TotalCount: total,
	}, nil
}

func (s *CommentServiceImpl) Create(ctx context.Context, videoID uuid.UUID, value string) (*models.Comment, error) {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, badRequest("comment must not be empty")
	}
	if len(value) > maxCommentLength {
		return nil, badRequest("comment is too long")
	}
	comment := &models.Comment{VideoID: videoID, UserID: viewer.ID, Value: value}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fromRepo(err, "video")
	}
	return comment, nil
}

// Remove 仅作者可删除，非作者与不存在返回同样的 NOT_FOUND
func (s *CommentServiceImpl) Remove(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	comment, err := s.comments.DeleteOwned(ctx, id, viewer.ID)
	if err != nil {
		return nil, fromRepo(err, "comment")
	}
	return comment, nil
}

func (s *CommentServiceImpl) React(ctx context.Context, commentID uuid.UUID, reaction models.ReactionType) (*models.ReactionType, error) {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	if !reaction.Valid() {
		return nil, badRequest("reaction type must be like or dislike")
	}
	current, err := s.reactions.ReactToComment(ctx, commentID, viewer.ID, reaction)
	if err != nil {
		return nil, fromRepo(err, "comment")
	}
	return current, nil
}
