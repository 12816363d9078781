package service

import (
	"context"
	"time"

	"github.com/RigelNana/arktube/auth"
	"github.com/RigelNana/arktube/pagination"
	"github.com/RigelNana/arktube/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type SubscriptionPage = pagination.Page[repository.SubscriptionRow, time.Time]

type SubscriptionService interface {
	Subscribe(ctx context.Context, creatorID uuid.UUID) error
	Unsubscribe(ctx context.Context, creatorID uuid.UUID) error
	List(ctx context.Context, cursor *pagination.Cursor[time.Time], limit int) (SubscriptionPage, error)
}

type SubscriptionServiceImpl struct {
	subscriptions repository.SubscriptionRepository
	logger        *logrus.Logger
}

func NewSubscriptionService(subscriptions repository.SubscriptionRepository, logger *logrus.Logger) SubscriptionService {
	return &SubscriptionServiceImpl{subscriptions: subscriptions, logger: logger}
}

// Subscribe 不能订阅自己；重复订阅视为成功
func (s *SubscriptionServiceImpl) Subscribe(ctx context.Context, creatorID uuid.UUID) error {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return err
	}
	if viewer.ID == creatorID {
		return badRequest("cannot subscribe to yourself")
	}
	if err := s.subscriptions.Create(ctx, viewer.ID, creatorID); err != nil {
		return fromRepo(err, "creator")
	}
	return nil
}

func (s *SubscriptionServiceImpl) Unsubscribe(ctx context.Context, creatorID uuid.UUID) error {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return err
	}
	if viewer.ID == creatorID {
		return badRequest("cannot unsubscribe from yourself")
	}
	if err := s.subscriptions.Delete(ctx, viewer.ID, creatorID); err != nil {
		return fromRepo(err, "subscription")
	}
	return nil
}

func (s *SubscriptionServiceImpl) List(ctx context.Context, cursor *pagination.Cursor[time.Time], limit int) (SubscriptionPage, error) {
	viewer, err := requireViewer(auth.ViewerFromContext(ctx))
	if err != nil {
		return SubscriptionPage{}, err
	}
	if err := checkLimit(limit); err != nil {
		return SubscriptionPage{}, err
	}
	rows, err := s.subscriptions.ListByViewer(ctx, viewer.ID, cursor, limit)
	if err != nil {
		return SubscriptionPage{}, internal("list subscriptions", err)
	}
	return pagination.NewPage(rows, limit, repository.SubscriptionRow.Cursor), nil
}
