package service

import (
	"context"
	"strings"

	"github.com/RigelNana/arktube/auth"
	"github.com/RigelNana/arktube/models"
	"github.com/RigelNana/arktube/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type UserService interface {
	// Sync 根据会话令牌同步本地用户
	Sync(ctx context.Context, claims *auth.Claims) (*models.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*repository.UserProfileRow, error)
}

type UserServiceImpl struct {
	users  repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, logger *logrus.Logger) UserService {
	return &UserServiceImpl{users: users, logger: logger}
}

func (s *UserServiceImpl) Sync(ctx context.Context, claims *auth.Claims) (*models.User, error) {
	name := strings.TrimSpace(claims.Name)
	if name == "" {
		name, _, _ = strings.Cut(claims.Email, "@")
	}
	if name == "" {
		name = "user"
	}
	user := &models.User{
		ExternalID: claims.Subject,
		Name:       name,
		Email:      claims.Email,
		ImageURL:   claims.Picture,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, internal("sync user", err)
	}
	return user, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, id uuid.UUID) (*repository.UserProfileRow, error) {
	profile, err := s.users.GetProfile(ctx, id, auth.ViewerID(ctx))
	if err != nil {
		return nil, fromRepo(err, "user")
	}
	return profile, nil
}
