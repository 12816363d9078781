package service

import (
	"context"

	"github.com/RigelNana/arktube/models"
	"github.com/RigelNana/arktube/repository"
)

type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
}

type CategoryServiceImpl struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &CategoryServiceImpl{categories: categories}
}

func (s *CategoryServiceImpl) List(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, internal("list categories", err)
	}
	return categories, nil
}
