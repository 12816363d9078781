package repository

import (
	"context"

	"github.com/RigelNana/arktube/models"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	BaseRepository[models.Category]
	ListAll(ctx context.Context) ([]*models.Category, error)
}

type CategoryRepositoryImpl struct {
	*BaseRepositoryImpl[models.Category]
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &CategoryRepositoryImpl{BaseRepositoryImpl: NewBaseRepository[models.Category](db)}
}

func (r *CategoryRepositoryImpl) ListAll(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
