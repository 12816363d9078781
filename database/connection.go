package database

import (
	"fmt"

	"github.com/RigelNana/arktube/config"
	"github.com/RigelNana/arktube/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.Debug {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate 先创建独立表，再创建依赖表
func Migrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Video{},
		&models.Comment{},
		&models.VideoReaction{},
		&models.CommentReaction{},
		&models.Subscription{},
		&models.VideoView{},
		&models.WebhookEvent{},
	}
	for _, t := range tables {
		if err := db.AutoMigrate(t); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", t, err)
		}
	}
	return nil
}

// SeedCategories 幂等写入默认分类
func SeedCategories(db *gorm.DB) error {
	categories := make([]models.Category, 0, len(models.DefaultCategories))
	for _, name := range models.DefaultCategories {
		categories = append(categories, models.Category{Name: name})
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&categories).Error
}
