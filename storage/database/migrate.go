package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"SiteOK/internal/model"
	"SiteOK/pkg/logger"
)

// Migrate 运行数据库迁移，创建所有表
func Migrate() error {
	db := DB()
	if db == nil {
		return gorm.ErrInvalidDB
	}

	logger.Logger.Info("Starting database migration...")

	err := db.AutoMigrate(
		&model.Admin{},
		&model.Guard{},
		&model.Project{},
		&model.AttendanceLog{},
		&model.DateRequest{},
	)

	if err != nil {
		logger.Logger.Error("Database migration failed", zap.Error(err))
		return err
	}

	logger.Logger.Info("Database migration completed successfully")
	return nil
}
