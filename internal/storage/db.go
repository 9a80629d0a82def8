package storage

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stackslice/internal/types"
	"stackslice/log"
)

var DB *gorm.DB

// InitDB opens (creating if needed) the sqlite database at dbPath and
// migrates the schema.
func InitDB(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.GetLogger().Error("failed to create database directory", zap.String("dir", dir), zap.Error(err))
		return err
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.GetLogger().Error("failed to connect database", zap.Error(err))
		return err
	}

	if err = DB.AutoMigrate(&types.VideoJob{}); err != nil {
		log.GetLogger().Error("failed to migrate database", zap.Error(err))
		return err
	}

	log.GetLogger().Info("Database initialized successfully", zap.String("path", dbPath))
	return nil
}
