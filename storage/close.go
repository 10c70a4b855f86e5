package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"SiteOK/pkg/logger"
	"SiteOK/storage/database"
	"SiteOK/storage/mq"
	"SiteOK/storage/redis"
)

// Close 按 MQ -> Redis -> Database 的顺序断开外部连接：
// 先停消息收发，最后关库，保证落盘写完
func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	steps := []struct {
		name  string
		close func(context.Context) error
	}{
		{"message queue", mq.Close},
		{"redis", redis.Close},
		{"database", database.Close},
	}

	for _, s := range steps {
		if err := s.close(ctx); err != nil {
			logger.Logger.Error("Failed to close storage backend",
				zap.String("backend", s.name),
				zap.Error(err),
			)
			continue
		}
		logger.Logger.Info("Storage backend closed", zap.String("backend", s.name))
	}
}
