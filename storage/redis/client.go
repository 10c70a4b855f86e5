package redis

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"SiteOK/config"
)

var (
	client  *redis.Client
	once    sync.Once
	initErr error
)

func Init() error {
	once.Do(func() {
		client = redis.NewClient(&redis.Options{
			Addr:         config.Cfg.RedisAddr,
			Password:     config.Cfg.RedisPassword,
			DB:           config.Cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			MinIdleConns: 5,
			MaxRetries:   3,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		initErr = client.Ping(ctx).Err()
	})

	return initErr
}

func Client() *redis.Client {
	if client == nil {
		panic("redis: client not initialized")
	}
	return client
}

func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// Key 拼装带实例前缀的键，空段跳过
func Key(parts ...string) string {
	prefix := config.Cfg.RedisPrefix
	if prefix == "" {
		prefix = "siteok"
	}

	segs := make([]string, 0, len(parts)+1)
	segs = append(segs, prefix)
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}

	return strings.Join(segs, ":")
}
