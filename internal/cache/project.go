package cache

import (
	"context"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"SiteOK/storage/redis"
)

const (
	// 项目码 -> 项目 id 的解析缓存，签到热路径每次都要解析一遍
	projectCodePrefix = "project:code"

	projectCodeTTL = 10 * time.Minute
)

// GetProjectID 命中返回 (id, true)；miss 或 redis 故障都按 miss 处理
func GetProjectID(ctx context.Context, code string) (int64, bool) {
	key := redis.Key(projectCodePrefix, code)
	val, err := redis.Client().Get(ctx, key).Result()
	if err == goredis.Nil {
		return 0, false
	}
	if err != nil {
		return 0, false
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func SetProjectID(ctx context.Context, code string, id int64) error {
	key := redis.Key(projectCodePrefix, code)
	return redis.Client().Set(ctx, key, strconv.FormatInt(id, 10), projectCodeTTL).Err()
}

// InvalidateProjectCode 项目改码或删除时清掉映射
func InvalidateProjectCode(ctx context.Context, code string) error {
	key := redis.Key(projectCodePrefix, code)
	return redis.Client().Del(ctx, key).Err()
}
