package cache

import (
	"context"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"SiteOK/storage/redis"
)

const (
	// 审批状态缓存，前端会轮询这个接口，pending 阶段打满数据库没必要
	requestStatusPrefix = "request:status"

	// pending 状态短一点，裁决后状态不会再变，可以放久一些
	requestPendingTTL = 5 * time.Second
	requestFinalTTL   = 10 * time.Minute

	// 审批邮件去重标记
	approvalDedupePrefix = "notify:approval"
	approvalDedupeTTL    = 24 * time.Hour
)

func GetRequestStatus(ctx context.Context, id int64) (string, bool) {
	key := redis.Key(requestStatusPrefix, strconv.FormatInt(id, 10))
	val, err := redis.Client().Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", false
	}
	if err != nil {
		return "", false
	}
	return val, true
}

func SetRequestStatus(ctx context.Context, id int64, status string, terminal bool) error {
	key := redis.Key(requestStatusPrefix, strconv.FormatInt(id, 10))
	ttl := requestPendingTTL
	if terminal {
		ttl = requestFinalTTL
	}
	return redis.Client().Set(ctx, key, status, ttl).Err()
}

// MarkApprovalNotified 用 SETNX 做消费端去重，返回 true 表示本次抢到了发送权
func MarkApprovalNotified(ctx context.Context, messageID string) (bool, error) {
	key := redis.Key(approvalDedupePrefix, messageID)
	return redis.Client().SetNX(ctx, key, "1", approvalDedupeTTL).Result()
}
