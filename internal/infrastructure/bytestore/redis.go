package bytestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medicore/internal/store"

	"github.com/redis/go-redis/v9"
)

// Redis keeps each key as a plain string value without expiry.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return b, nil
}

func (r *Redis) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, data, 0).Err(); err != nil {
		if isRedisQuota(err) {
			return fmt.Errorf("redis set %s: %w: %v", key, store.ErrStorageQuotaExceeded, err)
		}
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// isRedisQuota matches maxmemory rejections and the bulk string size limit.
func isRedisQuota(err error) bool {
	var rerr redis.Error
	if !errors.As(err, &rerr) {
		return false
	}
	msg := rerr.Error()
	return strings.HasPrefix(msg, "OOM") || strings.Contains(msg, "exceeds maximum allowed size")
}
