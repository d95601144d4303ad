package token

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const blocklistPrefix = "token:revoked:"

type RedisBlocklist struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisBlocklist(client *redis.Client) *RedisBlocklist {
	return &RedisBlocklist{client: client}
}

func (b *RedisBlocklist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	return b.client.Set(ctx, blocklistPrefix+jti, "1", ttl).Err()
}

func (b *RedisBlocklist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blocklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
