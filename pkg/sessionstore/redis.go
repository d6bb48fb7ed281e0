package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKeyPrefix = "sess:"

// RedisBackend stores sessions as JSON strings with native key expiry.
type RedisBackend struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisBackend creates a backend storing keys under prefix.
func NewRedisBackend(client redis.UniversalClient, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) Load(ctx context.Context, token string) (map[string]any, error) {
	raw, err := b.client.Get(ctx, b.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	data := make(map[string]any)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Join(ErrCorruptRecord, err)
	}
	return data, nil
}

func (b *RedisBackend) Save(ctx context.Context, token string, data map[string]any, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, b.key(token), raw, ttl).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, token string) error {
	return b.client.Del(ctx, b.key(token)).Err()
}

func (b *RedisBackend) key(token string) string {
	return b.prefix + token
}
