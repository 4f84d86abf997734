package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "admin_console"

// Area is a key-value area backed by Redis, letting several console
// instances share one credential.
// Key format: <prefix>:<key>
type Area struct {
	client *redis.Client
	prefix string
}

// NewArea wraps client. An empty prefix falls back to defaultKeyPrefix.
func NewArea(client *redis.Client, prefix string) *Area {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &Area{client: client, prefix: prefix}
}

// Get returns the value stored under key.
func (a *Area) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := a.client.Get(ctx, a.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("area get %s: %w", key, err)
	}
	return v, true, nil
}

// SetAll writes every value inside one MULTI/EXEC transaction.
func (a *Area) SetAll(ctx context.Context, values map[string]string) error {
	_, err := a.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range values {
			pipe.Set(ctx, a.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("area set: %w", err)
	}
	return nil
}

// Delete removes keys with a single DEL.
func (a *Area) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = a.key(k)
	}
	if err := a.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("area delete: %w", err)
	}
	return nil
}

// Ping checks connectivity for readiness probes.
func (a *Area) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}

func (a *Area) key(k string) string {
	return a.prefix + ":" + k
}
