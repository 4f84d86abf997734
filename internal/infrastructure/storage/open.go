package storage

import (
	"context"
	"fmt"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
	redisdb "github.com/Nouman-Qamar/Ai-Construction-Admin/internal/infrastructure/db/redis"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/pkg/config"
)

// Opened is an area selected by configuration. Ping is nil for backends
// without a remote dependency.
type Opened struct {
	Area     ports.Area
	Location string
	Ping     func(ctx context.Context) error
	Close    func() error
}

// Open selects the area named by STORE_BACKEND.
func Open(ctx context.Context, cfg *config.Config) (*Opened, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory:
		return &Opened{Area: NewMemoryArea(), Location: "memory", Close: noClose}, nil

	case config.StoreRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		area := redisdb.NewArea(client, cfg.Redis.KeyPrefix)
		return &Opened{
			Area:     area,
			Location: fmt.Sprintf("redis://%s/%d", cfg.Redis.Addr, cfg.Redis.DB),
			Ping:     area.Ping,
			Close:    client.Close,
		}, nil

	default:
		path := cfg.Store.Path
		if path == "" {
			p, err := DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		area, err := NewFileArea(path)
		if err != nil {
			return nil, err
		}
		return &Opened{Area: area, Location: area.Path(), Close: noClose}, nil
	}
}

func noClose() error { return nil }
