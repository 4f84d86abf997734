package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "ai-construction-devbackend"
)

// Config selects the dev backend's account database.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store holds the connection behind the dev backend's persistent accounts.
type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// Open connects, checks the primary answers and prepares the users
// collection indexes.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping %s: %w", cfg.Database, err)
	}

	s := &Store{client: client, db: client.Database(cfg.Database), timeout: timeout}
	if err := s.Users().EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// Users returns the account repository on this store.
func (s *Store) Users() *UserRepository {
	return NewUserRepository(s.db)
}

// Close disconnects, giving in-flight operations the connect timeout to
// finish.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}
