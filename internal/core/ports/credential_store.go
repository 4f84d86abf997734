package ports

import (
	"context"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
)

// CredentialStore persists the bearer credential and the cached profile as
// one pair.
type CredentialStore interface {
	// Read returns the stored pair, or ok=false when the store is empty,
	// half-written or unreadable. Stray halves are cleared.
	Read(ctx context.Context) (creds domain.Credentials, ok bool)
	Write(ctx context.Context, creds domain.Credentials) error
	Clear(ctx context.Context) error
}

// Area is a small durable key-value space, the storage the credential
// store is built on. Multi-key mutations are applied atomically.
type Area interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	SetAll(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}
