package ports

import (
	"context"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
)

// UserRepository persists the development backend's accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
