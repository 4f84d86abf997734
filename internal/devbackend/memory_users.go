package devbackend

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
)

// MemoryUsers keeps accounts in process memory.
type MemoryUsers struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
}

var _ ports.UserRepository = (*MemoryUsers)(nil)

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *MemoryUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *MemoryUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *MemoryUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	u := cloneUser(user)
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return cloneUser(u), nil
}

func (r *MemoryUsers) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.byID[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if old.Email != user.Email {
		if _, taken := r.byEmail[user.Email]; taken {
			return domain.ErrUserExists
		}
		delete(r.byEmail, old.Email)
		r.byEmail[user.Email] = user.ID
	}
	r.byID[user.ID] = cloneUser(user)
	return nil
}
