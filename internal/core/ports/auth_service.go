package ports

import (
	"context"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
)

// AuthService drives the sign-in view and the operator's own account.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (domain.Profile, error)
	SignOut(ctx context.Context)
	UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error)
	ChangePassword(ctx context.Context, current, next string) error
}
