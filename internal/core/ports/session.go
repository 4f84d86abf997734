package ports

import (
	"context"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
)

// CredentialSource is the view of the session authority the request
// gateway needs: read the credential per request, report rejection.
type CredentialSource interface {
	Credential() (string, bool)
	SignOut(ctx context.Context)
}

// SessionListener receives session events in transition order.
type SessionListener func(domain.SessionEvent)

// SessionAuthority owns the console's single in-memory session.
type SessionAuthority interface {
	CredentialSource
	Hydrate(ctx context.Context) domain.Session
	SignIn(ctx context.Context, creds domain.Credentials) error
	Current() domain.Session
	Subscribe(listener SessionListener) (unsubscribe func())
	UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error)
}
