package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/pkg/metrics"
)

const loginPath = "/auth/login"

// AuthService implements the sign-in view and the operator's own account
// actions on top of the gateway and the session authority.
type AuthService struct {
	gateway   ports.Gateway
	authority ports.SessionAuthority
	log       zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(gateway ports.Gateway, authority ports.SessionAuthority, log zerolog.Logger) *AuthService {
	return &AuthService{gateway: gateway, authority: authority, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	User    *domain.Profile `json:"user"`
	Message string          `json:"message"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// SignIn posts the credentials anonymously, lifts token and user from the
// response and hands them to the session authority. The authority refuses
// non-admin profiles with domain.ErrNotAdmin.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (domain.Profile, error) {
	if s.authority.Current().Status == domain.StatusAuthenticated {
		return domain.Profile{}, domain.ErrAlreadySignedIn
	}
	if email == "" || password == "" {
		return domain.Profile{}, domain.ErrInvalidCredentials
	}

	s.log.Debug().Str("email", email).Msg("attempting sign-in")

	var resp loginResponse
	err := s.gateway.Do(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   loginPath,
		Body:   loginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		metrics.SignInAttemptsTotal.WithLabelValues("failed").Inc()
		// The backend answers bad credentials with a 4xx; that is a
		// rejection of this attempt, not of a session.
		if f, ok := domain.AsFailure(err); ok && isRejection(f.Kind) {
			return domain.Profile{}, rejected(f.Message)
		}
		return domain.Profile{}, fmt.Errorf("sign in: %w", err)
	}

	if !resp.Success {
		metrics.SignInAttemptsTotal.WithLabelValues("failed").Inc()
		return domain.Profile{}, rejected(resp.Message)
	}
	if resp.Token == "" {
		metrics.SignInAttemptsTotal.WithLabelValues("failed").Inc()
		return domain.Profile{}, domain.ErrMissingToken
	}
	if resp.User == nil {
		metrics.SignInAttemptsTotal.WithLabelValues("failed").Inc()
		return domain.Profile{}, &domain.Failure{
			Kind:    domain.KindMalformedResponse,
			Message: "login response carried no user",
		}
	}

	if err := s.authority.SignIn(ctx, domain.Credentials{Token: resp.Token, Profile: *resp.User}); err != nil {
		return domain.Profile{}, err
	}
	return *resp.User, nil
}

// SignOut ends the local session. The backend keeps no session to revoke.
func (s *AuthService) SignOut(ctx context.Context) {
	s.authority.SignOut(ctx)
}

// UpdateProfile saves the patch on the backend, then merges it into the
// cached profile. A role change never reaches the backend: the session
// ends and domain.ErrRoleChanged is returned.
func (s *AuthService) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error) {
	current := s.authority.Current()
	if !current.Authenticated() {
		return domain.Profile{}, domain.ErrNotAuthenticated
	}
	if patch.ChangesRole(*current.Profile) {
		return s.authority.UpdateProfile(ctx, patch)
	}

	err := s.gateway.Do(ctx, ports.Request{
		Method: http.MethodPut,
		Path:   "/users/" + url.PathEscape(current.Profile.ID),
		Body:   patch,
	}, nil)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("update profile: %w", err)
	}

	return s.authority.UpdateProfile(ctx, patch)
}

// ChangePassword forwards a password change for the signed-in operator.
func (s *AuthService) ChangePassword(ctx context.Context, current, next string) error {
	session := s.authority.Current()
	if !session.Authenticated() {
		return domain.ErrNotAuthenticated
	}

	err := s.gateway.Do(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   "/users/" + url.PathEscape(session.Profile.ID) + "/change-password",
		Body:   changePasswordRequest{CurrentPassword: current, NewPassword: next},
	}, nil)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func isRejection(kind domain.FailureKind) bool {
	switch kind {
	case domain.KindUnauthorized, domain.KindForbidden, domain.KindNotFound, domain.KindClientError:
		return true
	}
	return false
}

func rejected(msg string) error {
	if msg == "" {
		msg = "login failed, please check your credentials"
	}
	return fmt.Errorf("%w: %s", domain.ErrSignInRejected, msg)
}
