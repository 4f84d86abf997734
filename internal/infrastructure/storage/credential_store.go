// Package storage implements the console's credential store and the
// local key-value areas it can sit on.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
)

// Fixed keys of the persisted pair.
const (
	KeyToken   = "token"
	KeyProfile = "user"
)

// CredentialStore keeps the bearer credential and the cached profile in an
// Area under fixed keys. Both halves are written and cleared in a single
// area mutation.
type CredentialStore struct {
	area ports.Area
	log  zerolog.Logger
}

var _ ports.CredentialStore = (*CredentialStore)(nil)

// NewCredentialStore wraps area.
func NewCredentialStore(area ports.Area, log zerolog.Logger) *CredentialStore {
	return &CredentialStore{area: area, log: log}
}

// Read returns the stored pair. A lone half or an unparsable profile is
// treated as an empty store and cleared; area errors are logged and also
// reported as empty.
func (s *CredentialStore) Read(ctx context.Context) (domain.Credentials, bool) {
	token, hasToken, err := s.area.Get(ctx, KeyToken)
	if err != nil {
		s.log.Warn().Err(err).Str("key", KeyToken).Msg("credential store read failed")
		return domain.Credentials{}, false
	}
	raw, hasProfile, err := s.area.Get(ctx, KeyProfile)
	if err != nil {
		s.log.Warn().Err(err).Str("key", KeyProfile).Msg("credential store read failed")
		return domain.Credentials{}, false
	}

	hasToken = hasToken && token != ""
	hasProfile = hasProfile && raw != ""

	if !hasToken && !hasProfile {
		return domain.Credentials{}, false
	}
	if hasToken != hasProfile {
		s.log.Warn().
			Bool("token", hasToken).
			Bool("profile", hasProfile).
			Msg("credential store held a stray half, clearing")
		s.clearQuietly(ctx)
		return domain.Credentials{}, false
	}

	var profile domain.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		s.log.Warn().Err(err).Msg("cached profile unreadable, clearing credential store")
		s.clearQuietly(ctx)
		return domain.Credentials{}, false
	}

	return domain.Credentials{Token: token, Profile: profile}, true
}

// Write stores the credential as raw text and the profile as JSON.
func (s *CredentialStore) Write(ctx context.Context, creds domain.Credentials) error {
	if creds.Token == "" {
		return domain.ErrMissingToken
	}
	b, err := json.Marshal(creds.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.area.SetAll(ctx, map[string]string{
		KeyToken:   creds.Token,
		KeyProfile: string(b),
	}); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Clear removes both keys.
func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.area.Delete(ctx, KeyToken, KeyProfile); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *CredentialStore) clearQuietly(ctx context.Context) {
	if err := s.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("credential store clear failed")
	}
}
