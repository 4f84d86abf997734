package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/pkg/metrics"
)

// DefaultSignInPath is where a sign-out sends the operator.
const DefaultSignInPath = "/login"

type listenerEntry struct {
	id uint64
	fn ports.SessionListener
}

// SessionAuthority is the single source of truth for the console's
// session. It starts resolving, leaves that state once through Hydrate, and
// afterwards toggles through SignIn and SignOut.
//
// Store I/O is serialised by its own lock and never happens under the
// state lock, so Current and Credential do not wait on a slow store.
// Listeners run outside both locks, in transition order. A listener may
// call back into the authority; events it causes are delivered after the
// current batch.
type SessionAuthority struct {
	store      ports.CredentialStore
	log        zerolog.Logger
	signInPath string
	now        func() time.Time

	// io is held across a store call and the state change that follows it.
	// Lock order: io, then mu.
	io sync.Mutex

	mu         sync.Mutex
	status     domain.Status
	creds      *domain.Credentials
	listeners  []listenerEntry
	nextID     uint64
	pending    []domain.SessionEvent
	delivering bool
}

var _ ports.SessionAuthority = (*SessionAuthority)(nil)

// NewSessionAuthority returns an authority in the resolving state.
func NewSessionAuthority(store ports.CredentialStore, log zerolog.Logger) *SessionAuthority {
	return &SessionAuthority{
		store:      store,
		log:        log,
		signInPath: DefaultSignInPath,
		now:        time.Now,
		status:     domain.StatusResolving,
	}
}

// WithSignInPath overrides the navigation target emitted on sign-out.
func (a *SessionAuthority) WithSignInPath(path string) *SessionAuthority {
	a.signInPath = path
	return a
}

// Hydrate reads the credential store once at startup. A stored admin pair
// authenticates the session; anything else clears the store and leaves the
// operator anonymous. Calls after the first are no-ops.
func (a *SessionAuthority) Hydrate(ctx context.Context) domain.Session {
	a.io.Lock()
	if s := a.Current(); s.Status != domain.StatusResolving {
		a.io.Unlock()
		return s
	}

	creds, ok := a.store.Read(ctx)
	restored := ok && creds.Profile.IsAdmin()
	if !restored {
		if ok {
			a.log.Warn().Str("role", string(creds.Profile.Role)).Msg("stored profile is not an admin, discarding")
		}
		if err := a.store.Clear(ctx); err != nil {
			a.log.Warn().Err(err).Msg("clear credential store during hydrate")
		}
	}

	a.mu.Lock()
	if restored {
		a.creds = &creds
		a.transitionLocked(domain.StatusAuthenticated, "")
	} else {
		a.transitionLocked(domain.StatusAnonymous, "")
	}
	s := a.snapshotLocked()
	a.mu.Unlock()
	a.io.Unlock()

	if restored {
		a.log.Info().Str("operator", creds.Profile.Email).Msg("session restored")
	}
	a.flush()
	return s
}

// SignIn establishes an authenticated session. Non-admin profiles are
// refused with a not_admin *domain.Refusal before anything changes; a
// store write failure also leaves the session unchanged.
func (a *SessionAuthority) SignIn(ctx context.Context, creds domain.Credentials) error {
	if !creds.Profile.IsAdmin() {
		metrics.SignInAttemptsTotal.WithLabelValues("refused").Inc()
		a.log.Warn().Str("role", string(creds.Profile.Role)).Msg("sign-in refused: not an admin")
		return &domain.Refusal{Reason: domain.ReasonNotAdmin, Role: creds.Profile.Role}
	}
	if creds.Token == "" {
		return domain.ErrMissingToken
	}

	a.io.Lock()
	if err := a.store.Write(ctx, creds); err != nil {
		a.io.Unlock()
		metrics.SignInAttemptsTotal.WithLabelValues("failed").Inc()
		return err
	}
	a.mu.Lock()
	a.creds = &creds
	if a.status == domain.StatusAuthenticated {
		a.emitLocked(domain.EventProfileUpdated, a.status, "")
	} else {
		a.transitionLocked(domain.StatusAuthenticated, "")
	}
	a.mu.Unlock()
	a.io.Unlock()

	metrics.SignInAttemptsTotal.WithLabelValues("success").Inc()
	a.log.Info().Str("operator", creds.Profile.Email).Msg("signed in")
	a.flush()
	return nil
}

// SignOut clears the store and moves to anonymous, emitting a navigation
// intent towards the sign-in view. Repeated calls leave the same state and
// emit nothing further.
func (a *SessionAuthority) SignOut(ctx context.Context) {
	a.io.Lock()
	a.signOutHeld(ctx)
	a.io.Unlock()
	a.flush()
}

// signOutHeld requires a.io and takes a.mu itself.
func (a *SessionAuthority) signOutHeld(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Warn().Err(err).Msg("clear credential store during sign-out")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status == domain.StatusAnonymous {
		return
	}
	a.creds = nil
	a.transitionLocked(domain.StatusAnonymous, a.signInPath)
	a.log.Info().Msg("signed out")
}

// Current returns a snapshot of the session.
func (a *SessionAuthority) Current() domain.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// Credential returns the bearer credential while authenticated.
func (a *SessionAuthority) Credential() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != domain.StatusAuthenticated || a.creds == nil {
		return "", false
	}
	return a.creds.Token, true
}

// Subscribe registers listener for transitions and profile updates.
func (a *SessionAuthority) Subscribe(listener ports.SessionListener) func() {
	a.mu.Lock()
	a.nextID++
	id := a.nextID
	a.listeners = append(a.listeners, listenerEntry{id: id, fn: listener})
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			for i, l := range a.listeners {
				if l.id == id {
					a.listeners = append(a.listeners[:i:i], a.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// UpdateProfile merges patch into the cached profile and writes it back.
// A patch that would change the role ends the session instead and
// returns domain.ErrRoleChanged.
func (a *SessionAuthority) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error) {
	a.io.Lock()
	a.mu.Lock()
	if a.status != domain.StatusAuthenticated || a.creds == nil {
		a.mu.Unlock()
		a.io.Unlock()
		return domain.Profile{}, domain.ErrNotAuthenticated
	}
	current := *a.creds
	a.mu.Unlock()

	if patch.ChangesRole(current.Profile) {
		a.log.Warn().
			Str("from", string(current.Profile.Role)).
			Str("to", string(*patch.Role)).
			Msg("profile role change, ending session")
		a.signOutHeld(ctx)
		a.io.Unlock()
		a.flush()
		return domain.Profile{}, domain.ErrRoleChanged
	}

	updated := domain.Credentials{Token: current.Token, Profile: patch.Apply(current.Profile)}
	if err := a.store.Write(ctx, updated); err != nil {
		a.io.Unlock()
		return domain.Profile{}, err
	}
	a.mu.Lock()
	a.creds = &updated
	a.emitLocked(domain.EventProfileUpdated, a.status, "")
	a.mu.Unlock()
	a.io.Unlock()

	a.flush()
	return updated.Profile, nil
}

func (a *SessionAuthority) snapshotLocked() domain.Session {
	s := domain.Session{Status: a.status}
	if a.creds != nil {
		p := a.creds.Profile
		s.Credential = a.creds.Token
		s.Profile = &p
	}
	return s
}

func (a *SessionAuthority) transitionLocked(to domain.Status, redirect string) {
	from := a.status
	a.status = to
	metrics.SessionTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
	a.emitLocked(domain.EventTransition, from, redirect)
}

func (a *SessionAuthority) emitLocked(kind domain.EventKind, from domain.Status, redirect string) {
	a.pending = append(a.pending, domain.SessionEvent{
		Kind:     kind,
		From:     from,
		Session:  a.snapshotLocked(),
		Redirect: redirect,
		At:       a.now(),
	})
}

// flush delivers queued events. Only one goroutine delivers at a time;
// others leave their events to it, which keeps delivery in queue order.
func (a *SessionAuthority) flush() {
	a.mu.Lock()
	if a.delivering {
		a.mu.Unlock()
		return
	}
	a.delivering = true
	for len(a.pending) > 0 {
		batch := a.pending
		a.pending = nil
		listeners := make([]listenerEntry, len(a.listeners))
		copy(listeners, a.listeners)
		a.mu.Unlock()

		for _, ev := range batch {
			for _, l := range listeners {
				l.fn(ev)
			}
		}

		a.mu.Lock()
	}
	a.delivering = false
	a.mu.Unlock()
}
