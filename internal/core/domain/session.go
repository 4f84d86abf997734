package domain

import "time"

// Status is the lifecycle state of the console's single session.
type Status string

const (
	StatusResolving     Status = "resolving"
	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// Credentials is the pair persisted by the credential store. The two
// halves are always written and cleared together.
type Credentials struct {
	Token   string
	Profile Profile
}

// Session is a point-in-time snapshot of the session authority.
type Session struct {
	Status     Status
	Credential string
	Profile    *Profile
}

// Authenticated reports whether the snapshot holds an admin identity.
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.Profile != nil
}

// EventKind distinguishes the notifications a subscriber receives.
type EventKind string

const (
	EventTransition     EventKind = "transition"
	EventProfileUpdated EventKind = "profile_updated"
)

// SessionEvent is delivered to subscribers after every status transition
// and every profile update. Redirect carries a navigation intent, set when
// a sign-out moved the operator out of the protected tree.
type SessionEvent struct {
	Kind     EventKind
	From     Status
	Session  Session
	Redirect string
	At       time.Time
}
