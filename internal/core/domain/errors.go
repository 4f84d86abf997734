package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a backend request did not produce a payload.
type FailureKind string

const (
	KindUnauthorized      FailureKind = "unauthorized"
	KindForbidden         FailureKind = "forbidden"
	KindNotFound          FailureKind = "not_found"
	KindClientError       FailureKind = "client_error"
	KindServerError       FailureKind = "server_error"
	KindNetwork           FailureKind = "network"
	KindTimeout           FailureKind = "timeout"
	KindMalformedResponse FailureKind = "malformed_response"
)

// Sentinels matched by errors.Is against a *Failure of the same kind.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrClientError       = errors.New("client error")
	ErrServerError       = errors.New("server error")
	ErrNetwork           = errors.New("network error")
	ErrTimeout           = errors.New("request timed out")
	ErrMalformedResponse = errors.New("malformed response")
)

var kindSentinels = map[FailureKind]error{
	KindUnauthorized:      ErrUnauthorized,
	KindForbidden:         ErrForbidden,
	KindNotFound:          ErrNotFound,
	KindClientError:       ErrClientError,
	KindServerError:       ErrServerError,
	KindNetwork:           ErrNetwork,
	KindTimeout:           ErrTimeout,
	KindMalformedResponse: ErrMalformedResponse,
}

// Failure is the typed error returned by the request gateway.
type Failure struct {
	Kind       FailureKind
	StatusCode int    // zero when no response was received
	Message    string // server message, surfaced verbatim
	Err        error  // transport or decode cause, if any
}

func (f *Failure) Error() string {
	msg := f.Message
	if msg == "" && f.Err != nil {
		msg = f.Err.Error()
	}
	if f.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", f.Kind, f.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s", f.Kind, msg)
}

// Is matches the sentinel of the failure's kind.
func (f *Failure) Is(target error) bool {
	return kindSentinels[f.Kind] == target
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// RefusalReason explains why the session authority declined a sign-in.
type RefusalReason string

const ReasonNotAdmin RefusalReason = "not_admin"

// ErrNotAdmin is matched by a not_admin refusal.
var ErrNotAdmin = errors.New("access denied: admin privileges required")

// Refusal is returned when a sign-in is rejected locally, before any
// state changes.
type Refusal struct {
	Reason RefusalReason
	Role   Role
}

func (r *Refusal) Error() string {
	return fmt.Sprintf("sign-in refused (%s): role %q", r.Reason, r.Role)
}

func (r *Refusal) Is(target error) bool {
	return r.Reason == ReasonNotAdmin && target == ErrNotAdmin
}

var (
	ErrNotAuthenticated = errors.New("no authenticated session")
	ErrAlreadySignedIn  = errors.New("already signed in")
	ErrRoleChanged      = errors.New("profile role changed; session ended")
	ErrSignInRejected   = errors.New("sign-in rejected by backend")
	ErrMissingToken     = errors.New("login response carried no token")
)

// Errors used by the development backend.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrRecordNotFound     = errors.New("record not found")
)
