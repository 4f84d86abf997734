package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CredentialInfo is what can be read off a bearer credential locally. The
// console never verifies credentials; the backend is the only judge.
type CredentialInfo struct {
	Opaque    bool       `json:"opaque"`
	Subject   string     `json:"subject,omitempty"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the credential carries an expiry that has passed.
func (i CredentialInfo) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}

// InspectCredential decodes the claims of a JWT-shaped credential without
// checking its signature. Anything else is reported as opaque.
func InspectCredential(token string) CredentialInfo {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return CredentialInfo{Opaque: true}
	}

	info := CredentialInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		t := claims.IssuedAt.Time
		info.IssuedAt = &t
	}
	if claims.ExpiresAt != nil {
		t := claims.ExpiresAt.Time
		info.ExpiresAt = &t
	}
	return info
}
