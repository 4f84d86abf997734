package domain

import (
	"encoding/json"
	"strings"
)

// Role tags the kind of account a profile belongs to.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleClient     Role = "client"
	RoleContractor Role = "contractor"
	RoleLaborer    Role = "laborer"
	RoleUser       Role = "user"
)

// Valid reports whether r is one of the roles the platform issues.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient, RoleContractor, RoleLaborer, RoleUser:
		return true
	}
	return false
}

// Profile describes the signed-in operator as returned by the backend.
type Profile struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Role   Role   `json:"role"`
}

// IsAdmin reports whether the profile may hold an active session.
func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// UnmarshalJSON accepts both the backend's "_id" and a plain "id" field.
func (p *Profile) UnmarshalJSON(b []byte) error {
	var raw struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Avatar  string `json:"avatar"`
		Role    string `json:"role"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p.ID = raw.MongoID
	if p.ID == "" {
		p.ID = raw.ID
	}
	p.Name = raw.Name
	p.Email = raw.Email
	p.Avatar = raw.Avatar
	p.Role = Role(strings.ToLower(strings.TrimSpace(raw.Role)))
	return nil
}

// ProfilePatch carries a partial profile update. Nil fields are left as-is.
type ProfilePatch struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
	Role   *Role   `json:"role,omitempty"`
}

// Apply returns a copy of p with the patch merged in.
func (pp ProfilePatch) Apply(p Profile) Profile {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Email != nil {
		p.Email = *pp.Email
	}
	if pp.Avatar != nil {
		p.Avatar = *pp.Avatar
	}
	if pp.Role != nil {
		p.Role = *pp.Role
	}
	return p
}

// ChangesRole reports whether applying the patch to p would alter its role.
func (pp ProfilePatch) ChangesRole(p Profile) bool {
	return pp.Role != nil && *pp.Role != p.Role
}
