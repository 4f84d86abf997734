package domain

import "time"

// User models an account held by the development backend. The console
// itself only ever sees the Profile projection of it.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile projects the account onto what the login response exposes.
func (u *User) Profile() Profile {
	return Profile{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Role:   u.Role,
	}
}
