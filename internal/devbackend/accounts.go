package devbackend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// Claims is the payload of the tokens the development backend issues.
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Accounts implements registration, login and password changes.
type Accounts struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAccounts(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *Accounts {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &Accounts{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

// Register creates an account with a bcrypt password hash.
func (a *Accounts) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := a.now().UTC()
	return a.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// Seed makes sure an admin account exists for email. An existing account
// is left untouched.
func (a *Accounts) Seed(ctx context.Context, name, email, password string) (*domain.User, error) {
	u, err := a.repo.FindByEmail(ctx, strings.ToLower(email))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	return a.Register(ctx, name, email, password, domain.RoleAdmin)
}

// Login checks the password and issues a signed token. Any role may log
// in; refusing non-admins is the console's job.
func (a *Accounts) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := a.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := a.issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ChangePassword replaces the hash after checking the current password.
func (a *Accounts) ChangePassword(ctx context.Context, id, current, next string) error {
	user, err := a.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = a.now().UTC()
	return a.repo.Update(ctx, user)
}

// ApplyProfile writes the profile fields of rec onto the account with id,
// if there is one. It reports whether an account was updated.
func (a *Accounts) ApplyProfile(ctx context.Context, id string, rec domain.Record) (bool, error) {
	user, err := a.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if v, ok := rec["name"].(string); ok {
		user.Name = v
	}
	if v, ok := rec["email"].(string); ok && v != "" {
		user.Email = strings.ToLower(v)
	}
	if v, ok := rec["avatar"].(string); ok {
		user.Avatar = v
	}
	if v, ok := rec["role"].(string); ok && domain.Role(v).Valid() {
		user.Role = domain.Role(v)
	}
	user.UpdatedAt = a.now().UTC()
	return true, a.repo.Update(ctx, user)
}

func (a *Accounts) issue(user *domain.User) (string, error) {
	now := a.now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.jwtSecret))
}
