package devbackend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
)

func TestAccounts_Register_HashesPassword(t *testing.T) {
	svc := NewAccounts(NewMemoryUsers(), "secret", time.Hour)

	user, err := svc.Register(context.Background(), "Alice", "Alice@Example.com", "pass1234", domain.RoleContractor)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected an ID to be assigned")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %q", user.Email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAccounts_Register_Validation(t *testing.T) {
	svc := NewAccounts(NewMemoryUsers(), "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "x", "", "pass", domain.RoleAdmin); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "x", "x@example.com", "pass", "root"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAccounts_Register_Duplicate(t *testing.T) {
	svc := NewAccounts(NewMemoryUsers(), "secret", time.Hour)

	_, _ = svc.Register(context.Background(), "Bob", "bob@example.com", "pass", domain.RoleClient)
	if _, err := svc.Register(context.Background(), "Bob", "bob@example.com", "pass2", domain.RoleClient); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAccounts_Login_IssuesToken(t *testing.T) {
	svc := NewAccounts(NewMemoryUsers(), "secret", time.Hour)
	created, err := svc.Register(context.Background(), "Carol", "carol@example.com", "s3cretpw", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cretpw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("unexpected user %+v", user)
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Subject != created.ID || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Fatalf("unexpected expiry %v", claims.ExpiresAt)
	}
}

func TestAccounts_Login_Failures(t *testing.T) {
	svc := NewAccounts(NewMemoryUsers(), "secret", time.Hour)
	_, _ = svc.Register(context.Background(), "Dan", "dan@example.com", "rightpass", domain.RoleAdmin)

	if _, _, err := svc.Login(context.Background(), "dan@example.com", "wrongpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "rightpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAccounts_ChangePassword(t *testing.T) {
	svc := NewAccounts(NewMemoryUsers(), "secret", time.Hour)
	u, _ := svc.Register(context.Background(), "Eve", "eve@example.com", "oldpass1", domain.RoleAdmin)

	if err := svc.ChangePassword(context.Background(), u.ID, "nope", "newpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), u.ID, "oldpass1", "newpass1"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "eve@example.com", "newpass1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestAccounts_SeedIsIdempotent(t *testing.T) {
	svc := NewAccounts(NewMemoryUsers(), "secret", time.Hour)

	first, err := svc.Seed(context.Background(), "Admin", "admin@example.com", "Admin@123456")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	second, err := svc.Seed(context.Background(), "Admin", "admin@example.com", "other")
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same account, got %s and %s", first.ID, second.ID)
	}
}
