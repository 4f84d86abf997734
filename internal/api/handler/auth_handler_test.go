package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
)

type stubAuthService struct {
	signInFn         func(ctx context.Context, email, password string) (domain.Profile, error)
	updateProfileFn  func(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error)
	changePasswordFn func(ctx context.Context, current, next string) error
	signOuts         int
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (domain.Profile, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubAuthService) SignOut(context.Context) { s.signOuts++ }

func (s *stubAuthService) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error) {
	return s.updateProfileFn(ctx, patch)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, current, next string) error {
	return s.changePasswordFn(ctx, current, next)
}

type stubSessions struct{ session domain.Session }

func (s stubSessions) Current() domain.Session { return s.session }

func signedIn(id string) stubSessions {
	return stubSessions{session: domain.Session{
		Status:     domain.StatusAuthenticated,
		Credential: "tok",
		Profile:    &domain.Profile{ID: id, Email: "admin@aiconst.com", Role: domain.RoleAdmin},
	}}
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(_ context.Context, email, password string) (domain.Profile, error) {
			if email != "admin@aiconst.com" || password != "Admin@123456" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return domain.Profile{ID: "a1", Email: email, Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(stub, stubSessions{}, "/")

	c, rec := newContext(http.MethodPost, "/login", `{"email":"admin@aiconst.com","password":"Admin@123456"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["role"] != "admin" || resp["redirect"] != "/" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_Validation(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(context.Context, string, string) (domain.Profile, error) {
			t.Fatalf("service must not be called on invalid input")
			return domain.Profile{}, nil
		},
	}
	h := NewAuthHandler(stub, stubSessions{}, "/")

	for name, body := range map[string]string{
		"missing password": `{"email":"admin@aiconst.com"}`,
		"bad email":        `{"email":"admin","password":"Admin@123456"}`,
		"short password":   `{"email":"admin@aiconst.com","password":"short"}`,
		"not json":         `{email`,
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/login", body)
			if code := httpCode(t, h.Login(c)); code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", code)
			}
		})
	}
}

func TestAuthHandler_Login_ServiceErrorPassesThrough(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(context.Context, string, string) (domain.Profile, error) {
			return domain.Profile{}, &domain.Refusal{Reason: domain.ReasonNotAdmin, Role: domain.RoleClient}
		},
	}
	h := NewAuthHandler(stub, stubSessions{}, "/")

	c, _ := newContext(http.MethodPost, "/login", `{"email":"c@example.com","password":"Client@1234"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrNotAdmin) {
		t.Fatalf("expected not-admin refusal, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	stub := &stubAuthService{}
	h := NewAuthHandler(stub, stubSessions{}, "/")

	c, rec := newContext(http.MethodPost, "/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" || stub.signOuts != 1 {
		t.Fatalf("unexpected logout result %d %q %d", rec.Code, rec.Header().Get(echo.HeaderLocation), stub.signOuts)
	}
}

func TestAuthHandler_Session_InspectsCredential(t *testing.T) {
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "a1",
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
	}).SignedString([]byte("whatever"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	sessions := signedIn("a1")
	sessions.session.Credential = token
	h := NewAuthHandler(&stubAuthService{}, sessions, "/")
	h.now = func() time.Time { return issued.Add(2 * time.Hour) }

	c, rec := newContext(http.MethodGet, "/session", "")
	if err := h.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != domain.StatusAuthenticated || resp.Credential == nil || resp.Credential.Subject != "a1" || !resp.Expired {
		t.Fatalf("unexpected session payload: %s", rec.Body.String())
	}
}

func TestAuthHandler_Session_Anonymous(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, stubSessions{session: domain.Session{Status: domain.StatusAnonymous}}, "/")

	c, rec := newContext(http.MethodGet, "/session", "")
	if err := h.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "credential") || strings.Contains(rec.Body.String(), "user") {
		t.Fatalf("anonymous session must not carry a user: %s", rec.Body.String())
	}
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	var got domain.ProfilePatch
	stub := &stubAuthService{
		updateProfileFn: func(_ context.Context, patch domain.ProfilePatch) (domain.Profile, error) {
			got = patch
			return domain.Profile{ID: "a1", Name: *patch.Name, Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(stub, signedIn("a1"), "/")

	c, rec := newContext(http.MethodPut, "/admin/profile", `{"name":"Ada Admin"}`)
	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || got.Name == nil || *got.Name != "Ada Admin" || got.Role != nil {
		t.Fatalf("unexpected update: %d %+v", rec.Code, got)
	}

	c, _ = newContext(http.MethodPut, "/admin/profile", `{"role":"superuser"}`)
	if code := httpCode(t, h.UpdateProfile(c)); code != http.StatusBadRequest {
		t.Fatalf("expected unknown role to be rejected, got %d", code)
	}
}

func TestAuthHandler_UpdateProfile_RequiresSession(t *testing.T) {
	stub := &stubAuthService{
		updateProfileFn: func(context.Context, domain.ProfilePatch) (domain.Profile, error) {
			t.Fatalf("service must not be called without a session")
			return domain.Profile{}, nil
		},
	}
	h := NewAuthHandler(stub, stubSessions{session: domain.Session{Status: domain.StatusAnonymous}}, "/")

	c, _ := newContext(http.MethodPut, "/admin/profile", `{"name":"Ada"}`)
	if code := httpCode(t, h.UpdateProfile(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	called := false
	stub := &stubAuthService{
		changePasswordFn: func(_ context.Context, current, next string) error {
			called = current == "Admin@123456" && next == "Admin@654321"
			return nil
		},
	}
	h := NewAuthHandler(stub, signedIn("a1"), "/")

	c, rec := newContext(http.MethodPost, "/admin/password", `{"currentPassword":"Admin@123456","newPassword":"Admin@654321"}`)
	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || !called {
		t.Fatalf("unexpected result %d %v", rec.Code, called)
	}

	c, _ = newContext(http.MethodPost, "/admin/password", `{"currentPassword":"Admin@123456","newPassword":"Admin@123456"}`)
	err := h.ChangePassword(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected reused password to be rejected, got %d", code)
	}
	if !strings.Contains(err.Error(), "newPassword must differ from currentpassword") {
		t.Fatalf("unexpected message: %v", err)
	}
}
