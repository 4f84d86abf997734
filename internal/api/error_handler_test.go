package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/service"
)

func runErrorHandler(t *testing.T, method string, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/users", nil)
	rec := httptest.NewRecorder()
	NewHTTPErrorHandler(zerolog.Nop(), "/login")(err, e.NewContext(req, rec))
	return rec
}

func TestErrorHandler_SessionEndedRedirects(t *testing.T) {
	for _, err := range []error{
		&domain.Failure{Kind: domain.KindUnauthorized, StatusCode: 401, Message: "jwt expired"},
		domain.ErrRoleChanged,
		fmt.Errorf("update: %w", domain.ErrNotAuthenticated),
	} {
		rec := runErrorHandler(t, http.MethodGet, err)
		if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
			t.Fatalf("%v: expected redirect to sign-in, got %d", err, rec.Code)
		}
	}
}

func TestErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
		kind    string
	}{
		{"forbidden", &domain.Failure{Kind: domain.KindForbidden, StatusCode: 403, Message: "Admins only"}, 403, "Admins only", "forbidden"},
		{"not found", &domain.Failure{Kind: domain.KindNotFound, StatusCode: 404, Message: "User not found"}, 404, "User not found", "not_found"},
		{"client error", &domain.Failure{Kind: domain.KindClientError, StatusCode: 409, Message: "Email taken"}, 409, "Email taken", "client_error"},
		{"server error", &domain.Failure{Kind: domain.KindServerError, StatusCode: 500, Message: "boom"}, 502, "boom", "server_error"},
		{"timeout", &domain.Failure{Kind: domain.KindTimeout}, 504, "backend did not answer in time", "timeout"},
		{"network", &domain.Failure{Kind: domain.KindNetwork}, 502, "backend unreachable", "network"},
		{"malformed", &domain.Failure{Kind: domain.KindMalformedResponse, StatusCode: 200}, 502, "backend sent an unreadable response", "malformed_response"},
		{"not admin", &domain.Refusal{Reason: domain.ReasonNotAdmin, Role: domain.RoleClient}, 403, "access denied. admin privileges required", ""},
		{"rejected", fmt.Errorf("%w: %s", domain.ErrSignInRejected, "Invalid email or password"), 401, "Invalid email or password", ""},
		{"invalid credentials", domain.ErrInvalidCredentials, 400, "email and password are required", ""},
		{"already signed in", domain.ErrAlreadySignedIn, 409, "already signed in", ""},
		{"missing token", domain.ErrMissingToken, 502, "login response carried no token", ""},
		{"unknown state", fmt.Errorf("%w: %q", service.ErrUnknownProjectState, "archived"), 404, "", ""},
		{"http error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), 400, "invalid payload", ""},
		{"unexpected", errors.New("disk on fire"), 500, "internal server error", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runErrorHandler(t, http.MethodGet, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if tc.message != "" && body.Error != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, body.Error)
			}
			if body.Kind != tc.kind {
				t.Fatalf("expected kind %q, got %q", tc.kind, body.Kind)
			}
		})
	}
}

func TestErrorHandler_HeadHasNoBody(t *testing.T) {
	rec := runErrorHandler(t, http.MethodHead, &domain.Failure{Kind: domain.KindNotFound, StatusCode: 404})
	if rec.Code != http.StatusNotFound || rec.Body.Len() != 0 {
		t.Fatalf("expected bare 404, got %d %q", rec.Code, rec.Body.String())
	}
}
