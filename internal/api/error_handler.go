package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/service"
)

// errorResponse is the canonical error envelope for all console errors.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - redirects to the sign-in view when the session is gone,
//   - surfaces backend messages verbatim with a mapped status,
//   - logs unexpected errors without leaking them to the client.
func NewHTTPErrorHandler(log zerolog.Logger, signIn string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if sessionEnded(err) {
			_ = c.Redirect(http.StatusSeeOther, signIn)
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

// sessionEnded reports errors after which the operator has been signed out.
func sessionEnded(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrRoleChanged) ||
		errors.Is(err, domain.ErrNotAuthenticated)
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	if f, ok := domain.AsFailure(err); ok {
		code := failureStatus(f)
		if code >= http.StatusInternalServerError {
			log.Warn().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("backend request failed")
		}
		return code, errorResponse{Error: failureMessage(f), Kind: string(f.Kind)}
	}

	switch {
	case errors.Is(err, domain.ErrNotAdmin):
		return http.StatusForbidden, errorResponse{Error: "access denied. admin privileges required"}
	case errors.Is(err, domain.ErrSignInRejected):
		return http.StatusUnauthorized, errorResponse{Error: rejectionMessage(err)}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, errorResponse{Error: "email and password are required"}
	case errors.Is(err, domain.ErrAlreadySignedIn):
		return http.StatusConflict, errorResponse{Error: "already signed in"}
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusBadGateway, errorResponse{Error: "login response carried no token"}
	case errors.Is(err, service.ErrUnknownProjectState):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func failureStatus(f *domain.Failure) int {
	switch f.Kind {
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindClientError:
		if f.StatusCode >= 400 && f.StatusCode < 500 {
			return f.StatusCode
		}
		return http.StatusBadRequest
	case domain.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func failureMessage(f *domain.Failure) string {
	if f.Message != "" {
		return f.Message
	}
	switch f.Kind {
	case domain.KindNetwork:
		return "backend unreachable"
	case domain.KindTimeout:
		return "backend did not answer in time"
	case domain.KindMalformedResponse:
		return "backend sent an unreadable response"
	}
	return http.StatusText(failureStatus(f))
}

// rejectionMessage strips the sentinel prefix from a wrapped rejection so
// the backend's own wording reaches the operator.
func rejectionMessage(err error) string {
	msg := err.Error()
	prefix := domain.ErrSignInRejected.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
