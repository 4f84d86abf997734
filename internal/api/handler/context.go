package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
)

// sessionReader is the read side of the session authority the handlers
// need.
type sessionReader interface {
	Current() domain.Session
}

// currentOperator returns the signed-in operator. The guard only admits
// authenticated requests into the protected tree, but the session can end
// between the guard and the handler; that case is reported as 401.
func currentOperator(sessions sessionReader) (domain.Profile, error) {
	s := sessions.Current()
	if !s.Authenticated() {
		return domain.Profile{}, echo.NewHTTPError(http.StatusUnauthorized, "session ended")
	}
	return *s.Profile, nil
}

// bindAndValidate decodes the request body into req and runs the
// registered validator over it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
