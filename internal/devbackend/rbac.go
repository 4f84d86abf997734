package devbackend

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
)

// RBAC admits only the listed roles; anything else is a 403.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[string(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ctxRole).(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, failureBody{Message: "admin privileges required"})
			}
			return next(c)
		}
	}
}
