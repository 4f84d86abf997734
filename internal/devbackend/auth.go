package devbackend

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by Auth.
const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// Auth validates the bearer JWT and injects its subject and role into the
// context. Every failure is a 401, which the console treats as the end of
// its session.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			var claims Claims
			tkn, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "token is not valid or has expired")
			}

			c.Set(ctxUserID, claims.Subject)
			c.Set(ctxRole, string(claims.Role))

			return next(c)
		}
	}
}
