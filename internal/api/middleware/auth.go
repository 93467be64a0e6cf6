package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/dentalshift/marketplace-api/internal/core/ports"
)

// Auth validates the bearer JWT and resolves its subject against the user
// directory. The resolved user is injected into the request context under
// "user" (and its role under "role" for the RBAC middleware). Every failure
// is a 401 carrying a WWW-Authenticate: Bearer hint.
func Auth(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized(c, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorized(c, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return unauthorized(c, "invalid or expired token")
			}

			sub, _ := claims["sub"].(string)
			if sub == "" {
				return unauthorized(c, "token missing subject")
			}

			// The subject must still resolve to a user record. A stale
			// subject means the token is unusable even when the signature
			// and expiry check out.
			user, err := users.FindByID(c.Request().Context(), sub)
			if err != nil {
				return unauthorized(c, "invalid or expired token")
			}

			c.Set("user", user)
			c.Set("role", string(user.Role))

			return next(c)
		}
	}
}

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
