package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tabaum/storefront/internal/api/handler"
	"github.com/tabaum/storefront/internal/core/ports"
)

// Auth requires a bearer token and injects the verified user id into the
// context. A missing credential is 401; a credential that fails
// verification is passed on as domain.ErrInvalidToken (403).
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Não autenticado")
			}

			userID, err := verifier.VerifyToken(token)
			if err != nil {
				return err
			}

			c.Set(handler.ContextUserID, userID)
			return next(c)
		}
	}
}
