// middleware/auth_middleware.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/HSouheill/lifelessons_backend/models"
	"github.com/HSouheill/lifelessons_backend/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Context keys set by RequireAuth
const (
	ContextKeyEmail = "email"
	ContextKeyUID   = "uid"
)

// RequireAuth verifies the bearer token and stores the caller's email in the
// request context. Missing or invalid tokens are rejected with 401.
func RequireAuth(verifier services.TokenVerifier, logger *zap.SugaredLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Unauthorized access: missing bearer token",
				})
			}

			principal, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				logger.Debugw("token verification failed", "path", c.Path(), "error", err)
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Unauthorized access: invalid token",
				})
			}

			c.Set(ContextKeyEmail, principal.Email)
			c.Set(ContextKeyUID, principal.UID)
			return next(c)
		}
	}
}

// ExtractBearerToken returns the token of an "Authorization: Bearer" header value
func ExtractBearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetEmail returns the verified caller email, empty on unauthenticated routes
func GetEmail(c echo.Context) string {
	if email, ok := c.Get(ContextKeyEmail).(string); ok {
		return email
	}
	return ""
}
