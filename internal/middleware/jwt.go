package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the authenticated user id into the request context
// under the "user_id" key. The provided secret must match the one used
// when issuing tokens. A request is rejected with 401 when the
// Authorization header is absent or has no token after the scheme, and
// with 401 again when the token fails verification. There is no refresh
// and no revocation list; a token stays valid until natural expiry.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(auth, " ", 2)
			if auth == "" || len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Authentication token is required",
				})
			}
			uid, err := utils.ParseAccessToken(secret, strings.TrimSpace(parts[1]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Invalid or expired token",
				})
			}
			c.Set("user_id", uid)
			return next(c)
		}
	}
}
