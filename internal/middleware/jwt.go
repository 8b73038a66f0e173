package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wanderhub/wanderhub/internal/auth"
	"github.com/wanderhub/wanderhub/internal/session"
)

// SessionAuth validates the bearer token and requires its subject to
// own the currently active session.
func SessionAuth(tokens *auth.Service, sessions *session.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		sub, err := tokens.Verify(tokenStr)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		user, ok := sessions.Current()
		if !ok || user.Username != sub {
			return fiber.NewError(http.StatusUnauthorized, "session no longer active")
		}

		c.Locals("username", sub)
		return c.Next()
	}
}
