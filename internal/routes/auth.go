package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wanderhub/wanderhub/internal/auth"
)

// RegisterAuthRoutes wires the login variants plus refresh and logout.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
	group.Post("/social", h.SocialLogin)
	group.Post("/code", h.CodeLogin)
	group.Post("/refresh", h.Refresh)
	group.Post("/logout", h.Logout)
}
