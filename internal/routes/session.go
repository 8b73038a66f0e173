package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wanderhub/wanderhub/internal/session"
)

// RegisterSessionRoutes wires profile and rewards endpoints. The redeem
// route takes the idempotency middleware when Redis is available so a
// replayed redeem cannot double-spend.
func RegisterSessionRoutes(r fiber.Router, h *session.Handler, idem fiber.Handler) {
	r.Get("/me", h.Me)
	r.Post("/checkin", h.CheckIn)
	r.Post("/points/earn", h.Earn)
	if idem != nil {
		r.Post("/points/redeem", idem, h.Redeem)
	} else {
		r.Post("/points/redeem", h.Redeem)
	}
	r.Post("/vip/toggle", h.ToggleVIP)
}
