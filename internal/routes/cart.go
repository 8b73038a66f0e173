package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wanderhub/wanderhub/internal/cart"
)

// RegisterCartRoutes wires cart endpoints.
func RegisterCartRoutes(r fiber.Router, h *cart.Handler) {
	r.Get("/cart", h.Get)
	r.Post("/cart/items", h.AddItem)
	r.Put("/cart/items/:itemId", h.UpdateItem)
	r.Delete("/cart/items/:itemId", h.RemoveItem)
}
