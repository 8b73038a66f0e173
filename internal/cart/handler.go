package cart

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes cart HTTP endpoints.
type Handler struct {
	cart *Cart
}

// NewHandler builds a cart HTTP handler.
func NewHandler(cart *Cart) *Handler {
	return &Handler{cart: cart}
}

type addItemRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}

type itemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}

type cartResponse struct {
	Items []itemResponse `json:"items"`
	Count int            `json:"count"`
}

func (h *Handler) snapshot() cartResponse {
	items := h.cart.Items()
	resp := cartResponse{Items: make([]itemResponse, 0, len(items)), Count: h.cart.Count()}
	for _, item := range items {
		resp.Items = append(resp.Items, itemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Image:    item.Image,
			Quantity: item.Quantity,
		})
	}
	return resp
}

// Get returns the cart contents and total item count.
func (h *Handler) Get(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.snapshot())
}

// AddItem merges an item into the cart.
func (h *Handler) AddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.ID == "" {
		return fiber.NewError(http.StatusBadRequest, "item id is required")
	}
	h.cart.Add(c.UserContext(), Item{ID: req.ID, Name: req.Name, Price: req.Price, Image: req.Image}, req.Quantity)
	return c.Status(http.StatusOK).JSON(h.snapshot())
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem sets an item's quantity; zero or less removes it.
func (h *Handler) UpdateItem(c *fiber.Ctx) error {
	var req updateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	h.cart.SetQuantity(c.Params("itemId"), req.Quantity)
	return c.Status(http.StatusOK).JSON(h.snapshot())
}

// RemoveItem drops an item from the cart.
func (h *Handler) RemoveItem(c *fiber.Ctx) error {
	h.cart.Remove(c.Params("itemId"))
	return c.Status(http.StatusOK).JSON(h.snapshot())
}
