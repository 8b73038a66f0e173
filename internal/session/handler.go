package session

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handler exposes profile and rewards endpoints for the active session.
type Handler struct {
	sessions *Service
}

// NewHandler builds a session HTTP handler.
func NewHandler(sessions *Service) *Handler {
	return &Handler{sessions: sessions}
}

type profileResponse struct {
	Username            string `json:"username"`
	Points              int    `json:"points"`
	VIP                 bool   `json:"vip"`
	PermanentVIP        bool   `json:"permanent_vip"`
	ConsecutiveCheckIns int    `json:"consecutive_check_in_days"`
	CanCheckIn          bool   `json:"can_check_in"`
}

// Me returns the active session's profile and rewards state.
func (h *Handler) Me(c *fiber.Ctx) error {
	user, ok := h.sessions.Current()
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "no active session")
	}
	return c.Status(http.StatusOK).JSON(profileResponse{
		Username:            user.Username,
		Points:              user.Points,
		VIP:                 user.VIP,
		PermanentVIP:        user.PermanentVIP,
		ConsecutiveCheckIns: user.ConsecutiveCheckIns,
		CanCheckIn:          h.sessions.CanCheckIn(),
	})
}

// CheckIn performs the daily check-in.
func (h *Handler) CheckIn(c *fiber.Ctx) error {
	points, ok := h.sessions.CheckIn(c.UserContext())
	if !ok {
		return fiber.NewError(http.StatusConflict, "already checked in today")
	}
	user, _ := h.sessions.Current()
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"points_earned": points,
		"streak_days":   user.ConsecutiveCheckIns,
		"points":        user.Points,
	})
}

type pointsRequest struct {
	Amount int `json:"amount"`
}

// Earn credits points to the active session.
func (h *Handler) Earn(c *fiber.Ctx) error {
	var req pointsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Amount <= 0 {
		return fiber.NewError(http.StatusBadRequest, "amount must be positive")
	}
	h.sessions.AddPoints(req.Amount)
	user, _ := h.sessions.Current()
	return c.Status(http.StatusOK).JSON(fiber.Map{"points": user.Points})
}

// Redeem spends points if the balance covers the amount.
func (h *Handler) Redeem(c *fiber.Ctx) error {
	var req pointsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Amount <= 0 {
		return fiber.NewError(http.StatusBadRequest, "amount must be positive")
	}
	if !h.sessions.SpendPoints(req.Amount) {
		return fiber.NewError(http.StatusConflict, "insufficient points")
	}
	user, _ := h.sessions.Current()
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"redeem_id": uuid.NewString(),
		"points":    user.Points,
	})
}

// ToggleVIP flips the session's VIP flag where permitted.
func (h *Handler) ToggleVIP(c *fiber.Ctx) error {
	h.sessions.ToggleVIP()
	user, ok := h.sessions.Current()
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "no active session")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"vip":           user.VIP,
		"permanent_vip": user.PermanentVIP,
	})
}
