package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/wanderhub/wanderhub/internal/session"
)

// Handler exposes the login variants, refresh and logout endpoints.
type Handler struct {
	sessions *session.Service
	tokens   *Service
}

// NewHandler builds an auth HTTP handler.
func NewHandler(sessions *session.Service, tokens *Service) *Handler {
	return &Handler{sessions: sessions, tokens: tokens}
}

type loginResponse struct {
	Username     string `json:"username"`
	Points       int    `json:"points"`
	VIP          bool   `json:"vip"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (h *Handler) respondLoggedIn(c *fiber.Ctx) error {
	user, ok := h.sessions.Current()
	if !ok {
		return fiber.NewError(http.StatusInternalServerError, "session not established")
	}
	pair, err := h.tokens.Issue(user.Username)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(loginResponse{
		Username:     user.Username,
		Points:       user.Points,
		VIP:          user.VIP,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login validates credentials against the injected table.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	ok, err := h.sessions.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid username or password")
	}
	return h.respondLoggedIn(c)
}

type socialLoginRequest struct {
	Provider string `json:"provider"`
}

// SocialLogin signs in through a simulated social provider.
func (h *Handler) SocialLogin(c *fiber.Ctx) error {
	var req socialLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	ok, err := h.sessions.SocialLogin(c.UserContext(), req.Provider)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return fiber.NewError(http.StatusBadRequest, "provider is required")
	}
	return h.respondLoggedIn(c)
}

type codeLoginRequest struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}

// CodeLogin signs in with an identifier and one-time code.
func (h *Handler) CodeLogin(c *fiber.Ctx) error {
	var req codeLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	ok, err := h.sessions.LoginWithCode(c.UserContext(), req.Identifier, req.Code)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "identifier and code are required")
	}
	return h.respondLoggedIn(c)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh issues a new access token using a valid refresh token.
func (h *Handler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	token, exp, err := h.tokens.Refresh(req.RefreshToken)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"access_token": token, "expires_in": exp})
}

// Logout archives the session's rewards state and clears it.
func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c.UserContext()); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "logged_out"})
}
