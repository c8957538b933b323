package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/tobiasreicht/film-tracker-backend/internal/middleware"
	"github.com/tobiasreicht/film-tracker-backend/internal/models"
	"github.com/tobiasreicht/film-tracker-backend/internal/service"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register creates a new account.
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	resp, err := h.svc.Register(c.Context(), req)
	if err != nil {
		return fail(c, err, "registration failed")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login authenticates a user and issues a token.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	resp, err := h.svc.Login(c.Context(), req)
	if err != nil {
		return fail(c, err, "login failed")
	}
	return c.JSON(resp)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	user, err := h.svc.Profile(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err, "failed to load profile")
	}
	return c.JSON(user)
}
