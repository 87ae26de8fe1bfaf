package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/absolutekim/FFYYPP/internal/middleware"
	"github.com/absolutekim/FFYYPP/internal/models"
	"github.com/absolutekim/FFYYPP/internal/service"
)

// AuthHandler handles HTTP requests for accounts.
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

	user, err := h.svc.Register(req)
	if err != nil {
		return serviceError(c, err, "failed to register")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login verifies credentials and returns a token.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	resp, err := h.svc.Login(req)
	if err != nil {
		return serviceError(c, err, "failed to log in")
	}
	return c.JSON(resp)
}

// Profile returns the authenticated user's account.
func (h *AuthHandler) Profile(c fiber.Ctx) error {
	user, err := h.svc.GetProfile(middleware.UserID(c))
	if err != nil {
		return serviceError(c, err, "failed to load profile")
	}
	return c.JSON(user)
}

// UpdateTags replaces the authenticated user's interest tags.
func (h *AuthHandler) UpdateTags(c fiber.Ctx) error {
	var req models.UpdateTagsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	user, err := h.svc.UpdateTags(middleware.UserID(c), req)
	if err != nil {
		return serviceError(c, err, "failed to update tags")
	}
	return c.JSON(user)
}

// DeleteAccount removes the authenticated user's account.
func (h *AuthHandler) DeleteAccount(c fiber.Ctx) error {
	if err := h.svc.DeleteAccount(middleware.UserID(c)); err != nil {
		return serviceError(c, err, "failed to delete account")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
