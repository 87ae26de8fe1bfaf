package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/absolutekim/FFYYPP/internal/middleware"
	"github.com/absolutekim/FFYYPP/internal/models"
	"github.com/absolutekim/FFYYPP/internal/service"
)

// PlannerHandler handles HTTP requests for trip planners.
type PlannerHandler struct {
	svc *service.PlannerService
}

// NewPlannerHandler creates a new PlannerHandler.
func NewPlannerHandler(svc *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{svc: svc}
}

// Create creates a planner.
func (h *PlannerHandler) Create(c fiber.Ctx) error {
	var req models.CreatePlannerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	planner, err := h.svc.Create(middleware.UserID(c), req)
	if err != nil {
		return serviceError(c, err, "failed to create planner")
	}
	return c.Status(fiber.StatusCreated).JSON(planner)
}

// List returns the authenticated user's planners.
func (h *PlannerHandler) List(c fiber.Ctx) error {
	planners, err := h.svc.List(middleware.UserID(c))
	if err != nil {
		return serviceError(c, err, "failed to list planners")
	}
	return c.JSON(planners)
}

// Get returns a planner with its items.
func (h *PlannerHandler) Get(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid planner ID"})
	}

	planner, err := h.svc.Get(middleware.UserID(c), id)
	if err != nil {
		return serviceError(c, err, "failed to get planner")
	}
	return c.JSON(planner)
}

// Update changes a planner's title and description.
func (h *PlannerHandler) Update(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid planner ID"})
	}

	var req models.CreatePlannerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	planner, err := h.svc.Update(middleware.UserID(c), id, req)
	if err != nil {
		return serviceError(c, err, "failed to update planner")
	}
	return c.JSON(planner)
}

// Delete removes a planner.
func (h *PlannerHandler) Delete(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid planner ID"})
	}

	if err := h.svc.Delete(middleware.UserID(c), id); err != nil {
		return serviceError(c, err, "failed to delete planner")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddItem adds a destination to a planner.
func (h *PlannerHandler) AddItem(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid planner ID"})
	}

	var req models.AddPlannerItemRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	item, err := h.svc.AddItem(middleware.UserID(c), id, req)
	if err != nil {
		return serviceError(c, err, "failed to add planner item")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// ReorderItems rearranges a planner's items.
func (h *PlannerHandler) ReorderItems(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid planner ID"})
	}

	var req models.ReorderPlannerItemsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	planner, err := h.svc.ReorderItems(middleware.UserID(c), id, req)
	if err != nil {
		return serviceError(c, err, "failed to reorder planner items")
	}
	return c.JSON(planner)
}

// RemoveItem removes a destination from a planner.
func (h *PlannerHandler) RemoveItem(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid planner ID"})
	}
	itemID, err := strconv.Atoi(c.Params("itemId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid item ID"})
	}

	if err := h.svc.RemoveItem(middleware.UserID(c), id, itemID); err != nil {
		return serviceError(c, err, "failed to remove planner item")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
