package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/absolutekim/FFYYPP/internal/middleware"
	"github.com/absolutekim/FFYYPP/internal/models"
	"github.com/absolutekim/FFYYPP/internal/service"
)

// DestinationHandler handles HTTP requests for destinations, search,
// recommendations, likes and reviews.
type DestinationHandler struct {
	svc *service.DestinationService
}

// NewDestinationHandler creates a new DestinationHandler.
func NewDestinationHandler(svc *service.DestinationService) *DestinationHandler {
	return &DestinationHandler{svc: svc}
}

// Health returns service health status.
func (h *DestinationHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "travel-service",
	})
}

// Search runs semantic search. ?refresh=true bypasses cached results.
func (h *DestinationHandler) Search(c fiber.Ctx) error {
	query := c.Query("q")
	limit := fiber.Query(c, "limit", 0)
	force := c.Query("refresh") == "true"

	resp, err := h.svc.Search(c.Context(), query, limit, force)
	if err != nil {
		return serviceError(c, err, "search failed")
	}
	return c.JSON(resp)
}

// KeywordSearch runs the keyword/synonym ranking directly.
func (h *DestinationHandler) KeywordSearch(c fiber.Ctx) error {
	query := c.Query("q")
	limit := fiber.Query(c, "limit", 0)

	resp, err := h.svc.KeywordSearch(query, limit)
	if err != nil {
		return serviceError(c, err, "keyword search failed")
	}
	return c.JSON(resp)
}

// Recommend returns the personalized recommendation payload.
func (h *DestinationHandler) Recommend(c fiber.Ctx) error {
	limit := fiber.Query(c, "limit", 0)

	var req models.RecommendRequest
	// The body is optional; without it there are no recently viewed items.
	_ = c.Bind().JSON(&req)

	resp, err := h.svc.Recommend(c.Context(), middleware.UserID(c), req.RecentlyViewed, limit)
	if err != nil {
		return serviceError(c, err, "failed to build recommendations")
	}
	return c.JSON(resp)
}

// ListDestinations returns all destinations.
func (h *DestinationHandler) ListDestinations(c fiber.Ctx) error {
	destinations, err := h.svc.List()
	if err != nil {
		return serviceError(c, err, "failed to list destinations")
	}
	return c.JSON(destinations)
}

// GetDestination returns a single destination.
func (h *DestinationHandler) GetDestination(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid destination ID"})
	}

	dest, err := h.svc.Get(id)
	if err != nil {
		return serviceError(c, err, "failed to get destination")
	}
	return c.JSON(dest)
}

// GetByTag returns destinations tagged with a subcategory.
func (h *DestinationHandler) GetByTag(c fiber.Ctx) error {
	destinations, err := h.svc.GetByTag(c.Params("tag"))
	if err != nil {
		return serviceError(c, err, "failed to list destinations by tag")
	}
	return c.JSON(destinations)
}

// MostLoved returns the destinations with the highest like counts.
func (h *DestinationHandler) MostLoved(c fiber.Ctx) error {
	limit := fiber.Query(c, "limit", 0)

	destinations, err := h.svc.MostLoved(limit)
	if err != nil {
		return serviceError(c, err, "failed to list most loved destinations")
	}
	return c.JSON(destinations)
}

// Tags returns the signup tag catalogue.
func (h *DestinationHandler) Tags(c fiber.Ctx) error {
	tags, err := h.svc.Tags()
	if err != nil {
		return serviceError(c, err, "failed to list tags")
	}
	return c.JSON(fiber.Map{"tags": tags})
}

// ---- Likes ----

// Like records a like for the authenticated user.
func (h *DestinationHandler) Like(c fiber.Ctx) error {
	var req models.CreateLikeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	count, err := h.svc.Like(middleware.UserID(c), req.DestinationID)
	if err != nil {
		return serviceError(c, err, "failed to like destination")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"destination_id": req.DestinationID,
		"likes_count":    count,
	})
}

// Unlike removes the authenticated user's like.
func (h *DestinationHandler) Unlike(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid destination ID"})
	}

	if err := h.svc.Unlike(middleware.UserID(c), id); err != nil {
		return serviceError(c, err, "failed to unlike destination")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UserLikes returns the authenticated user's likes.
func (h *DestinationHandler) UserLikes(c fiber.Ctx) error {
	likes, err := h.svc.UserLikes(middleware.UserID(c))
	if err != nil {
		return serviceError(c, err, "failed to list likes")
	}
	return c.JSON(likes)
}

// ---- Reviews ----

// CreateReview creates a review for the authenticated user.
func (h *DestinationHandler) CreateReview(c fiber.Ctx) error {
	var req models.CreateReviewRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	review, err := h.svc.CreateReview(c.Context(), middleware.UserID(c), req)
	if err != nil {
		return serviceError(c, err, "failed to create review")
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// UserReviews returns the authenticated user's reviews.
func (h *DestinationHandler) UserReviews(c fiber.Ctx) error {
	reviews, err := h.svc.UserReviews(middleware.UserID(c))
	if err != nil {
		return serviceError(c, err, "failed to list reviews")
	}
	return c.JSON(reviews)
}

// DestinationReviews returns all reviews of a destination.
func (h *DestinationHandler) DestinationReviews(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid destination ID"})
	}

	reviews, err := h.svc.DestinationReviews(id)
	if err != nil {
		return serviceError(c, err, "failed to list reviews")
	}
	return c.JSON(reviews)
}
