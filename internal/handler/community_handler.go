package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/absolutekim/FFYYPP/internal/middleware"
	"github.com/absolutekim/FFYYPP/internal/models"
	"github.com/absolutekim/FFYYPP/internal/service"
)

// CommunityHandler handles HTTP requests for the community board.
type CommunityHandler struct {
	svc *service.CommunityService
}

// NewCommunityHandler creates a new CommunityHandler.
func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

// CreatePost creates a post.
func (h *CommunityHandler) CreatePost(c fiber.Ctx) error {
	var req models.CreatePostRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	post, err := h.svc.CreatePost(middleware.UserID(c), req)
	if err != nil {
		return serviceError(c, err, "failed to create post")
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListPosts returns all posts.
func (h *CommunityHandler) ListPosts(c fiber.Ctx) error {
	posts, err := h.svc.ListPosts()
	if err != nil {
		return serviceError(c, err, "failed to list posts")
	}
	return c.JSON(posts)
}

// GetPost returns a post with its comments.
func (h *CommunityHandler) GetPost(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid post ID"})
	}

	post, err := h.svc.GetPost(id)
	if err != nil {
		return serviceError(c, err, "failed to get post")
	}
	return c.JSON(post)
}

// DeletePost removes the authenticated user's post.
func (h *CommunityHandler) DeletePost(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid post ID"})
	}

	if err := h.svc.DeletePost(middleware.UserID(c), id); err != nil {
		return serviceError(c, err, "failed to delete post")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateComment adds a comment to a post.
func (h *CommunityHandler) CreateComment(c fiber.Ctx) error {
	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid post ID"})
	}

	var req models.CreateCommentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	comment, err := h.svc.CreateComment(middleware.UserID(c), postID, req)
	if err != nil {
		return serviceError(c, err, "failed to create comment")
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment removes the authenticated user's comment.
func (h *CommunityHandler) DeleteComment(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid comment ID"})
	}

	if err := h.svc.DeleteComment(middleware.UserID(c), id); err != nil {
		return serviceError(c, err, "failed to delete comment")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
