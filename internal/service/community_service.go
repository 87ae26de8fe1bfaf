package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/absolutekim/FFYYPP/internal/models"
	"github.com/absolutekim/FFYYPP/internal/repository"
)

// CommunityService handles business logic for the community board.
type CommunityService struct {
	repo *repository.CommunityRepository
}

// NewCommunityService creates a new CommunityService.
func NewCommunityService(repo *repository.CommunityRepository) *CommunityService {
	return &CommunityService{repo: repo}
}

// CreatePost creates a post authored by the given user.
func (s *CommunityService) CreatePost(userID int, req models.CreatePostRequest) (*models.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, validationErrorf("title is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, validationErrorf("content is required")
	}

	post := &models.Post{
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := s.repo.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns all posts, newest first.
func (s *CommunityService) ListPosts() ([]models.Post, error) {
	return s.repo.ListPosts()
}

// GetPost returns a post with its comments.
func (s *CommunityService) GetPost(id int) (*models.Post, error) {
	post, err := s.repo.GetPost(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// DeletePost removes a post. Only the author may delete it.
func (s *CommunityService) DeletePost(userID, postID int) error {
	post, err := s.GetPost(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return ErrForbidden
	}
	return s.repo.DeletePost(postID)
}

// CreateComment adds a comment to a post.
func (s *CommunityService) CreateComment(userID, postID int, req models.CreateCommentRequest) (*models.Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, validationErrorf("content is required")
	}
	if _, err := s.GetPost(postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: userID,
		Content:  req.Content,
	}
	if err := s.repo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Only the author may delete it.
func (s *CommunityService) DeleteComment(userID, commentID int) error {
	comment, err := s.repo.GetComment(commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get comment: %w", err)
	}
	if comment.AuthorID != userID {
		return ErrForbidden
	}
	return s.repo.DeleteComment(commentID)
}
