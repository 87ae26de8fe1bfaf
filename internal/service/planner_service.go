package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/absolutekim/FFYYPP/internal/models"
	"github.com/absolutekim/FFYYPP/internal/repository"
)

const maxPlannerTitleLen = 100

// PlannerService handles business logic for trip planners.
type PlannerService struct {
	repo         *repository.PlannerRepository
	destinations *repository.DestinationRepository
}

// NewPlannerService creates a new PlannerService.
func NewPlannerService(repo *repository.PlannerRepository, destinations *repository.DestinationRepository) *PlannerService {
	return &PlannerService{repo: repo, destinations: destinations}
}

// Create creates a planner owned by the given user.
func (s *PlannerService) Create(userID int, req models.CreatePlannerRequest) (*models.Planner, error) {
	if err := validatePlannerRequest(req); err != nil {
		return nil, err
	}

	planner := &models.Planner{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.repo.Create(planner); err != nil {
		return nil, err
	}
	return planner, nil
}

// List returns all planners owned by the user.
func (s *PlannerService) List(userID int) ([]models.Planner, error) {
	return s.repo.ListByUser(userID)
}

// Get returns a planner with its items. Only the owner may view it.
func (s *PlannerService) Get(userID, plannerID int) (*models.Planner, error) {
	planner, err := s.repo.GetByID(plannerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get planner: %w", err)
	}
	if planner.UserID != userID {
		return nil, ErrForbidden
	}
	return planner, nil
}

// Update changes a planner's title and description.
func (s *PlannerService) Update(userID, plannerID int, req models.CreatePlannerRequest) (*models.Planner, error) {
	if err := validatePlannerRequest(req); err != nil {
		return nil, err
	}

	planner, err := s.Get(userID, plannerID)
	if err != nil {
		return nil, err
	}
	planner.Title = req.Title
	planner.Description = req.Description
	if err := s.repo.Update(planner); err != nil {
		return nil, err
	}
	return planner, nil
}

// Delete removes a planner and its items.
func (s *PlannerService) Delete(userID, plannerID int) error {
	if _, err := s.Get(userID, plannerID); err != nil {
		return err
	}
	return s.repo.Delete(plannerID)
}

// AddItem adds a destination to a planner. A destination can appear in a
// planner at most once.
func (s *PlannerService) AddItem(userID, plannerID int, req models.AddPlannerItemRequest) (*models.PlannerItem, error) {
	if _, err := s.Get(userID, plannerID); err != nil {
		return nil, err
	}
	if _, err := s.destinations.GetByID(req.DestinationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get destination: %w", err)
	}

	item := &models.PlannerItem{
		PlannerID:     plannerID,
		DestinationID: req.DestinationID,
		Order:         req.Order,
		Notes:         req.Notes,
	}
	if err := s.repo.AddItem(item); err != nil {
		if errors.Is(err, repository.ErrDuplicatePlannerItem) {
			return nil, fmt.Errorf("%w: destination already in planner", ErrAlreadyExists)
		}
		return nil, err
	}
	return item, nil
}

// ReorderItems rearranges a planner's items and returns the planner with the
// new ordering applied.
func (s *PlannerService) ReorderItems(userID, plannerID int, req models.ReorderPlannerItemsRequest) (*models.Planner, error) {
	if len(req.Items) == 0 {
		return nil, validationErrorf("items to reorder are required")
	}
	if _, err := s.Get(userID, plannerID); err != nil {
		return nil, err
	}
	if err := s.repo.ReorderItems(plannerID, req.Items); err != nil {
		return nil, err
	}
	return s.Get(userID, plannerID)
}

// RemoveItem removes a destination from a planner.
func (s *PlannerService) RemoveItem(userID, plannerID, itemID int) error {
	if _, err := s.Get(userID, plannerID); err != nil {
		return err
	}
	if err := s.repo.RemoveItem(plannerID, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func validatePlannerRequest(req models.CreatePlannerRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return validationErrorf("title is required")
	}
	if len(title) > maxPlannerTitleLen {
		return validationErrorf("title must be at most %d characters", maxPlannerTitleLen)
	}
	return nil
}
