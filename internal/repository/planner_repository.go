package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/absolutekim/FFYYPP/internal/models"
)

// ErrDuplicatePlannerItem is returned when a destination is added to a
// planner it is already part of.
var ErrDuplicatePlannerItem = errors.New("destination already in planner")

// PlannerRepository handles database operations for trip planners.
type PlannerRepository struct {
	db *sql.DB
}

// NewPlannerRepository creates a new PlannerRepository.
func NewPlannerRepository(db *sql.DB) *PlannerRepository {
	return &PlannerRepository{db: db}
}

// Create inserts a planner and fills in the generated ID.
func (r *PlannerRepository) Create(p *models.Planner) error {
	err := r.db.QueryRow(`
		INSERT INTO planners (user_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Title, p.Description).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert planner: %w", err)
	}
	return nil
}

// ListByUser returns all planners owned by a user, without items.
func (r *PlannerRepository) ListByUser(userID int) ([]models.Planner, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, title, description, created_at, updated_at
		FROM planners
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query planners: %w", err)
	}
	defer rows.Close()

	planners := make([]models.Planner, 0)
	for rows.Next() {
		var p models.Planner
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			slog.Error("failed to scan planner row", "error", err)
			continue
		}
		planners = append(planners, p)
	}
	return planners, rows.Err()
}

// GetByID returns a planner with its items ordered by item_order, and each
// item's destination attached.
func (r *PlannerRepository) GetByID(id int) (*models.Planner, error) {
	var p models.Planner
	err := r.db.QueryRow(`
		SELECT id, user_id, title, description, created_at, updated_at
		FROM planners WHERE id = $1
	`, id).Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(`
		SELECT i.id, i.planner_id, i.destination_id, i.item_order, i.notes, i.created_at,
			`+prefixedDestinationColumns("d")+`
		FROM planner_items i
		INNER JOIN destinations d ON d.id = i.destination_id
		WHERE i.planner_id = $1
		ORDER BY i.item_order ASC, i.created_at ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query planner items: %w", err)
	}
	defer rows.Close()

	p.Items = make([]models.PlannerItem, 0)
	for rows.Next() {
		var item models.PlannerItem
		var d models.Destination
		var subcats, subtypes []byte
		err := rows.Scan(
			&item.ID, &item.PlannerID, &item.DestinationID, &item.Order, &item.Notes, &item.CreatedAt,
			&d.ID, &d.Name, &d.Description, &d.Category, &subcats, &subtypes, &d.Type,
			&d.Address, &d.City, &d.State, &d.Country, &d.PostalCode, &d.Latitude, &d.Longitude,
			&d.Image, &d.Website, &d.LikesCount,
		)
		if err != nil {
			slog.Error("failed to scan planner item row", "error", err)
			continue
		}
		_ = json.Unmarshal(subcats, &d.Subcategories)
		_ = json.Unmarshal(subtypes, &d.Subtypes)
		item.Destination = &d
		p.Items = append(p.Items, item)
	}
	return &p, rows.Err()
}

// Update changes a planner's title and description.
func (r *PlannerRepository) Update(p *models.Planner) error {
	res, err := r.db.Exec(`
		UPDATE planners SET title = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`, p.Title, p.Description, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update planner: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a planner. Items cascade at the database level.
func (r *PlannerRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM planners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete planner: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AddItem inserts a planner item and touches the planner's updated_at.
func (r *PlannerRepository) AddItem(item *models.PlannerItem) error {
	err := r.db.QueryRow(`
		INSERT INTO planner_items (planner_id, destination_id, item_order, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, item.PlannerID, item.DestinationID, item.Order, item.Notes,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePlannerItem
		}
		return fmt.Errorf("failed to insert planner item: %w", err)
	}

	_, err = r.db.Exec(`UPDATE planners SET updated_at = NOW() WHERE id = $1`, item.PlannerID)
	return err
}

// ReorderItems applies new positions to a planner's items in one
// transaction. Item IDs outside the planner are ignored by the scoped
// UPDATE. Touches the planner's updated_at.
func (r *PlannerRepository) ReorderItems(plannerID int, orders []models.PlannerItemOrder) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, o := range orders {
		if _, err := tx.Exec(
			`UPDATE planner_items SET item_order = $1 WHERE id = $2 AND planner_id = $3`,
			o.Order, o.ID, plannerID,
		); err != nil {
			return fmt.Errorf("failed to reorder planner item: %w", err)
		}
	}

	if _, err := tx.Exec(`UPDATE planners SET updated_at = NOW() WHERE id = $1`, plannerID); err != nil {
		return fmt.Errorf("failed to touch planner: %w", err)
	}
	return tx.Commit()
}

// RemoveItem deletes a planner item by ID, scoped to the planner.
func (r *PlannerRepository) RemoveItem(plannerID, itemID int) error {
	res, err := r.db.Exec(
		`DELETE FROM planner_items WHERE id = $1 AND planner_id = $2`,
		itemID, plannerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete planner item: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}

	_, err = r.db.Exec(`UPDATE planners SET updated_at = NOW() WHERE id = $1`, plannerID)
	return err
}
