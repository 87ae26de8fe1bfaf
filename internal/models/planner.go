package models

import "time"

// Planner is a user-owned trip plan.
type Planner struct {
	ID          int           `json:"id"`
	UserID      int           `json:"user_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Items       []PlannerItem `json:"items,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// PlannerItem is one destination inside a planner, ordered. A destination
// appears at most once per planner.
type PlannerItem struct {
	ID            int          `json:"id"`
	PlannerID     int          `json:"planner_id"`
	DestinationID int          `json:"destination_id"`
	Destination   *Destination `json:"destination,omitempty"`
	Order         int          `json:"order"`
	Notes         string       `json:"notes"`
	CreatedAt     time.Time    `json:"created_at"`
}

// CreatePlannerRequest is the request body for creating or updating a planner.
type CreatePlannerRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AddPlannerItemRequest is the request body for adding a destination to a planner.
type AddPlannerItemRequest struct {
	DestinationID int    `json:"destination_id"`
	Order         int    `json:"order"`
	Notes         string `json:"notes"`
}

// PlannerItemOrder assigns a position to one planner item.
type PlannerItemOrder struct {
	ID    int `json:"id"`
	Order int `json:"order"`
}

// ReorderPlannerItemsRequest is the request body for rearranging a planner's
// items in one call.
type ReorderPlannerItemsRequest struct {
	Items []PlannerItemOrder `json:"items"`
}
