package models

import "time"

// Destination represents a travel destination stored in our database.
type Destination struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Subcategories []string `json:"subcategories"`
	Subtypes      []string `json:"subtypes"`
	Type          string   `json:"type"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Country       string   `json:"country"`
	PostalCode    string   `json:"postal_code"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Image         string   `json:"image"`
	Website       string   `json:"website"`
	LikesCount    int      `json:"likes_count"`
}

// ScoredDestination pairs a destination with a ranking score. Scores are
// comparable within one result set only; they are not calibrated probabilities.
type ScoredDestination struct {
	Destination *Destination `json:"destination"`
	Score       float64      `json:"score"`
}

// Like records that a user liked a destination. One row per (user, destination).
type Like struct {
	ID            int          `json:"id"`
	UserID        int          `json:"user_id"`
	DestinationID int          `json:"destination_id"`
	Destination   *Destination `json:"destination,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Review is a user's review of a destination. Sentiment and keywords are
// derived from the content once at creation time and stored, never recomputed.
type Review struct {
	ID             int          `json:"id"`
	UserID         int          `json:"user_id"`
	DestinationID  int          `json:"destination_id"`
	Destination    *Destination `json:"destination,omitempty"`
	Content        string       `json:"content"`
	Rating         int          `json:"rating"`
	Sentiment      string       `json:"sentiment"`
	SentimentScore float64      `json:"sentiment_score"`
	Keywords       []string     `json:"keywords"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// CreateLikeRequest is the request body for liking a destination.
type CreateLikeRequest struct {
	DestinationID int `json:"destination_id"`
}

// CreateReviewRequest is the request body for creating a review.
type CreateReviewRequest struct {
	DestinationID int    `json:"destination_id"`
	Rating        int    `json:"rating"`
	Content       string `json:"content"`
}

// SearchResult is one entry in a search response.
type SearchResult struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Subcategories   []string `json:"subcategories"`
	Subtypes        []string `json:"subtypes"`
	Image           string   `json:"image"`
	City            string   `json:"city"`
	Country         string   `json:"country"`
	SimilarityScore float64  `json:"similarity_score"`
}

// SearchResponse is the search endpoint response.
type SearchResponse struct {
	Query        string         `json:"query"`
	Limit        int            `json:"limit"`
	ResultsCount int            `json:"results_count"`
	Degraded     bool           `json:"degraded,omitempty"`
	Results      []SearchResult `json:"results"`
}

// NewSearchResult converts a scored destination into the response shape.
func NewSearchResult(sd ScoredDestination) SearchResult {
	d := sd.Destination
	return SearchResult{
		ID:              d.ID,
		Name:            d.Name,
		Description:     d.Description,
		Category:        d.Category,
		Subcategories:   d.Subcategories,
		Subtypes:        d.Subtypes,
		Image:           d.Image,
		City:            d.City,
		Country:         d.Country,
		SimilarityScore: sd.Score,
	}
}
