package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"

	"github.com/absolutekim/FFYYPP/internal/models"
)

// ErrDuplicateLike is returned when a user likes the same destination twice.
var ErrDuplicateLike = errors.New("destination already liked")

// ErrDuplicateReview is returned when a user reviews the same destination twice.
var ErrDuplicateReview = errors.New("destination already reviewed")

// DestinationRepository handles database operations for destinations,
// likes and reviews.
type DestinationRepository struct {
	db *sql.DB
}

// NewDestinationRepository creates a new DestinationRepository.
func NewDestinationRepository(db *sql.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

const destinationColumns = `
	id, name, description, category, subcategories, subtypes, type,
	address, city, state, country, postal_code, latitude, longitude,
	image, website, likes_count`

func scanDestination(row interface{ Scan(...interface{}) error }) (*models.Destination, error) {
	var d models.Destination
	var subcats, subtypes []byte
	err := row.Scan(
		&d.ID, &d.Name, &d.Description, &d.Category, &subcats, &subtypes, &d.Type,
		&d.Address, &d.City, &d.State, &d.Country, &d.PostalCode, &d.Latitude, &d.Longitude,
		&d.Image, &d.Website, &d.LikesCount,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(subcats, &d.Subcategories); err != nil {
		d.Subcategories = nil
	}
	if err := json.Unmarshal(subtypes, &d.Subtypes); err != nil {
		d.Subtypes = nil
	}
	return &d, nil
}

// GetAll returns every destination. The search and recommendation engines
// score the full corpus in memory.
func (r *DestinationRepository) GetAll() ([]models.Destination, error) {
	rows, err := r.db.Query(`SELECT ` + destinationColumns + ` FROM destinations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query destinations: %w", err)
	}
	defer rows.Close()

	destinations := make([]models.Destination, 0)
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			slog.Error("failed to scan destination row", "error", err)
			continue
		}
		destinations = append(destinations, *d)
	}
	return destinations, rows.Err()
}

// GetByID returns a single destination.
func (r *DestinationRepository) GetByID(id int) (*models.Destination, error) {
	row := r.db.QueryRow(`SELECT `+destinationColumns+` FROM destinations WHERE id = $1`, id)
	return scanDestination(row)
}

// GetByTag returns destinations whose subcategories contain the tag.
// "&" and "and" spellings of the same tag are treated as equivalent.
func (r *DestinationRepository) GetByTag(tag string) ([]models.Destination, error) {
	variants := tagVariants(tag)

	conditions := make([]string, 0, len(variants))
	args := make([]interface{}, 0, len(variants))
	for i, v := range variants {
		encoded, _ := json.Marshal([]string{v})
		conditions = append(conditions, fmt.Sprintf("subcategories @> $%d::jsonb", i+1))
		args = append(args, string(encoded))
	}

	query := `SELECT ` + destinationColumns + ` FROM destinations WHERE ` +
		strings.Join(conditions, " OR ")

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query destinations by tag: %w", err)
	}
	defer rows.Close()

	destinations := make([]models.Destination, 0)
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			slog.Error("failed to scan destination row", "error", err)
			continue
		}
		destinations = append(destinations, *d)
	}
	return destinations, rows.Err()
}

// tagVariants returns the tag plus its "&"/"and" counterpart when one applies.
func tagVariants(tag string) []string {
	variants := []string{tag}
	if strings.Contains(tag, "&") {
		variants = append(variants, strings.ReplaceAll(tag, "&", "and"))
	} else if strings.Contains(tag, " and ") {
		variants = append(variants, strings.ReplaceAll(tag, " and ", " & "))
	}
	return variants
}

// GetMostLoved returns destinations ordered by like count.
func (r *DestinationRepository) GetMostLoved(limit int) ([]models.Destination, error) {
	rows, err := r.db.Query(
		`SELECT `+destinationColumns+` FROM destinations ORDER BY likes_count DESC, id ASC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query most loved destinations: %w", err)
	}
	defer rows.Close()

	destinations := make([]models.Destination, 0)
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			slog.Error("failed to scan destination row", "error", err)
			continue
		}
		destinations = append(destinations, *d)
	}
	return destinations, rows.Err()
}

// GetDistinctTags returns the distinct first subcategory across all
// destinations, used as the signup tag catalogue.
func (r *DestinationRepository) GetDistinctTags() ([]string, error) {
	rows, err := r.db.Query(
		`SELECT DISTINCT subcategories->>0 FROM destinations
		 WHERE jsonb_array_length(subcategories) > 0
		 ORDER BY 1`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	tags := make([]string, 0)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err == nil && tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, rows.Err()
}

// ---- Likes ----

// CreateLike records a like and bumps the destination's like counter.
// The counter is re-read inside the transaction so concurrent likes
// extend the latest value rather than a stale one.
func (r *DestinationRepository) CreateLike(userID, destinationID int) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO likes (user_id, destination_id) VALUES ($1, $2)`,
		userID, destinationID,
	); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateLike
		}
		return 0, fmt.Errorf("failed to insert like: %w", err)
	}

	var count int
	if err := tx.QueryRow(
		`SELECT likes_count FROM destinations WHERE id = $1 FOR UPDATE`,
		destinationID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to read likes count: %w", err)
	}

	count++
	if _, err := tx.Exec(
		`UPDATE destinations SET likes_count = $1 WHERE id = $2`,
		count, destinationID,
	); err != nil {
		return 0, fmt.Errorf("failed to update likes count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit like: %w", err)
	}
	return count, nil
}

// DeleteLike removes a like and decrements the counter, never below zero.
func (r *DestinationRepository) DeleteLike(userID, destinationID int) error {
	res, err := r.db.Exec(
		`DELETE FROM likes WHERE user_id = $1 AND destination_id = $2`,
		userID, destinationID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}

	_, err = r.db.Exec(
		`UPDATE destinations SET likes_count = GREATEST(likes_count - 1, 0) WHERE id = $1`,
		destinationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update likes count: %w", err)
	}
	return nil
}

// GetUserLikes returns all likes of a user with the liked destinations attached.
func (r *DestinationRepository) GetUserLikes(userID int) ([]models.Like, error) {
	rows, err := r.db.Query(`
		SELECT l.id, l.user_id, l.destination_id, l.created_at, `+prefixedDestinationColumns("d")+`
		FROM likes l
		INNER JOIN destinations d ON d.id = l.destination_id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query likes: %w", err)
	}
	defer rows.Close()

	likes := make([]models.Like, 0)
	for rows.Next() {
		var l models.Like
		var d models.Destination
		var subcats, subtypes []byte
		err := rows.Scan(
			&l.ID, &l.UserID, &l.DestinationID, &l.CreatedAt,
			&d.ID, &d.Name, &d.Description, &d.Category, &subcats, &subtypes, &d.Type,
			&d.Address, &d.City, &d.State, &d.Country, &d.PostalCode, &d.Latitude, &d.Longitude,
			&d.Image, &d.Website, &d.LikesCount,
		)
		if err != nil {
			slog.Error("failed to scan like row", "error", err)
			continue
		}
		_ = json.Unmarshal(subcats, &d.Subcategories)
		_ = json.Unmarshal(subtypes, &d.Subtypes)
		l.Destination = &d
		likes = append(likes, l)
	}
	return likes, rows.Err()
}

// ---- Reviews ----

// CreateReview inserts a review with its precomputed sentiment and keywords.
func (r *DestinationRepository) CreateReview(review *models.Review) error {
	keywords, _ := json.Marshal(review.Keywords)
	if review.Keywords == nil {
		keywords = []byte("[]")
	}

	err := r.db.QueryRow(`
		INSERT INTO reviews (user_id, destination_id, content, rating,
			sentiment, sentiment_score, keywords)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb)
		RETURNING id, created_at, updated_at
	`, review.UserID, review.DestinationID, review.Content, review.Rating,
		review.Sentiment, review.SentimentScore, string(keywords),
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateReview
		}
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

// GetUserReviews returns all reviews written by a user.
func (r *DestinationRepository) GetUserReviews(userID int) ([]models.Review, error) {
	return r.queryReviews(`WHERE r.user_id = $1`, userID)
}

// GetDestinationReviews returns all reviews of a destination.
func (r *DestinationRepository) GetDestinationReviews(destinationID int) ([]models.Review, error) {
	return r.queryReviews(`WHERE r.destination_id = $1`, destinationID)
}

func (r *DestinationRepository) queryReviews(where string, arg interface{}) ([]models.Review, error) {
	rows, err := r.db.Query(`
		SELECT r.id, r.user_id, r.destination_id, r.content, r.rating,
			r.sentiment, r.sentiment_score, r.keywords, r.created_at, r.updated_at,
			`+prefixedDestinationColumns("d")+`
		FROM reviews r
		INNER JOIN destinations d ON d.id = r.destination_id
		`+where+`
		ORDER BY r.created_at DESC
	`, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		var rev models.Review
		var d models.Destination
		var keywords, subcats, subtypes []byte
		err := rows.Scan(
			&rev.ID, &rev.UserID, &rev.DestinationID, &rev.Content, &rev.Rating,
			&rev.Sentiment, &rev.SentimentScore, &keywords, &rev.CreatedAt, &rev.UpdatedAt,
			&d.ID, &d.Name, &d.Description, &d.Category, &subcats, &subtypes, &d.Type,
			&d.Address, &d.City, &d.State, &d.Country, &d.PostalCode, &d.Latitude, &d.Longitude,
			&d.Image, &d.Website, &d.LikesCount,
		)
		if err != nil {
			slog.Error("failed to scan review row", "error", err)
			continue
		}
		_ = json.Unmarshal(keywords, &rev.Keywords)
		_ = json.Unmarshal(subcats, &d.Subcategories)
		_ = json.Unmarshal(subtypes, &d.Subtypes)
		rev.Destination = &d
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func prefixedDestinationColumns(alias string) string {
	cols := strings.Split(destinationColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
