package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/absolutekim/FFYYPP/internal/models"
)

// ErrDuplicateUser is returned when the username or email is already taken.
var ErrDuplicateUser = errors.New("username or email already in use")

// UserRepository handles database operations for accounts.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new account and fills in the generated ID.
func (r *UserRepository) Create(u *models.User) error {
	tags, _ := json.Marshal(u.SelectedTags)
	if u.SelectedTags == nil {
		tags = []byte("[]")
	}

	err := r.db.QueryRow(`
		INSERT INTO users (username, email, password_hash, nickname, gender, selected_tags)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb)
		RETURNING id, created_at
	`, u.Username, u.Email, u.PasswordHash, u.Nickname, u.Gender, string(tags),
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UpdateSelectedTags replaces an account's interest tags.
func (r *UserRepository) UpdateSelectedTags(id int, selectedTags []string) error {
	tags, _ := json.Marshal(selectedTags)
	if selectedTags == nil {
		tags = []byte("[]")
	}

	res, err := r.db.Exec(
		`UPDATE users SET selected_tags = $1::jsonb WHERE id = $2`,
		string(tags), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update selected tags: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an account. Dependent rows cascade at the database level.
func (r *UserRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetByUsername returns the account with the given username.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	return r.getBy(`username = $1`, username)
}

// GetByID returns the account with the given ID.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	return r.getBy(`id = $1`, id)
}

func (r *UserRepository) getBy(where string, arg interface{}) (*models.User, error) {
	var u models.User
	var tags []byte
	err := r.db.QueryRow(`
		SELECT id, username, email, password_hash,
			COALESCE(nickname, ''), COALESCE(gender, ''), selected_tags, created_at
		FROM users WHERE `+where,
		arg,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.Nickname, &u.Gender, &tags, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &u.SelectedTags); err != nil {
		u.SelectedTags = nil
	}
	return &u, nil
}
