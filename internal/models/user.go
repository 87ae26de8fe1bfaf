package models

import "time"

// User represents a registered account.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Nickname     string    `json:"nickname,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	SelectedTags []string  `json:"selected_tags"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest is the request body for account registration.
// SelectedTags holds the 3-7 interest tags picked at signup.
type RegisterRequest struct {
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Nickname     string   `json:"nickname"`
	Gender       string   `json:"gender"`
	SelectedTags []string `json:"selected_tags"`
}

// UpdateTagsRequest is the request body for replacing the selected tags.
type UpdateTagsRequest struct {
	SelectedTags []string `json:"selected_tags"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token and the account it belongs to.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	UserID   int    `json:"user_id"`
}
