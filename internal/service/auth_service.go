package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/absolutekim/FFYYPP/internal/models"
	"github.com/absolutekim/FFYYPP/internal/repository"
)

const (
	minSelectedTags = 3
	maxSelectedTags = 7
	tokenTTL        = 24 * time.Hour
)

// ErrInvalidCredentials is returned on login with a wrong username or password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ValidationError marks client input errors so handlers can map them to 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// AuthService handles registration and login.
type AuthService struct {
	users     *repository.UserRepository
	jwtSecret []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: []byte(jwtSecret)}
}

// Register validates the signup payload and creates the account.
func (s *AuthService) Register(req models.RegisterRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" {
		return nil, validationErrorf("username is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, validationErrorf("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, validationErrorf("password must be at least 8 characters")
	}
	if err := validateSelectedTags(req.SelectedTags); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Nickname:     req.Nickname,
		Gender:       req.Gender,
		SelectedTags: req.SelectedTags,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, validationErrorf("username or email already in use")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and issues a signed token.
func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.AuthResponse{
		Token:    token,
		Username: user.Username,
		UserID:   user.ID,
	}, nil
}

// GetProfile returns the account for an authenticated user ID.
func (s *AuthService) GetProfile(userID int) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

// UpdateTags replaces the user's interest tags, enforcing the same bounds as
// registration, and returns the updated account.
func (s *AuthService) UpdateTags(userID int, req models.UpdateTagsRequest) (*models.User, error) {
	if err := validateSelectedTags(req.SelectedTags); err != nil {
		return nil, err
	}
	if err := s.users.UpdateSelectedTags(userID, req.SelectedTags); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update tags: %w", err)
	}
	return s.GetProfile(userID)
}

// DeleteAccount removes the account. Likes, reviews, posts and planners
// cascade at the database level.
func (s *AuthService) DeleteAccount(userID int) error {
	if err := s.users.Delete(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func validateSelectedTags(tags []string) error {
	if n := len(tags); n < minSelectedTags || n > maxSelectedTags {
		return validationErrorf("select between %d and %d tags, got %d",
			minSelectedTags, maxSelectedTags, n)
	}
	return nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
