package service

import (
	"errors"
	"testing"

	"github.com/absolutekim/FFYYPP/internal/models"
)

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Username:     "wanderer",
		Email:        "wanderer@example.com",
		Password:     "supersecret",
		SelectedTags: []string{"Museums", "Beaches", "Food & Drink"},
	}
}

// Validation runs before any storage access, so these cases never touch the
// repository.
func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(nil, "test-secret")

	tests := []struct {
		name   string
		mutate func(*models.RegisterRequest)
	}{
		{
			name:   "missing username",
			mutate: func(r *models.RegisterRequest) { r.Username = "  " },
		},
		{
			name:   "missing email",
			mutate: func(r *models.RegisterRequest) { r.Email = "" },
		},
		{
			name:   "malformed email",
			mutate: func(r *models.RegisterRequest) { r.Email = "not-an-email" },
		},
		{
			name:   "short password",
			mutate: func(r *models.RegisterRequest) { r.Password = "short" },
		},
		{
			name:   "too few tags",
			mutate: func(r *models.RegisterRequest) { r.SelectedTags = []string{"Museums", "Beaches"} },
		},
		{
			name: "too many tags",
			mutate: func(r *models.RegisterRequest) {
				r.SelectedTags = []string{"a", "b", "c", "d", "e", "f", "g", "h"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			_, err := svc.Register(req)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("Register() error = %v, want a ValidationError", err)
			}
		})
	}
}

// Tag updates enforce the same bounds as registration.
func TestUpdateTagsValidation(t *testing.T) {
	svc := NewAuthService(nil, "test-secret")

	tests := []struct {
		name string
		tags []string
	}{
		{name: "no tags", tags: nil},
		{name: "too few tags", tags: []string{"Museums", "Beaches"}},
		{name: "too many tags", tags: []string{"a", "b", "c", "d", "e", "f", "g", "h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateTags(1, models.UpdateTagsRequest{SelectedTags: tt.tags})
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("UpdateTags() error = %v, want a ValidationError", err)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := validationErrorf("rating must be between %d and %d", 1, 5)
	if err.Error() != "rating must be between 1 and 5" {
		t.Errorf("message = %q", err.Error())
	}
}
