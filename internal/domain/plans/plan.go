package plans

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Plan status values
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ValidStatus reports whether s is a known plan status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// BusinessPlan entity
type BusinessPlan struct {
	ID          int       `validate:"omitempty,min=0"`
	UserID      string    `validate:"required,min=1,max=255"`
	FileName    string    `validate:"required,min=1,max=255"`
	FilePath    string    `validate:"required,min=1,max=500"`
	FileSize    int64     `validate:"required,min=1"`
	MimeType    string    `validate:"required,min=1,max=100"`
	Status      string    `validate:"required,oneof=pending processing completed failed"`
	LatestJobID *int      `validate:"omitempty,min=1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate for validating BusinessPlan struct
func (p *BusinessPlan) Validate() error {
	validate := validator.New()

	err := validate.Struct(p)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}
