package analyses

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Job status values
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// Job type values
const (
	JobTypeEvaluation = "evaluation"
)

// AnalysisJob entity. A job tracks one analysis run over a business plan.
type AnalysisJob struct {
	ID           int    `validate:"omitempty,min=0"`
	PlanID       int    `validate:"required,min=1"`
	JobType      string `validate:"required,min=1,max=50"`
	Status       string `validate:"required,oneof=pending processing completed failed"`
	RetryCount   int    `validate:"min=0"`
	ErrorMessage string
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

// Validate for validating AnalysisJob struct
func (j *AnalysisJob) Validate() error {
	validate := validator.New()

	err := validate.Struct(j)
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
