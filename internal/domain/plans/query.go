package plans

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// PlanQuery carries filters for listing business plans. UserID scopes the
// query to one owner; admin listings leave it empty.
type PlanQuery struct {
	UserID   string `validate:"omitempty,max=255"`
	Keywords string `validate:"omitempty,max=255"`
	Status   string `validate:"omitempty,oneof=pending processing completed failed"`
	Limit    int    `validate:"min=1,max=500"`
	Offset   int    `validate:"min=0"`
}

// NewPlanQuery creates a PlanQuery with default pagination. Results are
// always returned newest first.
func NewPlanQuery() *PlanQuery {
	return &PlanQuery{
		Limit:  50,
		Offset: 0,
	}
}

// Validate for validating PlanQuery struct
func (q *PlanQuery) Validate() error {
	validate := validator.New()

	err := validate.Struct(q)
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
