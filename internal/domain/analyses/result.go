package analyses

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Evaluation type values. "overall" carries the aggregate report; the rest
// are section results produced by the analysis engine.
const (
	EvaluationTypeOverall   = "overall"
	EvaluationTypeIndustry  = "industry"
	EvaluationTypeMarket    = "market"
	EvaluationTypeFinancial = "financial"
	EvaluationTypeTechnical = "technical"
	EvaluationTypeRisk      = "risk"
)

// AnalysisResult entity. Details holds the raw report document; the typed
// fields mirror what the query APIs expose directly.
type AnalysisResult struct {
	ID               int      `validate:"omitempty,min=0"`
	AnalysisJobID    int      `validate:"required,min=1"`
	EvaluationType   string   `validate:"required,oneof=overall industry market financial technical risk"`
	Score            *float64 `validate:"omitempty,min=0,max=100"`
	Grade            string   `validate:"omitempty,max=10"`
	Title            string   `validate:"omitempty,max=200"`
	Summary          string
	DetailedFeedback string
	Strengths        []string
	Weaknesses       []string
	Recommendations  []string
	Sources          []string
	Details          map[string]interface{}
	CreatedAt        time.Time
	IsArchived       bool
	ArchivedAt       *time.Time
}

// Validate for validating AnalysisResult struct
func (r *AnalysisResult) Validate() error {
	validate := validator.New()

	err := validate.Struct(r)
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

// IndustryData is the merged view of a job's industry and market results.
type IndustryData struct {
	IndustryTrends   interface{} `json:"industry_trends"`
	MarketConditions interface{} `json:"market_conditions"`
	Sources          []string    `json:"sources"`
}
