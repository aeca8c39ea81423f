package models

import (
	"encoding/json"
	"time"

	"github.com/BizLenz/api/internal/domain/analyses"
)

// AnalysisJobModel is the GORM database model for analysis jobs.
type AnalysisJobModel struct {
	ID           int               `gorm:"primaryKey;autoIncrement"`
	PlanID       int               `gorm:"not null;index;index:idx_analysis_jobs_plan_status,priority:1"`
	Plan         BusinessPlanModel `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
	JobType      string            `gorm:"not null;type:varchar(50)"`
	Status       string            `gorm:"not null;type:varchar(20);index;index:idx_analysis_jobs_plan_status,priority:2"`
	RetryCount   int               `gorm:"not null;default:0"`
	ErrorMessage string            `gorm:"type:text"`
	CreatedAt    time.Time         `gorm:"not null;index:idx_analysis_jobs_created_at,sort:desc"`
	CompletedAt  *time.Time
}

// TableName specifies the table name for GORM
func (AnalysisJobModel) TableName() string {
	return "analysis_jobs"
}

// ToDomain converts GORM model to domain entity
func (m *AnalysisJobModel) ToDomain() *analyses.AnalysisJob {
	return &analyses.AnalysisJob{
		ID:           m.ID,
		PlanID:       m.PlanID,
		JobType:      m.JobType,
		Status:       m.Status,
		RetryCount:   m.RetryCount,
		ErrorMessage: m.ErrorMessage,
		CreatedAt:    m.CreatedAt,
		CompletedAt:  m.CompletedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AnalysisJobModel) FromDomain(j *analyses.AnalysisJob) {
	m.ID = j.ID
	m.PlanID = j.PlanID
	m.JobType = j.JobType
	m.Status = j.Status
	m.RetryCount = j.RetryCount
	m.ErrorMessage = j.ErrorMessage
	m.CreatedAt = j.CreatedAt
	m.CompletedAt = j.CompletedAt
}

// AnalysisResultModel is the GORM database model for analysis results.
// String slices and the report document are stored as JSON columns so the
// model works unchanged on both postgres and the sqlite test database.
type AnalysisResultModel struct {
	ID               int              `gorm:"primaryKey;autoIncrement"`
	AnalysisJobID    int              `gorm:"not null;index"`
	AnalysisJob      AnalysisJobModel `gorm:"foreignKey:AnalysisJobID;constraint:OnDelete:CASCADE"`
	EvaluationType   string           `gorm:"not null;type:varchar(50);index"`
	Score            *float64         `gorm:"type:numeric(5,2)"`
	Grade            string           `gorm:"type:varchar(10)"`
	Title            string           `gorm:"type:varchar(200)"`
	Summary          string           `gorm:"type:text"`
	DetailedFeedback string           `gorm:"type:text"`
	Strengths        []byte           `gorm:"type:jsonb"`
	Weaknesses       []byte           `gorm:"type:jsonb"`
	Recommendations  []byte           `gorm:"type:jsonb"`
	Sources          []byte           `gorm:"type:jsonb"`
	Details          []byte           `gorm:"type:jsonb"`
	CreatedAt        time.Time        `gorm:"not null;index:idx_analysis_results_created_at,sort:desc"`
	IsArchived       bool             `gorm:"not null;default:false;index"`
	ArchivedAt       *time.Time
}

// TableName specifies the table name for GORM
func (AnalysisResultModel) TableName() string {
	return "analysis_results"
}

// ToDomain converts GORM model to domain entity
func (m *AnalysisResultModel) ToDomain() *analyses.AnalysisResult {
	return &analyses.AnalysisResult{
		ID:               m.ID,
		AnalysisJobID:    m.AnalysisJobID,
		EvaluationType:   m.EvaluationType,
		Score:            m.Score,
		Grade:            m.Grade,
		Title:            m.Title,
		Summary:          m.Summary,
		DetailedFeedback: m.DetailedFeedback,
		Strengths:        decodeStrings(m.Strengths),
		Weaknesses:       decodeStrings(m.Weaknesses),
		Recommendations:  decodeStrings(m.Recommendations),
		Sources:          decodeStrings(m.Sources),
		Details:          decodeMap(m.Details),
		CreatedAt:        m.CreatedAt,
		IsArchived:       m.IsArchived,
		ArchivedAt:       m.ArchivedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AnalysisResultModel) FromDomain(r *analyses.AnalysisResult) {
	m.ID = r.ID
	m.AnalysisJobID = r.AnalysisJobID
	m.EvaluationType = r.EvaluationType
	m.Score = r.Score
	m.Grade = r.Grade
	m.Title = r.Title
	m.Summary = r.Summary
	m.DetailedFeedback = r.DetailedFeedback
	m.Strengths = encodeJSON(r.Strengths)
	m.Weaknesses = encodeJSON(r.Weaknesses)
	m.Recommendations = encodeJSON(r.Recommendations)
	m.Sources = encodeJSON(r.Sources)
	m.Details = encodeJSON(r.Details)
	m.CreatedAt = r.CreatedAt
	m.IsArchived = r.IsArchived
	m.ArchivedAt = r.ArchivedAt
}

func encodeJSON(v interface{}) []byte {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

func decodeStrings(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

func decodeMap(b []byte) map[string]interface{} {
	if len(b) == 0 {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}
