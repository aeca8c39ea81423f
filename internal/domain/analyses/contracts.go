package analyses

import "context"

// EvaluationReport is the payload an analysis engine (or an external caller
// of the save endpoint) delivers for a finished evaluation.
type EvaluationReport struct {
	TotalScore float64                `json:"total_score" validate:"min=0,max=100"`
	Grade      string                 `json:"grade,omitempty"`
	Title      string                 `json:"title,omitempty"`
	Summary    string                 `json:"summary,omitempty"`
	Sections   []SectionResult        `json:"sections,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// SectionResult is a per-section evaluation inside a report.
type SectionResult struct {
	EvaluationType  string                 `json:"evaluation_type" validate:"required,oneof=overall industry market financial technical risk"`
	Score           *float64               `json:"score,omitempty"`
	Grade           string                 `json:"grade,omitempty"`
	Summary         string                 `json:"summary,omitempty"`
	Strengths       []string               `json:"strengths,omitempty"`
	Weaknesses      []string               `json:"weaknesses,omitempty"`
	Recommendations []string               `json:"recommendations,omitempty"`
	Sources         []string               `json:"sources,omitempty"`
	Details         map[string]interface{} `json:"details,omitempty"`
}

// SavedEvaluation reports the rows created by saving an evaluation.
type SavedEvaluation struct {
	AnalysisJobID    int
	AnalysisResultID int
	TotalScore       float64
}

// EvaluationService persists and retrieves evaluation results.
type EvaluationService interface {
	// Save stores a completed evaluation for a plan: it creates a completed
	// job, the overall result plus section results, and points the plan's
	// latest job at the new job. The whole write is transactional.
	Save(ctx context.Context, planID int, report *EvaluationReport) (*SavedEvaluation, error)

	// GetByJobID retrieves the overall result for a job.
	GetByJobID(ctx context.Context, jobID int) (*AnalysisResult, error)

	// GetLatestByPlanID retrieves the overall result behind the plan's
	// latest job.
	GetLatestByPlanID(ctx context.Context, planID int) (*AnalysisResult, error)

	// IndustryData merges the latest job's industry and market section
	// results for a plan owned by userID.
	IndustryData(ctx context.Context, planID int, userID string) (*IndustryData, error)

	// DeleteLatestRecord removes the newest result of the plan's latest job.
	DeleteLatestRecord(ctx context.Context, planID int, userID string) error
}

// JobRepository defines the interface for AnalysisJob persistence
type JobRepository interface {
	// Create adds a new AnalysisJob to the database
	Create(ctx context.Context, job *AnalysisJob) error
	// GetByID retrieves an AnalysisJob from the database by ID
	GetByID(ctx context.Context, jobID int) (*AnalysisJob, error)
	// UpdateByID updates an AnalysisJob in the database by ID
	UpdateByID(ctx context.Context, job *AnalysisJob) error
}

// ResultRepository defines the interface for AnalysisResult persistence
type ResultRepository interface {
	// Create adds a new AnalysisResult to the database
	Create(ctx context.Context, result *AnalysisResult) error
	// GetByID retrieves an AnalysisResult from the database by ID
	GetByID(ctx context.Context, resultID int) (*AnalysisResult, error)
	// ListByJobID lists results for a job, newest first
	ListByJobID(ctx context.Context, jobID int) ([]*AnalysisResult, error)
	// ListByJobIDAndTypes lists results for a job restricted to the given
	// evaluation types
	ListByJobIDAndTypes(ctx context.Context, jobID int, types []string) ([]*AnalysisResult, error)
	// ListArchivable lists unarchived results older than the cutoff
	ListArchivable(ctx context.Context, olderThanDays int, limit int) ([]*AnalysisResult, error)
	// MarkArchived flags a result as archived
	MarkArchived(ctx context.Context, resultID int) error
	// DeleteByID deletes an AnalysisResult in the database by ID
	DeleteByID(ctx context.Context, resultID int) error
}

// EvaluationStore persists a completed evaluation atomically. The job, its
// results and the plan's latest-job pointer are written in one transaction
// so readers never observe a half-saved evaluation.
type EvaluationStore interface {
	SaveCompleted(ctx context.Context, planID int, job *AnalysisJob, results []*AnalysisResult) error
}

// AnalysisRequest is the queue message asking the worker to analyze a plan.
type AnalysisRequest struct {
	PlanID    int    `json:"plan_id"`
	UserID    string `json:"user_id"`
	ObjectKey string `json:"s3_key"`
}

// RequestPublisher dispatches analysis requests to the worker queue.
type RequestPublisher interface {
	PublishAnalysisRequest(ctx context.Context, req AnalysisRequest) error
}

// Analyzer produces an evaluation report for a stored plan document. The
// production implementation calls the external evaluation engine.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalysisRequest, documentURL string) (*EvaluationReport, error)
}
