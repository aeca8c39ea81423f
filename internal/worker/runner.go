package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BizLenz/api/internal/app"
	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/domain/plans"
	"github.com/BizLenz/api/internal/pkg/config"
	"github.com/BizLenz/api/internal/pkg/logger"
)

// documentURLExpiry bounds how long the evaluation engine can fetch the
// plan document.
const documentURLExpiry = 15 * time.Minute

// Runner executes analysis requests end to end: job bookkeeping, the call
// to the evaluation engine, and result persistence.
type Runner struct {
	planRepository   plans.PlanRepository
	jobRepository    analyses.JobRepository
	resultRepository analyses.ResultRepository
	objectStore      plans.ObjectStore
	analyzer         analyses.Analyzer
	settings         *config.WorkerSettings
	logger           logger.Logger
}

// NewRunner creates a new Runner
func NewRunner(
	planRepository plans.PlanRepository,
	jobRepository analyses.JobRepository,
	resultRepository analyses.ResultRepository,
	objectStore plans.ObjectStore,
	analyzer analyses.Analyzer,
	settings *config.WorkerSettings,
	logger logger.Logger,
) (*Runner, error) {
	return &Runner{
		planRepository:   planRepository,
		jobRepository:    jobRepository,
		resultRepository: resultRepository,
		objectStore:      objectStore,
		analyzer:         analyzer,
		settings:         settings,
		logger:           logger,
	}, nil
}

// HandleRequest processes one analysis request. Analysis failures are
// retried in place; after the retry budget is spent the job and the plan
// are marked failed. Only infrastructure errors propagate to the consumer.
func (r *Runner) HandleRequest(ctx context.Context, req analyses.AnalysisRequest) error {
	plan, err := r.planRepository.GetByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, plans.ErrNotFound) {
			// Plan was deleted while the request sat in the queue
			r.logger.Warn("Dropping request for missing plan ", req.PlanID)
			return nil
		}
		return err
	}

	job := &analyses.AnalysisJob{
		PlanID:    plan.ID,
		JobType:   analyses.JobTypeEvaluation,
		Status:    analyses.JobStatusPending,
		CreatedAt: time.Now(),
	}
	if err := r.jobRepository.Create(ctx, job); err != nil {
		return err
	}

	job.Status = analyses.JobStatusProcessing
	if err := r.jobRepository.UpdateByID(ctx, job); err != nil {
		return err
	}

	plan.Status = plans.StatusProcessing
	if err := r.planRepository.UpdateByID(ctx, plan); err != nil {
		return err
	}

	report, analyzeErr := r.analyzeWithRetries(ctx, req, job)
	if analyzeErr != nil {
		return r.fail(ctx, plan, job, analyzeErr)
	}

	return r.complete(ctx, plan, job, report)
}

// analyzeWithRetries calls the evaluation engine until it succeeds or the
// retry budget runs out. The job row tracks the attempt count.
func (r *Runner) analyzeWithRetries(ctx context.Context, req analyses.AnalysisRequest, job *analyses.AnalysisJob) (*analyses.EvaluationReport, error) {
	var lastErr error

	for attempt := 0; attempt < r.settings.MaxRetries; attempt++ {
		documentURL, err := r.objectStore.PresignGet(ctx, req.ObjectKey, documentURLExpiry)
		if err != nil {
			lastErr = err
		} else {
			report, err := r.analyzer.Analyze(ctx, req, documentURL)
			if err == nil {
				return report, nil
			}
			lastErr = err
		}

		r.logger.Warn("Analysis attempt ", attempt+1, " for plan ", req.PlanID, " failed: ", lastErr)

		job.RetryCount = attempt + 1
		job.ErrorMessage = lastErr.Error()
		if err := r.jobRepository.UpdateByID(ctx, job); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("analysis failed after %d attempts: %w", r.settings.MaxRetries, lastErr)
}

func (r *Runner) complete(ctx context.Context, plan *plans.BusinessPlan, job *analyses.AnalysisJob, report *analyses.EvaluationReport) error {
	_, results := app.BuildEvaluationRows(plan.ID, report)
	for _, result := range results {
		result.AnalysisJobID = job.ID
		if err := r.resultRepository.Create(ctx, result); err != nil {
			return err
		}
	}

	now := time.Now()
	job.Status = analyses.JobStatusCompleted
	job.CompletedAt = &now
	if err := r.jobRepository.UpdateByID(ctx, job); err != nil {
		return err
	}

	plan.Status = plans.StatusCompleted
	plan.LatestJobID = &job.ID
	if err := r.planRepository.UpdateByID(ctx, plan); err != nil {
		return err
	}

	r.logger.Info("Completed analysis job ", job.ID, " for plan ", plan.ID)
	return nil
}

func (r *Runner) fail(ctx context.Context, plan *plans.BusinessPlan, job *analyses.AnalysisJob, analyzeErr error) error {
	job.Status = analyses.JobStatusFailed
	job.ErrorMessage = analyzeErr.Error()
	if err := r.jobRepository.UpdateByID(ctx, job); err != nil {
		return err
	}

	plan.Status = plans.StatusFailed
	if err := r.planRepository.UpdateByID(ctx, plan); err != nil {
		return err
	}

	r.logger.Error("Analysis job ", job.ID, " for plan ", plan.ID, " failed: ", analyzeErr)
	return nil
}
