package app

import (
	"context"
	"fmt"
	"time"

	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/domain/plans"
	"github.com/BizLenz/api/internal/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// evaluationService implements the EvaluationService interface
type evaluationService struct {
	store            analyses.EvaluationStore
	jobRepository    analyses.JobRepository
	resultRepository analyses.ResultRepository
	planRepository   plans.PlanRepository
	logger           logger.Logger
}

// NewEvaluationService creates a new instance of EvaluationService
func NewEvaluationService(
	store analyses.EvaluationStore,
	jobRepository analyses.JobRepository,
	resultRepository analyses.ResultRepository,
	planRepository plans.PlanRepository,
	logger logger.Logger,
) (analyses.EvaluationService, error) {
	return &evaluationService{
		store:            store,
		jobRepository:    jobRepository,
		resultRepository: resultRepository,
		planRepository:   planRepository,
		logger:           logger,
	}, nil
}

// BuildEvaluationRows turns a report into the job and result rows to
// persist. The first result is always the overall one.
func BuildEvaluationRows(planID int, report *analyses.EvaluationReport) (*analyses.AnalysisJob, []*analyses.AnalysisResult) {
	now := time.Now()

	job := &analyses.AnalysisJob{
		PlanID:      planID,
		JobType:     analyses.JobTypeEvaluation,
		Status:      analyses.JobStatusCompleted,
		CreatedAt:   now,
		CompletedAt: &now,
	}

	totalScore := report.TotalScore
	summary := report.Summary
	if summary == "" {
		summary = fmt.Sprintf("총점: %g점", totalScore)
	}
	results := []*analyses.AnalysisResult{
		{
			EvaluationType: analyses.EvaluationTypeOverall,
			Score:          &totalScore,
			Grade:          report.Grade,
			Title:          report.Title,
			Summary:        summary,
			Details:        report.Details,
			CreatedAt:      now,
		},
	}

	for _, section := range report.Sections {
		results = append(results, &analyses.AnalysisResult{
			EvaluationType:  section.EvaluationType,
			Score:           section.Score,
			Grade:           section.Grade,
			Summary:         section.Summary,
			Strengths:       section.Strengths,
			Weaknesses:      section.Weaknesses,
			Recommendations: section.Recommendations,
			Sources:         section.Sources,
			Details:         section.Details,
			CreatedAt:       now,
		})
	}

	return job, results
}

func (s *evaluationService) Save(ctx context.Context, planID int, report *analyses.EvaluationReport) (*analyses.SavedEvaluation, error) {
	if err := validator.New().Struct(report); err != nil {
		return nil, fmt.Errorf("invalid evaluation report: %w", err)
	}

	job, results := BuildEvaluationRows(planID, report)

	if err := s.store.SaveCompleted(ctx, planID, job, results); err != nil {
		return nil, err
	}

	s.logger.Info("Stored evaluation for plan ", planID)
	return &analyses.SavedEvaluation{
		AnalysisJobID:    job.ID,
		AnalysisResultID: results[0].ID,
		TotalScore:       report.TotalScore,
	}, nil
}

func (s *evaluationService) GetByJobID(ctx context.Context, jobID int) (*analyses.AnalysisResult, error) {
	if _, err := s.jobRepository.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	results, err := s.resultRepository.ListByJobIDAndTypes(ctx, jobID, []string{analyses.EvaluationTypeOverall})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("job %d has no overall result: %w", jobID, analyses.ErrResultNotFound)
	}

	return results[0], nil
}

func (s *evaluationService) GetLatestByPlanID(ctx context.Context, planID int) (*analyses.AnalysisResult, error) {
	plan, err := s.planRepository.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.LatestJobID == nil {
		return nil, fmt.Errorf("plan %d: %w", planID, analyses.ErrNoAnalysis)
	}

	return s.GetByJobID(ctx, *plan.LatestJobID)
}

// IndustryData merges the industry and market sections of the plan's latest
// evaluation. Sources from both sections are combined without duplicates.
func (s *evaluationService) IndustryData(ctx context.Context, planID int, userID string) (*analyses.IndustryData, error) {
	plan, err := s.ownedPlan(ctx, planID, userID)
	if err != nil {
		return nil, err
	}
	if plan.LatestJobID == nil {
		return nil, fmt.Errorf("plan %d: %w", planID, analyses.ErrNoAnalysis)
	}

	results, err := s.resultRepository.ListByJobIDAndTypes(ctx, *plan.LatestJobID,
		[]string{analyses.EvaluationTypeIndustry, analyses.EvaluationTypeMarket})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("plan %d: %w", planID, analyses.ErrNoAnalysis)
	}

	data := &analyses.IndustryData{}
	seen := make(map[string]bool)
	for _, result := range results {
		section := sectionView(result)
		switch result.EvaluationType {
		case analyses.EvaluationTypeIndustry:
			data.IndustryTrends = section
		case analyses.EvaluationTypeMarket:
			data.MarketConditions = section
		}

		for _, source := range result.Sources {
			if !seen[source] {
				seen[source] = true
				data.Sources = append(data.Sources, source)
			}
		}
	}

	return data, nil
}

func (s *evaluationService) DeleteLatestRecord(ctx context.Context, planID int, userID string) error {
	plan, err := s.ownedPlan(ctx, planID, userID)
	if err != nil {
		return err
	}
	if plan.LatestJobID == nil {
		return fmt.Errorf("plan %d: %w", planID, analyses.ErrNoAnalysis)
	}

	results, err := s.resultRepository.ListByJobID(ctx, *plan.LatestJobID)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("job %d: %w", *plan.LatestJobID, analyses.ErrResultNotFound)
	}

	// Results are ordered newest first
	if err := s.resultRepository.DeleteByID(ctx, results[0].ID); err != nil {
		return err
	}

	s.logger.Info("Deleted latest record ", results[0].ID, " of plan ", planID)
	return nil
}

// ownedPlan fetches a plan and hides it from callers other than its owner.
func (s *evaluationService) ownedPlan(ctx context.Context, planID int, userID string) (*plans.BusinessPlan, error) {
	plan, err := s.planRepository.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		return nil, fmt.Errorf("business plan with id %d: %w", planID, plans.ErrNotFound)
	}
	return plan, nil
}

// sectionView flattens a section result for the industry-data response.
func sectionView(result *analyses.AnalysisResult) map[string]interface{} {
	view := map[string]interface{}{
		"summary": result.Summary,
	}
	if result.Score != nil {
		view["score"] = *result.Score
	}
	if result.Grade != "" {
		view["grade"] = result.Grade
	}
	if len(result.Details) > 0 {
		view["details"] = result.Details
	}
	return view
}
