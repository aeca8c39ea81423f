package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/domain/plans"
	"github.com/BizLenz/api/internal/infrastructure/persistence/models"
	"github.com/BizLenz/api/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormEvaluationStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormEvaluationStore creates a GORM-based EvaluationStore implementation
func NewGormEvaluationStore(db *gorm.DB, logger logger.Logger) (analyses.EvaluationStore, error) {
	return &gormEvaluationStore{
		db:     db,
		logger: logger,
	}, nil
}

func (s *gormEvaluationStore) SaveCompleted(ctx context.Context, planID int, job *analyses.AnalysisJob, results []*analyses.AnalysisResult) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var planModel models.BusinessPlanModel
		if err := tx.Where("id = ?", planID).First(&planModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("business plan with id %d: %w", planID, plans.ErrNotFound)
			}
			return fmt.Errorf("failed to fetch business plan: %w", err)
		}

		jobModel := &models.AnalysisJobModel{}
		jobModel.FromDomain(job)
		if err := tx.Create(jobModel).Error; err != nil {
			return fmt.Errorf("failed to create analysis job: %w", err)
		}
		job.ID = jobModel.ID

		for _, result := range results {
			result.AnalysisJobID = jobModel.ID
			if err := result.Validate(); err != nil {
				return fmt.Errorf("validation error: %w", err)
			}

			resultModel := &models.AnalysisResultModel{}
			resultModel.FromDomain(result)
			if err := tx.Create(resultModel).Error; err != nil {
				return fmt.Errorf("failed to create analysis result: %w", err)
			}
			result.ID = resultModel.ID
		}

		updates := map[string]interface{}{
			"latest_job_id": jobModel.ID,
			"status":        plans.StatusCompleted,
			"updated_at":    time.Now(),
		}
		if err := tx.Model(&planModel).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update business plan: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Saved evaluation for plan ", planID, " under job ", job.ID)
	return nil
}
