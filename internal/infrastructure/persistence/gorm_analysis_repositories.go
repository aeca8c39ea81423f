package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/infrastructure/persistence/models"
	"github.com/BizLenz/api/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormJobRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormJobRepository creates a new GORM-based JobRepository implementation
func NewGormJobRepository(db *gorm.DB, logger logger.Logger) (analyses.JobRepository, error) {
	return &gormJobRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormJobRepository) Create(ctx context.Context, job *analyses.AnalysisJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AnalysisJobModel{}
	model.FromDomain(job)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create analysis job: %w", err)
	}

	job.ID = model.ID

	r.logger.Info("Created analysis job with id ", job.ID)
	return nil
}

func (r *gormJobRepository) GetByID(ctx context.Context, jobID int) (*analyses.AnalysisJob, error) {
	var model models.AnalysisJobModel
	if err := r.db.WithContext(ctx).Where("id = ?", jobID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis job with id %d: %w", jobID, analyses.ErrJobNotFound)
		}
		return nil, fmt.Errorf("failed to fetch analysis job: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormJobRepository) UpdateByID(ctx context.Context, job *analyses.AnalysisJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AnalysisJobModel{}
	model.FromDomain(job)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update analysis job: %w", err)
	}

	r.logger.Info("Updated analysis job with id ", job.ID)
	return nil
}

type gormResultRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormResultRepository creates a new GORM-based ResultRepository implementation
func NewGormResultRepository(db *gorm.DB, logger logger.Logger) (analyses.ResultRepository, error) {
	return &gormResultRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormResultRepository) Create(ctx context.Context, result *analyses.AnalysisResult) error {
	if err := result.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AnalysisResultModel{}
	model.FromDomain(result)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create analysis result: %w", err)
	}

	result.ID = model.ID

	r.logger.Info("Created analysis result with id ", result.ID)
	return nil
}

func (r *gormResultRepository) GetByID(ctx context.Context, resultID int) (*analyses.AnalysisResult, error) {
	var model models.AnalysisResultModel
	if err := r.db.WithContext(ctx).Where("id = ?", resultID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis result with id %d: %w", resultID, analyses.ErrResultNotFound)
		}
		return nil, fmt.Errorf("failed to fetch analysis result: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormResultRepository) ListByJobID(ctx context.Context, jobID int) ([]*analyses.AnalysisResult, error) {
	var modelList []*models.AnalysisResultModel
	err := r.db.WithContext(ctx).
		Where("analysis_job_id = ?", jobID).
		Order("created_at DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch analysis results: %w", err)
	}

	domainList := make([]*analyses.AnalysisResult, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormResultRepository) ListByJobIDAndTypes(ctx context.Context, jobID int, types []string) ([]*analyses.AnalysisResult, error) {
	var modelList []*models.AnalysisResultModel
	err := r.db.WithContext(ctx).
		Where("analysis_job_id = ? AND evaluation_type IN ?", jobID, types).
		Order("created_at DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch analysis results: %w", err)
	}

	domainList := make([]*analyses.AnalysisResult, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormResultRepository) ListArchivable(ctx context.Context, olderThanDays int, limit int) ([]*analyses.AnalysisResult, error) {
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)

	var modelList []*models.AnalysisResultModel
	dbQuery := r.db.WithContext(ctx).
		Where("is_archived = ? AND created_at < ?", false, cutoff).
		Order("created_at ASC")
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch archivable results: %w", err)
	}

	domainList := make([]*analyses.AnalysisResult, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormResultRepository) MarkArchived(ctx context.Context, resultID int) error {
	now := time.Now()
	err := r.db.WithContext(ctx).
		Model(&models.AnalysisResultModel{}).
		Where("id = ?", resultID).
		Updates(map[string]interface{}{"is_archived": true, "archived_at": now}).Error
	if err != nil {
		return fmt.Errorf("failed to mark result archived: %w", err)
	}

	r.logger.Info("Archived analysis result with id ", resultID)
	return nil
}

func (r *gormResultRepository) DeleteByID(ctx context.Context, resultID int) error {
	if err := r.db.WithContext(ctx).Where("id = ?", resultID).Delete(&models.AnalysisResultModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete analysis result: %w", err)
	}

	r.logger.Info("Deleted analysis result with id ", resultID)
	return nil
}
