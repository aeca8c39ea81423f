package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BizLenz/api/internal/domain/plans"
	"github.com/BizLenz/api/internal/infrastructure/persistence/models"
	"github.com/BizLenz/api/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormPlanRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPlanRepository creates a new GORM-based PlanRepository implementation
func NewGormPlanRepository(db *gorm.DB, logger logger.Logger) (plans.PlanRepository, error) {
	return &gormPlanRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPlanRepository) Create(ctx context.Context, plan *plans.BusinessPlan) error {
	// Validate domain entity (business rules)
	if err := plan.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.BusinessPlanModel{}
	model.FromDomain(plan)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create business plan: %w", err)
	}

	// Surface the generated ID to the caller
	plan.ID = model.ID

	r.logger.Info("Created business plan metadata with id ", plan.ID)
	return nil
}

func (r *gormPlanRepository) List(ctx context.Context, query *plans.PlanQuery) ([]*plans.BusinessPlan, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.BusinessPlanModel
	dbQuery := r.db.WithContext(ctx).Model(&models.BusinessPlanModel{})

	// Apply filters
	if query.UserID != "" {
		dbQuery = dbQuery.Where("user_id = ?", query.UserID)
	}
	if query.Keywords != "" {
		// Case-insensitive match on every dialect, postgres included
		dbQuery = dbQuery.Where("LOWER(file_name) LIKE LOWER(?)", "%"+query.Keywords+"%")
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}

	// Newest uploads first
	dbQuery = dbQuery.Order("created_at DESC")

	// Pagination
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch business plans: %w", err)
	}

	// Convert to domain models
	domainList := make([]*plans.BusinessPlan, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormPlanRepository) GetByID(ctx context.Context, planID int) (*plans.BusinessPlan, error) {
	var model models.BusinessPlanModel
	if err := r.db.WithContext(ctx).Where("id = ?", planID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("business plan with id %d: %w", planID, plans.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch business plan: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPlanRepository) UpdateByID(ctx context.Context, plan *plans.BusinessPlan) error {
	if err := plan.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.BusinessPlanModel{}
	model.FromDomain(plan)
	model.UpdatedAt = time.Now()

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update business plan: %w", err)
	}

	r.logger.Info("Updated business plan metadata with id ", plan.ID)
	return nil
}

func (r *gormPlanRepository) DeleteByID(ctx context.Context, planID int) error {
	if err := r.db.WithContext(ctx).Where("id = ?", planID).Delete(&models.BusinessPlanModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete business plan: %w", err)
	}

	r.logger.Info("Deleted business plan metadata with id ", planID)
	return nil
}
