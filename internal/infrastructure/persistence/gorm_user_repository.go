package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BizLenz/api/internal/domain/users"
	"github.com/BizLenz/api/internal/infrastructure/persistence/models"
	"github.com/BizLenz/api/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormUserRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserRepository creates a new GORM-based UserRepository implementation
func NewGormUserRepository(db *gorm.DB, logger logger.Logger) (users.UserRepository, error) {
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserRepository) Create(ctx context.Context, user *users.User) error {
	// Validate domain entity (business rules)
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.UserModel{}
	model.FromDomain(user)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("Created user profile with id ", user.ID)
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, userID string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with id %s: %w", userID, users.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) GetOrCreate(ctx context.Context, userID string) (*users.User, error) {
	now := time.Now()
	model := &models.UserModel{
		ID:        userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Insert the skeleton profile unless the subject is already known
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(model).Error
	if err != nil {
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}

	var existing models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return existing.ToDomain(), nil
}

func (r *gormUserRepository) UpdateByID(ctx context.Context, user *users.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserModel{}
	model.FromDomain(user)
	model.UpdatedAt = time.Now()

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	r.logger.Info("Updated user profile with id ", user.ID)
	return nil
}

func (r *gormUserRepository) DeleteByID(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", userID).Delete(&models.UserModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	r.logger.Info("Deleted user profile with id ", userID)
	return nil
}
