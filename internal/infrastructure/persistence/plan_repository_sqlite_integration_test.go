//go:build integration
// +build integration

package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/BizLenz/api/internal/domain/plans"
	"github.com/BizLenz/api/internal/infrastructure/persistence/models"
	"github.com/BizLenz/api/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanSqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	plan := CreateTestPlan(t, user.ID, "startup_plan.pdf")
	err := ctx.PlanRepo.Create(context.Background(), plan)
	require.NoError(t, err)
	assert.NotZero(t, plan.ID)

	// Verify using GORM model (infrastructure concern)
	var createdModel models.BusinessPlanModel
	err = ctx.DB.First(&createdModel, "id = ?", plan.ID).Error
	require.NoError(t, err)
	assert.Equal(t, plan.FileName, createdModel.FileName)
	assert.Equal(t, plans.StatusPending, createdModel.Status)
}

func TestPlanSqliteRepository_GetByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	plan := CreateTestPlan(t, user.ID, "")
	require.NoError(t, ctx.PlanRepo.Create(context.Background(), plan))

	fetched, err := ctx.PlanRepo.GetByID(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, fetched.ID)
	assert.Equal(t, user.ID, fetched.UserID)
}

func TestPlanSqliteRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.PlanRepo.GetByID(context.Background(), 42)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, plans.ErrNotFound))
}

func TestPlanSqliteRepository_Create_Invalid(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	plan := &plans.BusinessPlan{} // Invalid - missing required fields

	err := ctx.PlanRepo.Create(context.Background(), plan)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestPlanSqliteRepository_List_WithFilters(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	other := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), other))

	plan := CreateTestPlan(t, user.ID, "Fintech_Pitch.pdf")
	require.NoError(t, ctx.PlanRepo.Create(context.Background(), plan))

	unrelated := CreateTestPlan(t, other.ID, "bakery.pdf")
	require.NoError(t, ctx.PlanRepo.Create(context.Background(), unrelated))

	query := plans.NewPlanQuery()
	query.UserID = user.ID
	// Keyword casing must not matter regardless of database collation
	query.Keywords = "fintech"

	results, err := ctx.PlanRepo.List(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, plan.ID, results[0].ID)

	query.Keywords = "FINTECH"
	results, err = ctx.PlanRepo.List(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestPlanSqliteRepository_List_StatusFilter(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	pending := CreateTestPlan(t, user.ID, "pending.pdf")
	require.NoError(t, ctx.PlanRepo.Create(context.Background(), pending))

	completed := CreateTestPlan(t, user.ID, "completed.pdf")
	completed.Status = plans.StatusCompleted
	require.NoError(t, ctx.PlanRepo.Create(context.Background(), completed))

	query := plans.NewPlanQuery()
	query.UserID = user.ID
	query.Status = plans.StatusCompleted

	results, err := ctx.PlanRepo.List(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, completed.ID, results[0].ID)
}

func TestPlanSqliteRepository_UpdateByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	plan := CreateTestPlan(t, user.ID, "")
	require.NoError(t, ctx.PlanRepo.Create(context.Background(), plan))

	plan.Status = plans.StatusProcessing
	err := ctx.PlanRepo.UpdateByID(context.Background(), plan)
	require.NoError(t, err)

	fetched, err := ctx.PlanRepo.GetByID(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.StatusProcessing, fetched.Status)
}

func TestPlanSqliteRepository_DeleteByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	plan := CreateTestPlan(t, user.ID, "")
	require.NoError(t, ctx.PlanRepo.Create(context.Background(), plan))

	err := ctx.PlanRepo.DeleteByID(context.Background(), plan.ID)
	require.NoError(t, err)

	_, err = ctx.PlanRepo.GetByID(context.Background(), plan.ID)
	assert.True(t, errors.Is(err, plans.ErrNotFound))
}

func TestUserSqliteRepository_GetOrCreate(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	// Existing subject returns the stored profile
	fetched, err := ctx.UserRepo.GetOrCreate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, fetched.Username)

	// Unknown subject gets an empty profile provisioned
	provisioned, err := ctx.UserRepo.GetOrCreate(context.Background(), "unknown-subject")
	require.NoError(t, err)
	assert.Equal(t, "unknown-subject", provisioned.ID)
	assert.Empty(t, provisioned.Username)
}
