//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/domain/plans"
	"github.com/BizLenz/api/internal/domain/users"
	"github.com/BizLenz/api/internal/pkg/config"
	"github.com/BizLenz/api/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB         *gorm.DB
	UserRepo   users.UserRepository
	PlanRepo   plans.PlanRepository
	JobRepo    analyses.JobRepository
	ResultRepo analyses.ResultRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	// Create connection
	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	// Register cleanup
	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	// Migrate schema
	err = Migrate(db)
	require.NoError(t, err, "Failed to migrate schema")

	// Create repositories
	logger := testutil.SetupTestLogger(t)

	userRepo, err := NewGormUserRepository(db, logger)
	require.NoError(t, err, "Failed to create user repository")

	planRepo, err := NewGormPlanRepository(db, logger)
	require.NoError(t, err, "Failed to create plan repository")

	jobRepo, err := NewGormJobRepository(db, logger)
	require.NoError(t, err, "Failed to create job repository")

	resultRepo, err := NewGormResultRepository(db, logger)
	require.NoError(t, err, "Failed to create result repository")

	return &TestContext{
		DB:         db,
		UserRepo:   userRepo,
		PlanRepo:   planRepo,
		JobRepo:    jobRepo,
		ResultRepo: resultRepo,
	}
}

// CreateTestUser creates a user profile with a random Cognito subject
func CreateTestUser(t *testing.T) *users.User {
	t.Helper()

	now := time.Now()
	return &users.User{
		ID:        uuid.NewString(),
		Username:  "user-" + uuid.NewString()[:8],
		Email:     uuid.NewString()[:8] + "@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestPlan creates pending plan metadata owned by the given user
func CreateTestPlan(t *testing.T, userID, fileName string) *plans.BusinessPlan {
	t.Helper()

	if fileName == "" {
		fileName = "business_plan.pdf"
	}

	now := time.Now()
	return &plans.BusinessPlan{
		UserID:    userID,
		FileName:  fileName,
		FilePath:  "uploads/" + uuid.NewString() + "_" + fileName,
		FileSize:  1024,
		MimeType:  "application/pdf",
		Status:    plans.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestJob creates an analysis job for the given plan
func CreateTestJob(t *testing.T, planID int, status string) *analyses.AnalysisJob {
	t.Helper()

	return &analyses.AnalysisJob{
		PlanID:    planID,
		JobType:   analyses.JobTypeEvaluation,
		Status:    status,
		CreatedAt: time.Now(),
	}
}

// CreateTestResult creates an overall evaluation result for the given job
func CreateTestResult(t *testing.T, jobID int, evaluationType string, score float64) *analyses.AnalysisResult {
	t.Helper()

	return &analyses.AnalysisResult{
		AnalysisJobID:  jobID,
		EvaluationType: evaluationType,
		Score:          &score,
		Grade:          "B",
		Summary:        "test summary",
		Strengths:      []string{"clear revenue model"},
		Weaknesses:     []string{"thin competitor analysis"},
		CreatedAt:      time.Now(),
	}
}
