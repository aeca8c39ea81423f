//go:build unit
// +build unit

package app

import (
	"context"
	"time"

	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/domain/plans"
	"github.com/BizLenz/api/internal/domain/users"

	"github.com/stretchr/testify/mock"
)

// MockPlanRepository is a mock implementation of plans.PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *plans.BusinessPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) List(ctx context.Context, query *plans.PlanQuery) ([]*plans.BusinessPlan, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*plans.BusinessPlan), args.Error(1)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, planID int) (*plans.BusinessPlan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plans.BusinessPlan), args.Error(1)
}

func (m *MockPlanRepository) UpdateByID(ctx context.Context, plan *plans.BusinessPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) DeleteByID(ctx context.Context, planID int) error {
	args := m.Called(ctx, planID)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of users.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID string) (*users.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepository) GetOrCreate(ctx context.Context, userID string) (*users.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepository) UpdateByID(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteByID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockObjectStore is a mock implementation of plans.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Put(ctx context.Context, key, contentType string, body []byte) error {
	args := m.Called(ctx, key, contentType, body)
	return args.Error(0)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) Archive(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// MockRequestPublisher is a mock implementation of analyses.RequestPublisher
type MockRequestPublisher struct {
	mock.Mock
}

func (m *MockRequestPublisher) PublishAnalysisRequest(ctx context.Context, req analyses.AnalysisRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockJobRepository is a mock implementation of analyses.JobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, job *analyses.AnalysisJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) GetByID(ctx context.Context, jobID int) (*analyses.AnalysisJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyses.AnalysisJob), args.Error(1)
}

func (m *MockJobRepository) UpdateByID(ctx context.Context, job *analyses.AnalysisJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockResultRepository is a mock implementation of analyses.ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Create(ctx context.Context, result *analyses.AnalysisResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultRepository) GetByID(ctx context.Context, resultID int) (*analyses.AnalysisResult, error) {
	args := m.Called(ctx, resultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyses.AnalysisResult), args.Error(1)
}

func (m *MockResultRepository) ListByJobID(ctx context.Context, jobID int) ([]*analyses.AnalysisResult, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*analyses.AnalysisResult), args.Error(1)
}

func (m *MockResultRepository) ListByJobIDAndTypes(ctx context.Context, jobID int, types []string) ([]*analyses.AnalysisResult, error) {
	args := m.Called(ctx, jobID, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*analyses.AnalysisResult), args.Error(1)
}

func (m *MockResultRepository) ListArchivable(ctx context.Context, olderThanDays int, limit int) ([]*analyses.AnalysisResult, error) {
	args := m.Called(ctx, olderThanDays, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*analyses.AnalysisResult), args.Error(1)
}

func (m *MockResultRepository) MarkArchived(ctx context.Context, resultID int) error {
	args := m.Called(ctx, resultID)
	return args.Error(0)
}

func (m *MockResultRepository) DeleteByID(ctx context.Context, resultID int) error {
	args := m.Called(ctx, resultID)
	return args.Error(0)
}

// MockEvaluationStore is a mock implementation of analyses.EvaluationStore
type MockEvaluationStore struct {
	mock.Mock
}

func (m *MockEvaluationStore) SaveCompleted(ctx context.Context, planID int, job *analyses.AnalysisJob, results []*analyses.AnalysisResult) error {
	args := m.Called(ctx, planID, job, results)
	return args.Error(0)
}

// MockIdentityProvider is a mock implementation of users.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) SignUp(ctx context.Context, in users.SignUpInput) (*users.SignUpResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.SignUpResult), args.Error(1)
}

func (m *MockIdentityProvider) ConfirmSignUp(ctx context.Context, username, confirmationCode string) error {
	args := m.Called(ctx, username, confirmationCode)
	return args.Error(0)
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, username, password string) (*users.SignInResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.SignInResult), args.Error(1)
}

func (m *MockIdentityProvider) ForgotPassword(ctx context.Context, username string) (*users.CodeDelivery, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.CodeDelivery), args.Error(1)
}

func (m *MockIdentityProvider) ConfirmForgotPassword(ctx context.Context, username, confirmationCode, newPassword string) error {
	args := m.Called(ctx, username, confirmationCode, newPassword)
	return args.Error(0)
}
