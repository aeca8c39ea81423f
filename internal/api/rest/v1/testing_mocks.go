//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/domain/auth"
	"github.com/BizLenz/api/internal/domain/plans"
	"github.com/BizLenz/api/internal/domain/users"

	"github.com/stretchr/testify/mock"
)

// MockPlanUploadService is a mock implementation of PlanUploadService
type MockPlanUploadService struct {
	mock.Mock
}

func (m *MockPlanUploadService) IssueUploadURL(ctx context.Context, userID string, req *plans.UploadRequest) (*plans.UploadTicket, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plans.UploadTicket), args.Error(1)
}

func (m *MockPlanUploadService) SaveMetadata(ctx context.Context, userID string, meta *plans.UploadMetadata) (*plans.BusinessPlan, error) {
	args := m.Called(ctx, userID, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plans.BusinessPlan), args.Error(1)
}

// MockPlanMetadataService is a mock implementation of PlanMetadataService
type MockPlanMetadataService struct {
	mock.Mock
}

func (m *MockPlanMetadataService) Search(ctx context.Context, query *plans.PlanQuery) ([]*plans.BusinessPlan, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*plans.BusinessPlan), args.Error(1)
}

func (m *MockPlanMetadataService) GetByID(ctx context.Context, planID int) (*plans.BusinessPlan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plans.BusinessPlan), args.Error(1)
}

func (m *MockPlanMetadataService) DeleteByID(ctx context.Context, planID int) error {
	args := m.Called(ctx, planID)
	return args.Error(0)
}

// MockPlanDownloadService is a mock implementation of PlanDownloadService
type MockPlanDownloadService struct {
	mock.Mock
}

func (m *MockPlanDownloadService) IssueDownloadURL(ctx context.Context, planID int) (*plans.DownloadTicket, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plans.DownloadTicket), args.Error(1)
}

// MockEvaluationService is a mock implementation of EvaluationService
type MockEvaluationService struct {
	mock.Mock
}

func (m *MockEvaluationService) Save(ctx context.Context, planID int, report *analyses.EvaluationReport) (*analyses.SavedEvaluation, error) {
	args := m.Called(ctx, planID, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyses.SavedEvaluation), args.Error(1)
}

func (m *MockEvaluationService) GetByJobID(ctx context.Context, jobID int) (*analyses.AnalysisResult, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyses.AnalysisResult), args.Error(1)
}

func (m *MockEvaluationService) GetLatestByPlanID(ctx context.Context, planID int) (*analyses.AnalysisResult, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyses.AnalysisResult), args.Error(1)
}

func (m *MockEvaluationService) IndustryData(ctx context.Context, planID int, userID string) (*analyses.IndustryData, error) {
	args := m.Called(ctx, planID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyses.IndustryData), args.Error(1)
}

func (m *MockEvaluationService) DeleteLatestRecord(ctx context.Context, planID int, userID string) error {
	args := m.Called(ctx, planID, userID)
	return args.Error(0)
}

// MockAuthService is a mock implementation of app.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, in users.SignUpInput) (*users.SignUpResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.SignUpResult), args.Error(1)
}

func (m *MockAuthService) ConfirmSignUp(ctx context.Context, username, confirmationCode string) error {
	args := m.Called(ctx, username, confirmationCode)
	return args.Error(0)
}

func (m *MockAuthService) SignIn(ctx context.Context, username, password string) (*users.SignInResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.SignInResult), args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, username string) (*users.CodeDelivery, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.CodeDelivery), args.Error(1)
}

func (m *MockAuthService) ConfirmForgotPassword(ctx context.Context, username, confirmationCode, newPassword string) error {
	args := m.Called(ctx, username, confirmationCode, newPassword)
	return args.Error(0)
}

// MockUserProfileService is a mock implementation of app.UserProfileService
type MockUserProfileService struct {
	mock.Mock
}

func (m *MockUserProfileService) Profile(ctx context.Context, userID string) (*users.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserProfileService) UpdateProfile(ctx context.Context, user *users.User) (*users.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

// MockTokenVerifier is a mock implementation of auth.TokenVerifier
type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) Verify(ctx context.Context, rawToken string) (*auth.Claims, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}
