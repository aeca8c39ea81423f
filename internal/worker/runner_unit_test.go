//go:build unit
// +build unit

package worker

import (
	"context"
	"testing"

	"github.com/BizLenz/api/internal/app"
	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/domain/plans"
	"github.com/BizLenz/api/internal/pkg/config"
	"github.com/BizLenz/api/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testWorkerSettings(t *testing.T) *config.WorkerSettings {
	t.Helper()
	settings := &config.WorkerSettings{
		AnalyzerURL: "http://localhost:8100/analyze",
		MaxRetries:  2,
	}
	require.NoError(t, settings.Validate())
	return settings
}

func testRequest() analyses.AnalysisRequest {
	return analyses.AnalysisRequest{PlanID: 4, UserID: "user-1", ObjectKey: "uploads/abc_plan.pdf"}
}

func testPlan() *plans.BusinessPlan {
	return &plans.BusinessPlan{
		ID:       4,
		UserID:   "user-1",
		FileName: "plan.pdf",
		FilePath: "uploads/abc_plan.pdf",
		FileSize: 2048,
		MimeType: "application/pdf",
		Status:   plans.StatusPending,
	}
}

func TestRunnerHandleRequestSuccess(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	mockPlanRepository := new(app.MockPlanRepository)
	mockJobRepository := new(app.MockJobRepository)
	mockResultRepository := new(app.MockResultRepository)
	mockObjectStore := new(app.MockObjectStore)
	mockAnalyzer := new(MockAnalyzer)

	plan := testPlan()
	mockPlanRepository.On("GetByID", mock.Anything, 4).Return(plan, nil)
	mockJobRepository.On("Create", mock.Anything, mock.MatchedBy(func(job *analyses.AnalysisJob) bool {
		job.ID = 11
		return job.PlanID == 4 && job.Status == analyses.JobStatusPending
	})).Return(nil)
	mockJobRepository.On("UpdateByID", mock.Anything, mock.Anything).Return(nil)
	mockPlanRepository.On("UpdateByID", mock.Anything, mock.Anything).Return(nil)
	mockObjectStore.On("PresignGet", mock.Anything, "uploads/abc_plan.pdf", mock.Anything).
		Return("https://bucket/document", nil)

	score := 78.0
	report := &analyses.EvaluationReport{
		TotalScore: 82.5,
		Sections: []analyses.SectionResult{
			{EvaluationType: analyses.EvaluationTypeIndustry, Score: &score},
		},
	}
	mockAnalyzer.On("Analyze", mock.Anything, testRequest(), "https://bucket/document").Return(report, nil)
	mockResultRepository.On("Create", mock.Anything, mock.MatchedBy(func(result *analyses.AnalysisResult) bool {
		return result.AnalysisJobID == 11
	})).Return(nil)

	runner, err := NewRunner(mockPlanRepository, mockJobRepository, mockResultRepository, mockObjectStore, mockAnalyzer, testWorkerSettings(t), log)
	require.NoError(t, err)

	err = runner.HandleRequest(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, plans.StatusCompleted, plan.Status)
	require.NotNil(t, plan.LatestJobID)
	assert.Equal(t, 11, *plan.LatestJobID)
	mockResultRepository.AssertNumberOfCalls(t, "Create", 2)
	mockAnalyzer.AssertExpectations(t)
}

func TestRunnerHandleRequestDropsMissingPlan(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	mockPlanRepository := new(app.MockPlanRepository)
	mockJobRepository := new(app.MockJobRepository)

	mockPlanRepository.On("GetByID", mock.Anything, 4).Return(nil, plans.ErrNotFound)

	runner, err := NewRunner(mockPlanRepository, mockJobRepository, nil, nil, nil, testWorkerSettings(t), log)
	require.NoError(t, err)

	err = runner.HandleRequest(context.Background(), testRequest())

	// A missing plan consumes the message instead of requeueing it
	require.NoError(t, err)
	mockJobRepository.AssertNotCalled(t, "Create")
}

func TestRunnerHandleRequestFailsAfterRetries(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	mockPlanRepository := new(app.MockPlanRepository)
	mockJobRepository := new(app.MockJobRepository)
	mockObjectStore := new(app.MockObjectStore)
	mockAnalyzer := new(MockAnalyzer)

	plan := testPlan()
	mockPlanRepository.On("GetByID", mock.Anything, 4).Return(plan, nil)
	mockJobRepository.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockJobRepository.On("UpdateByID", mock.Anything, mock.Anything).Return(nil)
	mockPlanRepository.On("UpdateByID", mock.Anything, mock.Anything).Return(nil)
	mockObjectStore.On("PresignGet", mock.Anything, mock.Anything, mock.Anything).
		Return("https://bucket/document", nil)
	mockAnalyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)

	settings := testWorkerSettings(t)
	runner, err := NewRunner(mockPlanRepository, mockJobRepository, nil, mockObjectStore, mockAnalyzer, settings, log)
	require.NoError(t, err)

	err = runner.HandleRequest(context.Background(), testRequest())

	// Terminal analysis failure is recorded, not propagated
	require.NoError(t, err)
	assert.Equal(t, plans.StatusFailed, plan.Status)
	mockAnalyzer.AssertNumberOfCalls(t, "Analyze", settings.MaxRetries)
}

func TestRunnerHandleRequestRecoversOnRetry(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	mockPlanRepository := new(app.MockPlanRepository)
	mockJobRepository := new(app.MockJobRepository)
	mockResultRepository := new(app.MockResultRepository)
	mockObjectStore := new(app.MockObjectStore)
	mockAnalyzer := new(MockAnalyzer)

	plan := testPlan()
	mockPlanRepository.On("GetByID", mock.Anything, 4).Return(plan, nil)
	mockJobRepository.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockJobRepository.On("UpdateByID", mock.Anything, mock.Anything).Return(nil)
	mockPlanRepository.On("UpdateByID", mock.Anything, mock.Anything).Return(nil)
	mockObjectStore.On("PresignGet", mock.Anything, mock.Anything, mock.Anything).
		Return("https://bucket/document", nil)

	report := &analyses.EvaluationReport{TotalScore: 70}
	mockAnalyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()
	mockAnalyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything).Return(report, nil).Once()
	mockResultRepository.On("Create", mock.Anything, mock.Anything).Return(nil)

	runner, err := NewRunner(mockPlanRepository, mockJobRepository, mockResultRepository, mockObjectStore, mockAnalyzer, testWorkerSettings(t), log)
	require.NoError(t, err)

	err = runner.HandleRequest(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, plans.StatusCompleted, plan.Status)
	mockAnalyzer.AssertNumberOfCalls(t, "Analyze", 2)
}
