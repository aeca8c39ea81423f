//go:build unit
// +build unit

package worker

import (
	"context"

	"github.com/BizLenz/api/internal/domain/analyses"

	"github.com/stretchr/testify/mock"
)

// MockAnalyzer is a mock implementation of analyses.Analyzer
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, req analyses.AnalysisRequest, documentURL string) (*analyses.EvaluationReport, error) {
	args := m.Called(ctx, req, documentURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyses.EvaluationReport), args.Error(1)
}
