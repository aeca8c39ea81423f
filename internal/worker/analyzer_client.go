package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/pkg/logger"
)

// analyzerRequest is the payload sent to the evaluation engine.
type analyzerRequest struct {
	PlanID      int    `json:"plan_id"`
	UserID      string `json:"user_id"`
	ObjectKey   string `json:"s3_key"`
	DocumentURL string `json:"document_url"`
}

type httpAnalyzer struct {
	endpoint string
	client   *http.Client
	logger   logger.Logger
}

// NewHTTPAnalyzer creates an Analyzer that posts analysis requests to the
// evaluation engine over HTTP.
func NewHTTPAnalyzer(endpoint string, logger logger.Logger) (analyses.Analyzer, error) {
	return &httpAnalyzer{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
		logger: logger,
	}, nil
}

func (a *httpAnalyzer) Analyze(ctx context.Context, req analyses.AnalysisRequest, documentURL string) (*analyses.EvaluationReport, error) {
	body, err := json.Marshal(analyzerRequest{
		PlanID:      req.PlanID,
		UserID:      req.UserID,
		ObjectKey:   req.ObjectKey,
		DocumentURL: documentURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode analyzer request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build analyzer request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("analyzer call failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analyzer returned status %d", resp.StatusCode)
	}

	var report analyses.EvaluationReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode analyzer response: %w", err)
	}

	a.logger.Info("Received evaluation report for plan ", req.PlanID)
	return &report, nil
}
