//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BizLenz/api/internal/domain/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTestRouter(verifier auth.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, verifier,
		new(MockPlanUploadService),
		new(MockPlanMetadataService),
		new(MockPlanDownloadService),
		new(MockEvaluationService),
		new(MockAuthService),
		new(MockUserProfileService))
	return r
}

func TestHealthzIsPublic(t *testing.T) {
	r := setupTestRouter(new(MockTokenVerifier))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response HealthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response.Status)
	assert.GreaterOrEqual(t, response.Uptime, 0.0)
}

func TestProtectedRouteRejectsAnonymous(t *testing.T) {
	r := setupTestRouter(new(MockTokenVerifier))

	req := httptest.NewRequest(http.MethodGet, BasePath+"/files/search", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRouteRejectsRegularUser(t *testing.T) {
	mockVerifier := new(MockTokenVerifier)
	claims := &auth.Claims{Subject: "user-1", Scopes: []string{ScopeRead, ScopeWrite}}
	mockVerifier.On("Verify", mock.Anything, "user-token").Return(claims, nil)

	r := setupTestRouter(mockVerifier)

	req := httptest.NewRequest(http.MethodGet, BasePath+"/files/admin/all", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSignInIsPublic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockAuthService := new(MockAuthService)
	mockAuthService.On("SignIn", mock.Anything, "kim", "wrong").Return(nil, assert.AnError)

	r := gin.New()
	SetupRoutes(r, new(MockTokenVerifier),
		new(MockPlanUploadService),
		new(MockPlanMetadataService),
		new(MockPlanDownloadService),
		new(MockEvaluationService),
		mockAuthService,
		new(MockUserProfileService))

	req := httptest.NewRequest(http.MethodPost, BasePath+"/users/signin",
		strings.NewReader(`{"username":"kim","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertExpectations(t)
}
