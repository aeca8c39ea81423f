//go:build unit
// +build unit

package v1

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BizLenz/api/internal/domain/auth"
	"github.com/BizLenz/api/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, target, reader)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func setClaims(c *gin.Context, subject string, groups ...string) {
	c.Set(claimsContextKey, &auth.Claims{
		Subject:  subject,
		Username: "tester",
		Scopes:   []string{ScopeRead, ScopeWrite},
		Groups:   groups,
	})
}

func TestPlanHandlerIssueUploadURL(t *testing.T) {
	mockUploadService := new(MockPlanUploadService)
	handler := NewPlanHandler(mockUploadService, nil, nil)

	ticket := &plans.UploadTicket{
		UserID:       "user-1",
		FileName:     "plan.pdf",
		ObjectKey:    "uploads/abc_plan.pdf",
		PresignedURL: "https://bucket.s3.amazonaws.com/uploads/abc_plan.pdf?sig=x",
		ExpiresAt:    time.Now().Add(5 * time.Minute),
	}
	mockUploadService.On("IssueUploadURL", mock.Anything, "user-1", mock.Anything).Return(ticket, nil)

	body := []byte(`{"file_name":"plan.pdf","mime_type":"application/pdf","file_size":2048}`)
	c, w := newTestContext(t, http.MethodPost, "/api/v1/files/upload", body)
	setClaims(c, "user-1")

	handler.IssueUploadURL(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uploads/abc_plan.pdf")
	mockUploadService.AssertExpectations(t)
}

func TestPlanHandlerIssueUploadURLInvalidBody(t *testing.T) {
	mockUploadService := new(MockPlanUploadService)
	handler := NewPlanHandler(mockUploadService, nil, nil)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/files/upload", []byte(`not json`))
	setClaims(c, "user-1")

	handler.IssueUploadURL(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUploadService.AssertNotCalled(t, "IssueUploadURL")
}

func TestPlanHandlerIssueUploadURLRejected(t *testing.T) {
	mockUploadService := new(MockPlanUploadService)
	handler := NewPlanHandler(mockUploadService, nil, nil)

	mockUploadService.On("IssueUploadURL", mock.Anything, "user-1", mock.Anything).
		Return(nil, assert.AnError)

	body := []byte(`{"file_name":"plan.exe","mime_type":"application/octet-stream","file_size":2048}`)
	c, w := newTestContext(t, http.MethodPost, "/api/v1/files/upload", body)
	setClaims(c, "user-1")

	handler.IssueUploadURL(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUploadService.AssertExpectations(t)
}

func TestPlanHandlerSaveMetadata(t *testing.T) {
	mockUploadService := new(MockPlanUploadService)
	handler := NewPlanHandler(mockUploadService, nil, nil)

	plan := &plans.BusinessPlan{
		ID:       7,
		UserID:   "user-1",
		FileName: "plan.pdf",
		FilePath: "uploads/abc_plan.pdf",
		FileSize: 2048,
		MimeType: "application/pdf",
		Status:   plans.StatusPending,
	}
	mockUploadService.On("SaveMetadata", mock.Anything, "user-1", mock.Anything).Return(plan, nil)

	body := []byte(`{"file_name":"plan.pdf","object_key":"uploads/abc_plan.pdf","file_url":"https://bucket/uploads/abc_plan.pdf","file_size":2048,"mime_type":"application/pdf"}`)
	c, w := newTestContext(t, http.MethodPost, "/api/v1/files/upload/metadata", body)
	setClaims(c, "user-1")

	handler.SaveMetadata(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "pending")
	mockUploadService.AssertExpectations(t)
}

func TestPlanHandlerSearchScopesToCaller(t *testing.T) {
	mockMetadataService := new(MockPlanMetadataService)
	handler := NewPlanHandler(nil, mockMetadataService, nil)

	results := []*plans.BusinessPlan{
		{ID: 1, UserID: "user-1", FileName: "a.pdf", FilePath: "uploads/a.pdf", FileSize: 10, MimeType: "application/pdf", Status: plans.StatusCompleted},
	}
	mockMetadataService.On("Search", mock.Anything, mock.MatchedBy(func(q *plans.PlanQuery) bool {
		return q.UserID == "user-1" && q.Keywords == "bakery"
	})).Return(results, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/files/search?keywords=bakery", nil)
	setClaims(c, "user-1")

	handler.Search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a.pdf")
	mockMetadataService.AssertExpectations(t)
}

func TestPlanHandlerSearchInvalidStatus(t *testing.T) {
	mockMetadataService := new(MockPlanMetadataService)
	handler := NewPlanHandler(nil, mockMetadataService, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/files/search?status=done", nil)
	setClaims(c, "user-1")

	handler.Search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockMetadataService.AssertNotCalled(t, "Search")
}

func TestPlanHandlerSearchLimitOutOfRange(t *testing.T) {
	mockMetadataService := new(MockPlanMetadataService)
	handler := NewPlanHandler(nil, mockMetadataService, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/files/search?limit=101", nil)
	setClaims(c, "user-1")

	handler.Search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "limit must be between 1 and 100")
	mockMetadataService.AssertNotCalled(t, "Search")
}

func TestPlanHandlerDownload(t *testing.T) {
	mockMetadataService := new(MockPlanMetadataService)
	mockDownloadService := new(MockPlanDownloadService)
	handler := NewPlanHandler(nil, mockMetadataService, mockDownloadService)

	plan := &plans.BusinessPlan{ID: 3, UserID: "user-1", FileName: "plan.pdf", FilePath: "uploads/abc_plan.pdf", FileSize: 10, MimeType: "application/pdf", Status: plans.StatusCompleted}
	ticket := &plans.DownloadTicket{
		PlanID:       3,
		FileName:     "plan.pdf",
		PresignedURL: "https://bucket.s3.amazonaws.com/uploads/abc_plan.pdf?sig=y",
		ExpiresAt:    time.Now().Add(5 * time.Minute),
	}
	mockMetadataService.On("GetByID", mock.Anything, 3).Return(plan, nil)
	mockDownloadService.On("IssueDownloadURL", mock.Anything, 3).Return(ticket, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/files/3/download", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	setClaims(c, "user-1")

	handler.Download(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sig=y")
	mockMetadataService.AssertExpectations(t)
	mockDownloadService.AssertExpectations(t)
}

func TestPlanHandlerDownloadHidesForeignPlan(t *testing.T) {
	mockMetadataService := new(MockPlanMetadataService)
	mockDownloadService := new(MockPlanDownloadService)
	handler := NewPlanHandler(nil, mockMetadataService, mockDownloadService)

	plan := &plans.BusinessPlan{ID: 3, UserID: "someone-else", FileName: "plan.pdf", FilePath: "uploads/abc_plan.pdf", FileSize: 10, MimeType: "application/pdf", Status: plans.StatusCompleted}
	mockMetadataService.On("GetByID", mock.Anything, 3).Return(plan, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/files/3/download", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	setClaims(c, "user-1")

	handler.Download(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockDownloadService.AssertNotCalled(t, "IssueDownloadURL")
}

func TestPlanHandlerDownloadInvalidID(t *testing.T) {
	handler := NewPlanHandler(nil, nil, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/files/abc/download", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	setClaims(c, "user-1")

	handler.Download(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanHandlerDeleteByID(t *testing.T) {
	mockMetadataService := new(MockPlanMetadataService)
	handler := NewPlanHandler(nil, mockMetadataService, nil)

	plan := &plans.BusinessPlan{ID: 5, UserID: "user-1", FileName: "plan.pdf", FilePath: "uploads/abc_plan.pdf", FileSize: 10, MimeType: "application/pdf", Status: plans.StatusCompleted}
	mockMetadataService.On("GetByID", mock.Anything, 5).Return(plan, nil)
	mockMetadataService.On("DeleteByID", mock.Anything, 5).Return(nil)

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/files/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	setClaims(c, "user-1")

	handler.DeleteByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deleted file with id 5")
	mockMetadataService.AssertExpectations(t)
}

func TestPlanHandlerDeleteByIDForeignPlanHidden(t *testing.T) {
	mockMetadataService := new(MockPlanMetadataService)
	handler := NewPlanHandler(nil, mockMetadataService, nil)

	plan := &plans.BusinessPlan{ID: 5, UserID: "someone-else", FileName: "plan.pdf", FilePath: "uploads/abc_plan.pdf", FileSize: 10, MimeType: "application/pdf", Status: plans.StatusCompleted}
	mockMetadataService.On("GetByID", mock.Anything, 5).Return(plan, nil)

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/files/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	setClaims(c, "user-1")

	handler.DeleteByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockMetadataService.AssertNotCalled(t, "DeleteByID")
}

func TestPlanHandlerDeleteByIDAdminMayDeleteForeignPlan(t *testing.T) {
	mockMetadataService := new(MockPlanMetadataService)
	handler := NewPlanHandler(nil, mockMetadataService, nil)

	plan := &plans.BusinessPlan{ID: 5, UserID: "someone-else", FileName: "plan.pdf", FilePath: "uploads/abc_plan.pdf", FileSize: 10, MimeType: "application/pdf", Status: plans.StatusCompleted}
	mockMetadataService.On("GetByID", mock.Anything, 5).Return(plan, nil)
	mockMetadataService.On("DeleteByID", mock.Anything, 5).Return(nil)

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/files/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	setClaims(c, "admin-1", "admin")

	handler.DeleteByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockMetadataService.AssertExpectations(t)
}

func TestPlanHandlerAdminSearchFiltersByUser(t *testing.T) {
	mockMetadataService := new(MockPlanMetadataService)
	handler := NewPlanHandler(nil, mockMetadataService, nil)

	mockMetadataService.On("Search", mock.Anything, mock.MatchedBy(func(q *plans.PlanQuery) bool {
		return q.UserID == "user-9"
	})).Return([]*plans.BusinessPlan{}, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/files/admin/search?user_id=user-9", nil)
	setClaims(c, "admin-1", "administrators")

	handler.AdminSearch(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockMetadataService.AssertExpectations(t)
}
