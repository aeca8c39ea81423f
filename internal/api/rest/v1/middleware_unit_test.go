//go:build unit
// +build unit

package v1

import (
	"net/http"
	"testing"

	"github.com/BizLenz/api/internal/domain/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuthenticationStoresVerifiedClaims(t *testing.T) {
	mockVerifier := new(MockTokenVerifier)
	claims := &auth.Claims{Subject: "user-1", Scopes: []string{ScopeRead}}
	mockVerifier.On("Verify", mock.Anything, "good-token").Return(claims, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/files/search", nil)
	c.Request.Header.Set("Authorization", "Bearer good-token")

	Authentication(mockVerifier)(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, c.IsAborted())
	assert.Equal(t, claims, ClaimsFromContext(c))
	mockVerifier.AssertExpectations(t)
}

func TestAuthenticationAnonymousPassesThrough(t *testing.T) {
	mockVerifier := new(MockTokenVerifier)

	c, _ := newTestContext(t, http.MethodGet, "/healthz", nil)

	Authentication(mockVerifier)(c)

	assert.False(t, c.IsAborted())
	assert.Nil(t, ClaimsFromContext(c))
	mockVerifier.AssertNotCalled(t, "Verify")
}

func TestAuthenticationMalformedHeader(t *testing.T) {
	mockVerifier := new(MockTokenVerifier)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/files/search", nil)
	c.Request.Header.Set("Authorization", "Token abc")

	Authentication(mockVerifier)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockVerifier.AssertNotCalled(t, "Verify")
}

func TestAuthenticationInvalidToken(t *testing.T) {
	mockVerifier := new(MockTokenVerifier)
	mockVerifier.On("Verify", mock.Anything, "bad-token").Return(nil, assert.AnError)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/files/search", nil)
	c.Request.Header.Set("Authorization", "Bearer bad-token")

	Authentication(mockVerifier)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockVerifier.AssertExpectations(t)
}

func TestAuthenticationMissingSubject(t *testing.T) {
	mockVerifier := new(MockTokenVerifier)
	mockVerifier.On("Verify", mock.Anything, "no-sub-token").Return(&auth.Claims{}, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/files/search", nil)
	c.Request.Header.Set("Authorization", "Bearer no-sub-token")

	Authentication(mockVerifier)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockVerifier.AssertExpectations(t)
}

func TestRequireScope(t *testing.T) {
	tests := []struct {
		name           string
		claims         *auth.Claims
		expectedStatus int
		expectAborted  bool
	}{
		{
			name:           "scope present",
			claims:         &auth.Claims{Subject: "user-1", Scopes: []string{ScopeWrite}},
			expectedStatus: http.StatusOK,
			expectAborted:  false,
		},
		{
			name:           "scope missing",
			claims:         &auth.Claims{Subject: "user-1", Scopes: []string{ScopeRead}},
			expectedStatus: http.StatusForbidden,
			expectAborted:  true,
		},
		{
			name:           "admin without scope",
			claims:         &auth.Claims{Subject: "admin-1", Groups: []string{"admin"}},
			expectedStatus: http.StatusOK,
			expectAborted:  false,
		},
		{
			name:           "anonymous",
			claims:         nil,
			expectedStatus: http.StatusUnauthorized,
			expectAborted:  true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, w := newTestContext(t, http.MethodDelete, "/api/v1/files/1", nil)
			if test.claims != nil {
				c.Set(claimsContextKey, test.claims)
			}

			RequireScope(ScopeWrite)(c)

			assert.Equal(t, test.expectedStatus, w.Code)
			assert.Equal(t, test.expectAborted, c.IsAborted())
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	c, w := newTestContext(t, http.MethodGet, "/api/v1/files/admin/all", nil)
	c.Set(claimsContextKey, &auth.Claims{Subject: "user-1", Scopes: []string{ScopeRead, ScopeWrite}})

	RequireAdmin()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdminGroup(t *testing.T) {
	c, w := newTestContext(t, http.MethodGet, "/api/v1/files/admin/all", nil)
	c.Set(claimsContextKey, &auth.Claims{Subject: "admin-1", Groups: []string{"Administrators"}})

	RequireAdmin()(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
}
