//go:build unit
// +build unit

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimsHasScope(t *testing.T) {
	claims := &Claims{Subject: "user-1", Scopes: []string{"bizlenz/read", "bizlenz/write"}}

	assert.True(t, claims.HasScope("bizlenz/read"))
	assert.True(t, claims.HasScope("bizlenz/write"))
	assert.False(t, claims.HasScope("bizlenz/admin"))

	empty := &Claims{Subject: "user-1"}
	assert.False(t, empty.HasScope("bizlenz/read"))
}

func TestClaimsIsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		groups   []string
		expected bool
	}{
		{name: "admin group", groups: []string{"admin"}, expected: true},
		{name: "administrators group", groups: []string{"administrators"}, expected: true},
		{name: "case insensitive", groups: []string{"Administrators"}, expected: true},
		{name: "among other groups", groups: []string{"users", "admin"}, expected: true},
		{name: "non-admin groups", groups: []string{"users", "beta"}, expected: false},
		{name: "no groups", groups: nil, expected: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			claims := &Claims{Subject: "user-1", Groups: test.groups}
			assert.Equal(t, test.expected, claims.IsAdmin())
		})
	}
}
