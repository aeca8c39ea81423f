//go:build unit
// +build unit

package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToE164(t *testing.T) {
	tests := []struct {
		name          string
		phone         string
		expected      string
		expectedError bool
	}{
		{
			name:     "already E.164",
			phone:    "+821012345678",
			expected: "+821012345678",
		},
		{
			name:     "national number with leading zero",
			phone:    "01012345678",
			expected: "+821012345678",
		},
		{
			name:     "hyphenated national number",
			phone:    "010-1234-5678",
			expected: "+821012345678",
		},
		{
			name:     "spaces and parentheses",
			phone:    "(010) 1234 5678",
			expected: "+821012345678",
		},
		{
			name:          "letters",
			phone:         "not a number",
			expectedError: true,
		},
		{
			name:          "plus with invalid body",
			phone:         "+0123",
			expectedError: true,
		},
		{
			name:          "empty",
			phone:         "",
			expectedError: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			normalized, err := ToE164(test.phone, "+82")
			if test.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expected, normalized)
		})
	}
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name          string
		user          *User
		expectedError bool
	}{
		{
			name: "valid full profile",
			user: &User{
				ID:          "b1c2d3e4",
				Username:    "kim",
				Email:       "kim@example.com",
				PhoneNumber: "+821012345678",
				Address:     "Seoul",
			},
			expectedError: false,
		},
		{
			name:          "id only",
			user:          &User{ID: "b1c2d3e4"},
			expectedError: false,
		},
		{
			name:          "missing id",
			user:          &User{Username: "kim"},
			expectedError: true,
		},
		{
			name:          "bad email",
			user:          &User{ID: "b1c2d3e4", Email: "not-an-email"},
			expectedError: true,
		},
		{
			name:          "bad phone",
			user:          &User{ID: "b1c2d3e4", PhoneNumber: "01012345678"},
			expectedError: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.user.Validate()
			if test.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
