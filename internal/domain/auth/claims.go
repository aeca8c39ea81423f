package auth

import (
	"context"
	"strings"
)

// Admin group names recognized in the groups claim.
const (
	GroupAdmin          = "admin"
	GroupAdministrators = "administrators"
)

// Claims carries the verified fields of a bearer token.
type Claims struct {
	Subject  string
	Username string
	Scopes   []string
	Groups   []string
}

// HasScope reports whether the token carries the given OAuth scope.
func (c *Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the token belongs to an administrator group.
func (c *Claims) IsAdmin() bool {
	for _, g := range c.Groups {
		switch strings.ToLower(g) {
		case GroupAdmin, GroupAdministrators:
			return true
		}
	}
	return false
}

// TokenVerifier validates a raw bearer token and extracts its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}
