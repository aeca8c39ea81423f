// Package auth defines the verified token claims the API works with and the
// contract for bearer-token verification.
package auth
