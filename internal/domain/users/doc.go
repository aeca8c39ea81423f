// Package users defines the user profile entity and the contracts for
// profile storage and the external identity provider that owns credentials.
package users
