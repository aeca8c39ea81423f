// Package identity verifies bearer tokens issued by the Cognito user pool.
// Signatures are checked against the pool's published JWKS and the claims
// relevant for authorization are extracted into the auth domain type.
package identity
