// Package connector provides adapters for external AWS services. It wraps
// the S3 client behind the object-store contract used for business-plan
// files and the Cognito identity-provider client behind the auth contract.
package connector
