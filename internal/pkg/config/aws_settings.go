package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// S3Settings holds settings for the bucket that stores business-plan files
// and analysis payloads.
type S3Settings struct {
	Region          string `mapstructure:"region" validate:"required"`
	Bucket          string `mapstructure:"bucket" validate:"required"`
	UploadFolder    string `mapstructure:"upload_folder"`
	ArchiveFolder   string `mapstructure:"archive_folder"`
	MaxFileSize     int64  `mapstructure:"max_file_size"`
	PresignedExpiry int    `mapstructure:"presigned_expiry"`

	// Static credentials for local development against S3-compatible
	// stores. Production deployments rely on the default credential chain.
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// Validate checks that all fields in S3Settings are valid and applies defaults
// for the optional ones.
func (s *S3Settings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for S3Settings: %w", err)
	}

	if s.UploadFolder == "" {
		s.UploadFolder = "uploads"
	}
	if s.ArchiveFolder == "" {
		s.ArchiveFolder = "archive"
	}
	if s.MaxFileSize == 0 {
		s.MaxFileSize = 50 * 1024 * 1024
	}
	if s.PresignedExpiry == 0 {
		s.PresignedExpiry = 300
	}

	return nil
}

// CognitoSettings holds the user pool settings used for sign-up flows and
// bearer-token verification.
type CognitoSettings struct {
	Region       string `mapstructure:"region" validate:"required"`
	UserPoolID   string `mapstructure:"user_pool_id" validate:"required"`
	ClientID     string `mapstructure:"client_id" validate:"required"`
	ClientSecret string `mapstructure:"client_secret"`
}

// Validate checks that all fields in CognitoSettings are valid
func (s *CognitoSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for CognitoSettings: %w", err)
	}

	return nil
}

// IssuerURL returns the token issuer for the configured user pool.
func (s *CognitoSettings) IssuerURL() string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", s.Region, s.UserPoolID)
}

// JWKSURL returns the JWKS endpoint for the configured user pool.
func (s *CognitoSettings) JWKSURL() string {
	return s.IssuerURL() + "/.well-known/jwks.json"
}
