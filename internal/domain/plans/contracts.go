package plans

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// PlanUploadService issues presigned upload URLs and records metadata once
// the client finished uploading.
type PlanUploadService interface {
	// IssueUploadURL validates the descriptor and returns a short-lived
	// presigned PUT URL together with the object key reserved for the file.
	IssueUploadURL(ctx context.Context, userID string, req *UploadRequest) (*UploadTicket, error)

	// SaveMetadata records an uploaded object as a business plan, provisioning
	// the owner's profile when needed, and requests analysis of the file.
	SaveMetadata(ctx context.Context, userID string, meta *UploadMetadata) (*BusinessPlan, error)
}

// PlanMetadataService searches, fetches and deletes plan metadata.
type PlanMetadataService interface {
	// Search lists plans matching the query, newest first.
	Search(ctx context.Context, query *PlanQuery) ([]*BusinessPlan, error)

	// GetByID retrieves one plan.
	GetByID(ctx context.Context, planID int) (*BusinessPlan, error)

	// DeleteByID removes the stored object first and, only when that
	// succeeds, the metadata row. Jobs and results cascade with the row.
	DeleteByID(ctx context.Context, planID int) error
}

// PlanDownloadService hands out presigned download URLs.
type PlanDownloadService interface {
	// IssueDownloadURL returns a short-lived presigned GET URL for the
	// plan's stored object.
	IssueDownloadURL(ctx context.Context, planID int) (*DownloadTicket, error)
}

// UploadTicket is the response to an upload-URL request.
type UploadTicket struct {
	UserID       string
	FileName     string
	MimeType     string
	FileSize     int64
	ObjectKey    string
	PresignedURL string
	ExpiresAt    time.Time
}

// UploadMetadata is what the client reports back after uploading to the
// presigned URL.
type UploadMetadata struct {
	FileName  string `validate:"required,min=1,max=255"`
	ObjectKey string `validate:"required,min=1,max=500"`
	FileURL   string `validate:"required,min=1"`
	FileSize  int64  `validate:"required,min=1"`
	MimeType  string `validate:"required,min=1,max=100"`
}

// Validate for validating UploadMetadata struct
func (m *UploadMetadata) Validate() error {
	validate := validator.New()

	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("validation failed for UploadMetadata: %w", err)
	}

	return nil
}

// DownloadTicket is the response to a download-URL request.
type DownloadTicket struct {
	PlanID       int
	FileName     string
	PresignedURL string
	ExpiresAt    time.Time
}

// PlanRepository defines the interface for BusinessPlan persistence
type PlanRepository interface {
	// Create adds a new BusinessPlan to the database
	Create(ctx context.Context, plan *BusinessPlan) error
	// List lists BusinessPlans in the database with optional filters
	List(ctx context.Context, query *PlanQuery) ([]*BusinessPlan, error)
	// GetByID retrieves a BusinessPlan from the database by ID
	GetByID(ctx context.Context, planID int) (*BusinessPlan, error)
	// UpdateByID updates a BusinessPlan in the database by ID
	UpdateByID(ctx context.Context, plan *BusinessPlan) error
	// DeleteByID deletes a BusinessPlan in the database by ID
	DeleteByID(ctx context.Context, planID int) error
}

// ObjectStore is the interface for the blob storage backing plan files.
type ObjectStore interface {
	// PresignPut returns a presigned URL for uploading an object.
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)

	// PresignGet returns a presigned URL for downloading an object.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Put stores an object.
	Put(ctx context.Context, key, contentType string, body []byte) error

	// Delete removes an object.
	Delete(ctx context.Context, key string) error

	// Archive copies an object under the archive prefix (cold storage class)
	// and returns the archived key.
	Archive(ctx context.Context, key string) (string, error)
}
