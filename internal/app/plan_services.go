package app

import (
	"context"
	"fmt"
	"time"

	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/domain/plans"
	"github.com/BizLenz/api/internal/domain/users"
	"github.com/BizLenz/api/internal/pkg/config"
	"github.com/BizLenz/api/internal/pkg/logger"

	"github.com/google/uuid"
)

// planUploadService implements the PlanUploadService interface for the
// presigned upload flow
type planUploadService struct {
	planRepository plans.PlanRepository
	userRepository users.UserRepository
	objectStore    plans.ObjectStore
	publisher      analyses.RequestPublisher
	settings       *config.S3Settings
	logger         logger.Logger
}

// NewPlanUploadService creates a new instance of PlanUploadService
func NewPlanUploadService(
	planRepository plans.PlanRepository,
	userRepository users.UserRepository,
	objectStore plans.ObjectStore,
	publisher analyses.RequestPublisher,
	settings *config.S3Settings,
	logger logger.Logger,
) (plans.PlanUploadService, error) {
	return &planUploadService{
		planRepository: planRepository,
		userRepository: userRepository,
		objectStore:    objectStore,
		publisher:      publisher,
		settings:       settings,
		logger:         logger,
	}, nil
}

// IssueUploadURL validates the file descriptor and reserves an object key
// under the upload folder. The client uploads directly to the returned URL.
func (s *planUploadService) IssueUploadURL(ctx context.Context, userID string, req *plans.UploadRequest) (*plans.UploadTicket, error) {
	if err := req.Validate(s.settings.MaxFileSize); err != nil {
		return nil, fmt.Errorf("invalid upload request: %w", err)
	}

	objectKey := fmt.Sprintf("%s/%s_%s", s.settings.UploadFolder, uuid.NewString(), req.FileName)
	expiry := time.Duration(s.settings.PresignedExpiry) * time.Second

	presignedURL, err := s.objectStore.PresignPut(ctx, objectKey, req.MimeType, expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to issue upload URL: %w", err)
	}

	return &plans.UploadTicket{
		UserID:       userID,
		FileName:     req.FileName,
		MimeType:     req.MimeType,
		FileSize:     req.FileSize,
		ObjectKey:    objectKey,
		PresignedURL: presignedURL,
		ExpiresAt:    time.Now().Add(expiry),
	}, nil
}

// SaveMetadata records the uploaded object as a pending business plan and
// hands it to the analysis pipeline.
func (s *planUploadService) SaveMetadata(ctx context.Context, userID string, meta *plans.UploadMetadata) (*plans.BusinessPlan, error) {
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("invalid upload metadata: %w", err)
	}

	// First upload from a fresh token subject provisions the profile
	if _, err := s.userRepository.GetOrCreate(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to resolve uploader: %w", err)
	}

	now := time.Now()
	plan := &plans.BusinessPlan{
		UserID:    userID,
		FileName:  meta.FileName,
		FilePath:  meta.ObjectKey,
		FileSize:  meta.FileSize,
		MimeType:  meta.MimeType,
		Status:    plans.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.planRepository.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save plan metadata: %w", err)
	}

	request := analyses.AnalysisRequest{
		PlanID:    plan.ID,
		UserID:    userID,
		ObjectKey: meta.ObjectKey,
	}
	if err := s.publisher.PublishAnalysisRequest(ctx, request); err != nil {
		// The metadata is saved either way; the plan stays pending until
		// analysis is requested again
		s.logger.Warn("Failed to request analysis for plan ", plan.ID, ": ", err)
	}

	return plan, nil
}

// planMetadataService implements the PlanMetadataService interface
type planMetadataService struct {
	planRepository plans.PlanRepository
	objectStore    plans.ObjectStore
	logger         logger.Logger
}

// NewPlanMetadataService creates a new instance of PlanMetadataService
func NewPlanMetadataService(
	planRepository plans.PlanRepository,
	objectStore plans.ObjectStore,
	logger logger.Logger,
) (plans.PlanMetadataService, error) {
	return &planMetadataService{
		planRepository: planRepository,
		objectStore:    objectStore,
		logger:         logger,
	}, nil
}

func (s *planMetadataService) Search(ctx context.Context, query *plans.PlanQuery) ([]*plans.BusinessPlan, error) {
	return s.planRepository.List(ctx, query)
}

func (s *planMetadataService) GetByID(ctx context.Context, planID int) (*plans.BusinessPlan, error) {
	return s.planRepository.GetByID(ctx, planID)
}

// DeleteByID removes the stored object before the metadata row. When the
// object delete fails the row survives, so the file never becomes orphaned.
func (s *planMetadataService) DeleteByID(ctx context.Context, planID int) error {
	plan, err := s.planRepository.GetByID(ctx, planID)
	if err != nil {
		return err
	}

	if err := s.objectStore.Delete(ctx, plan.FilePath); err != nil {
		return fmt.Errorf("failed to delete stored file: %w", err)
	}

	if err := s.planRepository.DeleteByID(ctx, planID); err != nil {
		return err
	}

	s.logger.Info("Deleted plan ", planID, " and its stored file")
	return nil
}

// planDownloadService implements the PlanDownloadService interface
type planDownloadService struct {
	planRepository plans.PlanRepository
	objectStore    plans.ObjectStore
	settings       *config.S3Settings
	logger         logger.Logger
}

// NewPlanDownloadService creates a new instance of PlanDownloadService
func NewPlanDownloadService(
	planRepository plans.PlanRepository,
	objectStore plans.ObjectStore,
	settings *config.S3Settings,
	logger logger.Logger,
) (plans.PlanDownloadService, error) {
	return &planDownloadService{
		planRepository: planRepository,
		objectStore:    objectStore,
		settings:       settings,
		logger:         logger,
	}, nil
}

func (s *planDownloadService) IssueDownloadURL(ctx context.Context, planID int) (*plans.DownloadTicket, error) {
	plan, err := s.planRepository.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	expiry := time.Duration(s.settings.PresignedExpiry) * time.Second
	presignedURL, err := s.objectStore.PresignGet(ctx, plan.FilePath, expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to issue download URL: %w", err)
	}

	return &plans.DownloadTicket{
		PlanID:       plan.ID,
		FileName:     plan.FileName,
		PresignedURL: presignedURL,
		ExpiresAt:    time.Now().Add(expiry),
	}, nil
}
