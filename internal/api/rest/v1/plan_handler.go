package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/BizLenz/api/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

// PlanHandler defines the interface for handling business-plan file
// operations
type PlanHandler interface {
	IssueUploadURL(ctx *gin.Context)
	SaveMetadata(ctx *gin.Context)
	Search(ctx *gin.Context)
	Download(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	AdminListAll(ctx *gin.Context)
	AdminSearch(ctx *gin.Context)
}

type planHandler struct {
	uploadService   plans.PlanUploadService
	metadataService plans.PlanMetadataService
	downloadService plans.PlanDownloadService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(uploadService plans.PlanUploadService, metadataService plans.PlanMetadataService, downloadService plans.PlanDownloadService) PlanHandler {
	return &planHandler{
		uploadService:   uploadService,
		metadataService: metadataService,
		downloadService: downloadService,
	}
}

// IssueUploadURL validates a file descriptor and returns a presigned PUT URL
func (handler *planHandler) IssueUploadURL(ctx *gin.Context) {
	claims := ClaimsFromContext(ctx)

	var dto UploadRequestDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid request body")
		return
	}

	request := &plans.UploadRequest{
		FileName: dto.FileName,
		MimeType: dto.MimeType,
		FileSize: dto.FileSize,
	}

	ticket, err := handler.uploadService.IssueUploadURL(ctx, claims.Subject, request)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, UploadTicketResponse{
		FileName:     ticket.FileName,
		ObjectKey:    ticket.ObjectKey,
		PresignedURL: ticket.PresignedURL,
		ExpiresAt:    ticket.ExpiresAt,
	})
}

// SaveMetadata records an uploaded object as a pending business plan
func (handler *planHandler) SaveMetadata(ctx *gin.Context) {
	claims := ClaimsFromContext(ctx)

	var dto UploadMetadataDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid request body")
		return
	}

	meta := &plans.UploadMetadata{
		FileName:  dto.FileName,
		ObjectKey: dto.ObjectKey,
		FileURL:   dto.FileURL,
		FileSize:  dto.FileSize,
		MimeType:  dto.MimeType,
	}

	plan, err := handler.uploadService.SaveMetadata(ctx, claims.Subject, meta)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	ctx.JSON(http.StatusCreated, toPlanResponse(plan))
}

// Search lists the caller's own plans, newest first
func (handler *planHandler) Search(ctx *gin.Context) {
	claims := ClaimsFromContext(ctx)

	query, ok := bindPlanQuery(ctx, 100)
	if !ok {
		return
	}
	query.UserID = claims.Subject

	results, err := handler.metadataService.Search(ctx, query)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	response := make([]PlanResponse, 0, len(results))
	for _, plan := range results {
		response = append(response, toPlanResponse(plan))
	}

	ctx.JSON(http.StatusOK, response)
}

// Download returns a presigned GET URL for a plan owned by the caller
func (handler *planHandler) Download(ctx *gin.Context) {
	claims := ClaimsFromContext(ctx)

	planID, ok := planIDParam(ctx)
	if !ok {
		return
	}

	plan, err := handler.metadataService.GetByID(ctx, planID)
	if err != nil || plan.UserID != claims.Subject {
		respondError(ctx, http.StatusNotFound, fmt.Sprintf("file with id %d not found", planID))
		return
	}

	ticket, err := handler.downloadService.IssueDownloadURL(ctx, planID)
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, DownloadTicketResponse{
		PlanID:       ticket.PlanID,
		FileName:     ticket.FileName,
		PresignedURL: ticket.PresignedURL,
		ExpiresAt:    ticket.ExpiresAt,
	})
}

// DeleteByID removes the stored object and the metadata row
func (handler *planHandler) DeleteByID(ctx *gin.Context) {
	claims := ClaimsFromContext(ctx)

	planID, ok := planIDParam(ctx)
	if !ok {
		return
	}

	plan, err := handler.metadataService.GetByID(ctx, planID)
	if err != nil {
		respondError(ctx, http.StatusNotFound, fmt.Sprintf("file with id %d not found", planID))
		return
	}
	if plan.UserID != claims.Subject && !claims.IsAdmin() {
		respondError(ctx, http.StatusNotFound, fmt.Sprintf("file with id %d not found", planID))
		return
	}

	if err := handler.metadataService.DeleteByID(ctx, planID); err != nil {
		if errors.Is(err, plans.ErrNotFound) {
			respondError(ctx, http.StatusNotFound, fmt.Sprintf("file with id %d not found", planID))
			return
		}
		// The stored object survived, so the row was kept as well
		respondError(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	message := fmt.Sprintf("deleted file with id %d", planID)
	ctx.JSON(http.StatusOK, InfoResponse{Message: &message})
}

// AdminListAll lists every user's plans
func (handler *planHandler) AdminListAll(ctx *gin.Context) {
	query, ok := bindPlanQuery(ctx, 500)
	if !ok {
		return
	}

	results, err := handler.metadataService.Search(ctx, query)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	response := make([]PlanResponse, 0, len(results))
	for _, plan := range results {
		response = append(response, toPlanResponse(plan))
	}

	ctx.JSON(http.StatusOK, response)
}

// AdminSearch filters plans across users
func (handler *planHandler) AdminSearch(ctx *gin.Context) {
	query, ok := bindPlanQuery(ctx, 500)
	if !ok {
		return
	}
	query.UserID = ctx.Query("user_id")

	results, err := handler.metadataService.Search(ctx, query)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	response := make([]PlanResponse, 0, len(results))
	for _, plan := range results {
		response = append(response, toPlanResponse(plan))
	}

	ctx.JSON(http.StatusOK, response)
}

// bindPlanQuery reads the shared listing parameters. The limit is clamped
// to maxLimit for the caller's surface.
func bindPlanQuery(ctx *gin.Context, maxLimit int) (*plans.PlanQuery, bool) {
	query := plans.NewPlanQuery()

	if keywords := ctx.Query("keywords"); keywords != "" {
		query.Keywords = keywords
	}
	if status := ctx.Query("status"); status != "" {
		if !plans.ValidStatus(status) {
			respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid status filter: %s", status))
			return nil, false
		}
		query.Status = status
	}
	if limit := ctx.Query("limit"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed < 1 || parsed > maxLimit {
			respondError(ctx, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxLimit))
			return nil, false
		}
		query.Limit = parsed
	}
	if offset := ctx.Query("offset"); offset != "" {
		parsed, err := strconv.Atoi(offset)
		if err != nil || parsed < 0 {
			respondError(ctx, http.StatusBadRequest, "offset must not be negative")
			return nil, false
		}
		query.Offset = parsed
	}

	return query, true
}

// planIDParam parses the :id path parameter.
func planIDParam(ctx *gin.Context) (int, bool) {
	planID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || planID < 1 {
		respondError(ctx, http.StatusBadRequest, "invalid file id")
		return 0, false
	}
	return planID, true
}
