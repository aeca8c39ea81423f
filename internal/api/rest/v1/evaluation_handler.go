package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

// EvaluationHandler defines the interface for handling evaluation results
type EvaluationHandler interface {
	Save(ctx *gin.Context)
	GetByJobID(ctx *gin.Context)
	GetLatestByPlanID(ctx *gin.Context)
	IndustryData(ctx *gin.Context)
	RecordAction(ctx *gin.Context)
}

type evaluationHandler struct {
	evaluationService analyses.EvaluationService
}

// NewEvaluationHandler creates a new EvaluationHandler
func NewEvaluationHandler(evaluationService analyses.EvaluationService) EvaluationHandler {
	return &evaluationHandler{
		evaluationService: evaluationService,
	}
}

// Save persists a completed evaluation for the plan named by plan_id
func (handler *evaluationHandler) Save(ctx *gin.Context) {
	planID, ok := queryIntParam(ctx, "plan_id")
	if !ok {
		return
	}

	var report analyses.EvaluationReport
	if err := ctx.ShouldBindJSON(&report); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid evaluation report")
		return
	}

	saved, err := handler.evaluationService.Save(ctx, planID, &report)
	if err != nil {
		if errors.Is(err, plans.ErrNotFound) {
			respondError(ctx, http.StatusNotFound, fmt.Sprintf("file with id %d not found", planID))
			return
		}
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	ctx.JSON(http.StatusCreated, SavedEvaluationResponse{
		AnalysisJobID:    saved.AnalysisJobID,
		AnalysisResultID: saved.AnalysisResultID,
		TotalScore:       saved.TotalScore,
	})
}

// GetByJobID returns the overall result for a job
func (handler *evaluationHandler) GetByJobID(ctx *gin.Context) {
	jobID, err := strconv.Atoi(ctx.Param("jobId"))
	if err != nil || jobID < 1 {
		respondError(ctx, http.StatusBadRequest, "invalid job id")
		return
	}

	result, err := handler.evaluationService.GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, analyses.ErrJobNotFound) || errors.Is(err, analyses.ErrResultNotFound) {
			respondError(ctx, http.StatusNotFound, fmt.Sprintf("no result for job %d", jobID))
			return
		}
		respondError(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, toResultResponse(result))
}

// GetLatestByPlanID returns the result behind the plan's latest job
func (handler *evaluationHandler) GetLatestByPlanID(ctx *gin.Context) {
	planID, err := strconv.Atoi(ctx.Param("planId"))
	if err != nil || planID < 1 {
		respondError(ctx, http.StatusBadRequest, "invalid file id")
		return
	}

	result, err := handler.evaluationService.GetLatestByPlanID(ctx, planID)
	if err != nil {
		if isNotFound(err) {
			respondError(ctx, http.StatusNotFound, fmt.Sprintf("no evaluation for file %d", planID))
			return
		}
		respondError(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, toResultResponse(result))
}

// IndustryData merges the latest job's industry and market sections
func (handler *evaluationHandler) IndustryData(ctx *gin.Context) {
	claims := ClaimsFromContext(ctx)

	planID, ok := queryIntParam(ctx, "file_id")
	if !ok {
		return
	}

	data, err := handler.evaluationService.IndustryData(ctx, planID, claims.Subject)
	if err != nil {
		if isNotFound(err) {
			respondError(ctx, http.StatusNotFound, fmt.Sprintf("no industry data for file %d", planID))
			return
		}
		respondError(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, data)
}

// RecordAction applies an action to the newest record of the plan's latest
// job. Only "delete" is supported.
func (handler *evaluationHandler) RecordAction(ctx *gin.Context) {
	claims := ClaimsFromContext(ctx)

	action := ctx.Param("action")
	if action != "delete" {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("unsupported action: %s", action))
		return
	}

	planID, ok := queryIntParam(ctx, "file_id")
	if !ok {
		return
	}

	if err := handler.evaluationService.DeleteLatestRecord(ctx, planID, claims.Subject); err != nil {
		if isNotFound(err) {
			respondError(ctx, http.StatusNotFound, fmt.Sprintf("no record to delete for file %d", planID))
			return
		}
		respondError(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	message := fmt.Sprintf("deleted latest record of file %d", planID)
	ctx.JSON(http.StatusOK, InfoResponse{Message: &message})
}

func isNotFound(err error) bool {
	return errors.Is(err, plans.ErrNotFound) ||
		errors.Is(err, analyses.ErrJobNotFound) ||
		errors.Is(err, analyses.ErrResultNotFound) ||
		errors.Is(err, analyses.ErrNoAnalysis)
}

// queryIntParam parses a required positive integer query parameter.
func queryIntParam(ctx *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(ctx.Query(name))
	if err != nil || value < 1 {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("%s must be a positive integer", name))
		return 0, false
	}
	return value, true
}
