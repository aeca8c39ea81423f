package v1

import (
	"github.com/BizLenz/api/internal/app"
	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/domain/auth"
	"github.com/BizLenz/api/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	verifier auth.TokenVerifier,
	planUploadService plans.PlanUploadService,
	planMetadataService plans.PlanMetadataService,
	planDownloadService plans.PlanDownloadService,
	evaluationService analyses.EvaluationService,
	authService app.AuthService,
	profileService app.UserProfileService) {

	healthHandler := NewHealthHandler()
	r.GET("/healthz", healthHandler.Healthz)

	r.Use(Authentication(verifier))

	v1 := r.Group(BasePath)

	// File routes
	planHandler := NewPlanHandler(planUploadService, planMetadataService, planDownloadService)
	files := v1.Group("/files")
	files.POST("/upload", RequireScope(ScopeWrite), planHandler.IssueUploadURL)
	files.POST("/upload/metadata", RequireScope(ScopeWrite), planHandler.SaveMetadata)
	files.GET("/search", RequireScope(ScopeRead), planHandler.Search)
	files.GET("/:id/download", RequireScope(ScopeRead), planHandler.Download)
	files.DELETE("/:id", RequireScope(ScopeWrite), planHandler.DeleteByID)
	files.GET("/admin/all", RequireAdmin(), planHandler.AdminListAll)
	files.GET("/admin/search", RequireAdmin(), planHandler.AdminSearch)

	// Evaluation routes
	evaluationHandler := NewEvaluationHandler(evaluationService)
	evaluations := v1.Group("/evaluations")
	evaluations.POST("/save", RequireScope(ScopeWrite), evaluationHandler.Save)
	evaluations.GET("/latest/:planId", RequireScope(ScopeRead), evaluationHandler.GetLatestByPlanID)
	evaluations.GET("/:jobId", RequireScope(ScopeRead), evaluationHandler.GetByJobID)

	analysis := v1.Group("/analysis")
	analysis.GET("/industry-data", RequireScope(ScopeRead), evaluationHandler.IndustryData)
	analysis.POST("/records/:action", RequireScope(ScopeWrite), evaluationHandler.RecordAction)

	// User routes
	userHandler := NewUserHandler(authService, profileService)
	users := v1.Group("/users")
	users.POST("/signup", userHandler.SignUp)
	users.POST("/signup/confirm", userHandler.ConfirmSignUp)
	users.POST("/signin", userHandler.SignIn)
	users.POST("/password/forgot", userHandler.ForgotPassword)
	users.POST("/password/confirm", userHandler.ConfirmForgotPassword)
	users.GET("/me", RequireScope(ScopeRead), userHandler.Profile)
	users.PUT("/me", RequireScope(ScopeWrite), userHandler.UpdateProfile)
}
