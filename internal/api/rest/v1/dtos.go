package v1

import (
	"time"

	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/domain/plans"
	"github.com/BizLenz/api/internal/domain/users"
)

// ErrorResponse is the JSON body for failed requests
type ErrorResponse struct {
	Message *string `json:"message,omitempty"`
}

// InfoResponse is the JSON body for informational responses
type InfoResponse struct {
	Message *string `json:"message,omitempty"`
}

// UploadRequestDTO describes the file a client wants to upload.
type UploadRequestDTO struct {
	FileName string `json:"file_name" binding:"required"`
	MimeType string `json:"mime_type" binding:"required"`
	FileSize int64  `json:"file_size" binding:"required"`
}

// UploadTicketResponse carries the presigned PUT URL back to the client.
type UploadTicketResponse struct {
	FileName     string    `json:"file_name"`
	ObjectKey    string    `json:"s3_key"`
	PresignedURL string    `json:"presigned_url"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// UploadMetadataDTO is the client's report of a finished upload.
type UploadMetadataDTO struct {
	FileName  string `json:"file_name" binding:"required"`
	ObjectKey string `json:"s3_key" binding:"required"`
	FileURL   string `json:"file_url" binding:"required"`
	FileSize  int64  `json:"file_size" binding:"required"`
	MimeType  string `json:"mime_type" binding:"required"`
}

// PlanResponse is the JSON view of a business plan.
type PlanResponse struct {
	ID          int       `json:"id"`
	UserID      string    `json:"user_id"`
	FileName    string    `json:"file_name"`
	FilePath    string    `json:"file_path"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	Status      string    `json:"status"`
	LatestJobID *int      `json:"latest_job_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toPlanResponse(plan *plans.BusinessPlan) PlanResponse {
	return PlanResponse{
		ID:          plan.ID,
		UserID:      plan.UserID,
		FileName:    plan.FileName,
		FilePath:    plan.FilePath,
		FileSize:    plan.FileSize,
		MimeType:    plan.MimeType,
		Status:      plan.Status,
		LatestJobID: plan.LatestJobID,
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
}

// DownloadTicketResponse carries the presigned GET URL back to the client.
type DownloadTicketResponse struct {
	PlanID       int       `json:"file_id"`
	FileName     string    `json:"file_name"`
	PresignedURL string    `json:"presigned_url"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SavedEvaluationResponse reports the rows created by saving an evaluation.
type SavedEvaluationResponse struct {
	AnalysisJobID    int     `json:"analysis_job_id"`
	AnalysisResultID int     `json:"analysis_result_id"`
	TotalScore       float64 `json:"total_score"`
}

// ResultResponse is the JSON view of an analysis result.
type ResultResponse struct {
	ID               int                    `json:"id"`
	AnalysisJobID    int                    `json:"analysis_job_id"`
	EvaluationType   string                 `json:"evaluation_type"`
	Score            *float64               `json:"score,omitempty"`
	Grade            string                 `json:"grade,omitempty"`
	Title            string                 `json:"title,omitempty"`
	Summary          string                 `json:"summary,omitempty"`
	DetailedFeedback string                 `json:"detailed_feedback,omitempty"`
	Strengths        []string               `json:"strengths,omitempty"`
	Weaknesses       []string               `json:"weaknesses,omitempty"`
	Recommendations  []string               `json:"recommendations,omitempty"`
	Sources          []string               `json:"sources,omitempty"`
	Details          map[string]interface{} `json:"details,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
}

func toResultResponse(result *analyses.AnalysisResult) ResultResponse {
	return ResultResponse{
		ID:               result.ID,
		AnalysisJobID:    result.AnalysisJobID,
		EvaluationType:   result.EvaluationType,
		Score:            result.Score,
		Grade:            result.Grade,
		Title:            result.Title,
		Summary:          result.Summary,
		DetailedFeedback: result.DetailedFeedback,
		Strengths:        result.Strengths,
		Weaknesses:       result.Weaknesses,
		Recommendations:  result.Recommendations,
		Sources:          result.Sources,
		Details:          result.Details,
		CreatedAt:        result.CreatedAt,
	}
}

// SignUpDTO is the registration request body.
type SignUpDTO struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// ConfirmSignUpDTO confirms a registration with the emailed code.
type ConfirmSignUpDTO struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// SignInDTO is the authentication request body.
type SignInDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignInResponse returns either tokens or the pending challenge.
type SignInResponse struct {
	AccessToken         string            `json:"access_token,omitempty"`
	IDToken             string            `json:"id_token,omitempty"`
	RefreshToken        string            `json:"refresh_token,omitempty"`
	ExpiresIn           int32             `json:"expires_in,omitempty"`
	TokenType           string            `json:"token_type,omitempty"`
	ChallengeName       string            `json:"challenge_name,omitempty"`
	Session             string            `json:"session,omitempty"`
	ChallengeParameters map[string]string `json:"challenge_parameters,omitempty"`
}

// ForgotPasswordDTO starts a password reset.
type ForgotPasswordDTO struct {
	Username string `json:"username" binding:"required"`
}

// ConfirmForgotPasswordDTO completes a password reset.
type ConfirmForgotPasswordDTO struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
	NewPassword      string `json:"new_password" binding:"required"`
}

// ProfileDTO carries the mutable profile fields.
type ProfileDTO struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// UserResponse is the JSON view of a user profile.
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username,omitempty"`
	Email       string    `json:"email,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toUserResponse(user *users.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// HealthResponse is the healthz body.
type HealthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
}
