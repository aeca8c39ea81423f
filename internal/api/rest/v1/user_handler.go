package v1

import (
	"net/http"

	"github.com/BizLenz/api/internal/app"
	"github.com/BizLenz/api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// UserHandler defines the interface for profile and authentication routes
type UserHandler interface {
	SignUp(ctx *gin.Context)
	ConfirmSignUp(ctx *gin.Context)
	SignIn(ctx *gin.Context)
	ForgotPassword(ctx *gin.Context)
	ConfirmForgotPassword(ctx *gin.Context)
	Profile(ctx *gin.Context)
	UpdateProfile(ctx *gin.Context)
}

type userHandler struct {
	authService    app.AuthService
	profileService app.UserProfileService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService app.AuthService, profileService app.UserProfileService) UserHandler {
	return &userHandler{
		authService:    authService,
		profileService: profileService,
	}
}

// SignUp registers a user with the identity provider
func (handler *userHandler) SignUp(ctx *gin.Context) {
	var dto SignUpDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := handler.authService.SignUp(ctx, users.SignUpInput{
		Username:    dto.Username,
		Password:    dto.Password,
		Email:       dto.Email,
		PhoneNumber: dto.PhoneNumber,
		Address:     dto.Address,
	})
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"user_confirmed": result.UserConfirmed,
		"user_sub":       result.UserSub,
		"destination":    result.Destination,
		"medium":         result.Medium,
	})
}

// ConfirmSignUp completes a registration with the emailed code
func (handler *userHandler) ConfirmSignUp(ctx *gin.Context) {
	var dto ConfirmSignUpDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := handler.authService.ConfirmSignUp(ctx, dto.Username, dto.ConfirmationCode); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	message := "registration confirmed"
	ctx.JSON(http.StatusOK, InfoResponse{Message: &message})
}

// SignIn starts a username/password authentication flow
func (handler *userHandler) SignIn(ctx *gin.Context) {
	var dto SignInDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := handler.authService.SignIn(ctx, dto.Username, dto.Password)
	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "authentication failed")
		return
	}

	ctx.JSON(http.StatusOK, SignInResponse{
		AccessToken:         result.AccessToken,
		IDToken:             result.IDToken,
		RefreshToken:        result.RefreshToken,
		ExpiresIn:           result.ExpiresIn,
		TokenType:           result.TokenType,
		ChallengeName:       result.ChallengeName,
		Session:             result.Session,
		ChallengeParameters: result.ChallengeParameters,
	})
}

// ForgotPassword sends a password-reset code
func (handler *userHandler) ForgotPassword(ctx *gin.Context) {
	var dto ForgotPasswordDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid request body")
		return
	}

	delivery, err := handler.authService.ForgotPassword(ctx, dto.Username)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"destination": delivery.Destination,
		"medium":      delivery.Medium,
	})
}

// ConfirmForgotPassword sets a new password using the reset code
func (handler *userHandler) ConfirmForgotPassword(ctx *gin.Context) {
	var dto ConfirmForgotPasswordDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := handler.authService.ConfirmForgotPassword(ctx, dto.Username, dto.ConfirmationCode, dto.NewPassword); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	message := "password updated"
	ctx.JSON(http.StatusOK, InfoResponse{Message: &message})
}

// Profile returns the caller's profile, provisioning one on first contact
func (handler *userHandler) Profile(ctx *gin.Context) {
	claims := ClaimsFromContext(ctx)

	user, err := handler.profileService.Profile(ctx, claims.Subject)
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateProfile replaces the caller's mutable profile fields
func (handler *userHandler) UpdateProfile(ctx *gin.Context) {
	claims := ClaimsFromContext(ctx)

	var dto ProfileDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := handler.profileService.UpdateProfile(ctx, &users.User{
		ID:          claims.Subject,
		Username:    dto.Username,
		Email:       dto.Email,
		PhoneNumber: dto.PhoneNumber,
		Address:     dto.Address,
	})
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, toUserResponse(user))
}
