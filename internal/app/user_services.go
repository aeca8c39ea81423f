package app

import (
	"context"
	"fmt"

	"github.com/BizLenz/api/internal/domain/users"
	"github.com/BizLenz/api/internal/pkg/logger"
)

// UserProfileService exposes profile reads and updates for the signed-in
// subject.
type UserProfileService interface {
	// Profile returns the subject's profile, provisioning an empty one on
	// first contact.
	Profile(ctx context.Context, userID string) (*users.User, error)

	// UpdateProfile replaces the mutable profile fields.
	UpdateProfile(ctx context.Context, user *users.User) (*users.User, error)
}

type userProfileService struct {
	userRepository users.UserRepository
	logger         logger.Logger
}

// NewUserProfileService creates a new instance of UserProfileService
func NewUserProfileService(userRepository users.UserRepository, logger logger.Logger) (UserProfileService, error) {
	return &userProfileService{
		userRepository: userRepository,
		logger:         logger,
	}, nil
}

func (s *userProfileService) Profile(ctx context.Context, userID string) (*users.User, error) {
	return s.userRepository.GetOrCreate(ctx, userID)
}

func (s *userProfileService) UpdateProfile(ctx context.Context, user *users.User) (*users.User, error) {
	current, err := s.userRepository.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	current.Username = user.Username
	current.Email = user.Email
	current.Address = user.Address
	if user.PhoneNumber != "" {
		normalized, err := users.ToE164(user.PhoneNumber, "+82")
		if err != nil {
			return nil, fmt.Errorf("invalid phone number: %w", err)
		}
		current.PhoneNumber = normalized
	} else {
		current.PhoneNumber = ""
	}

	if err := s.userRepository.UpdateByID(ctx, current); err != nil {
		return nil, err
	}

	s.logger.Info("Updated profile for user ", current.ID)
	return current, nil
}

// AuthService drives the registration and sign-in flows against the
// identity provider.
type AuthService interface {
	SignUp(ctx context.Context, in users.SignUpInput) (*users.SignUpResult, error)
	ConfirmSignUp(ctx context.Context, username, confirmationCode string) error
	SignIn(ctx context.Context, username, password string) (*users.SignInResult, error)
	ForgotPassword(ctx context.Context, username string) (*users.CodeDelivery, error)
	ConfirmForgotPassword(ctx context.Context, username, confirmationCode, newPassword string) error
}

type authService struct {
	provider users.IdentityProvider
	logger   logger.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(provider users.IdentityProvider, logger logger.Logger) (AuthService, error) {
	return &authService{
		provider: provider,
		logger:   logger,
	}, nil
}

func (s *authService) SignUp(ctx context.Context, in users.SignUpInput) (*users.SignUpResult, error) {
	if in.PhoneNumber != "" {
		normalized, err := users.ToE164(in.PhoneNumber, "+82")
		if err != nil {
			return nil, fmt.Errorf("invalid phone number: %w", err)
		}
		in.PhoneNumber = normalized
	}

	result, err := s.provider.SignUp(ctx, in)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Registration started for user ", in.Username)
	return result, nil
}

func (s *authService) ConfirmSignUp(ctx context.Context, username, confirmationCode string) error {
	return s.provider.ConfirmSignUp(ctx, username, confirmationCode)
}

func (s *authService) SignIn(ctx context.Context, username, password string) (*users.SignInResult, error) {
	return s.provider.SignIn(ctx, username, password)
}

func (s *authService) ForgotPassword(ctx context.Context, username string) (*users.CodeDelivery, error) {
	return s.provider.ForgotPassword(ctx, username)
}

func (s *authService) ConfirmForgotPassword(ctx context.Context, username, confirmationCode, newPassword string) error {
	return s.provider.ConfirmForgotPassword(ctx, username, confirmationCode, newPassword)
}
