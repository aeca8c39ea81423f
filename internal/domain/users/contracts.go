package users

import "context"

// UserRepository defines the interface for user-profile persistence
type UserRepository interface {
	// Create adds a new User to the database
	Create(ctx context.Context, user *User) error
	// GetByID retrieves a User from the database by ID (the token subject)
	GetByID(ctx context.Context, userID string) (*User, error)
	// GetOrCreate returns the profile for the given subject, provisioning an
	// empty one when it does not exist yet
	GetOrCreate(ctx context.Context, userID string) (*User, error)
	// UpdateByID updates a User in the database by ID
	UpdateByID(ctx context.Context, user *User) error
	// DeleteByID deletes a User in the database by ID
	DeleteByID(ctx context.Context, userID string) error
}

// SignUpInput carries the profile fields forwarded to the identity provider
// during registration.
type SignUpInput struct {
	Username    string `validate:"required,min=1,max=50"`
	Password    string `validate:"required,min=8"`
	Email       string `validate:"omitempty,email"`
	PhoneNumber string `validate:"omitempty"`
	Address     string `validate:"omitempty,max=500"`
}

// SignUpResult reports the outcome of a registration request, including how
// the confirmation code was delivered.
type SignUpResult struct {
	UserConfirmed bool
	UserSub       string
	Destination   string
	Medium        string
	AttributeName string
}

// SignInResult carries either the issued tokens or the challenge the caller
// must answer before tokens are released.
type SignInResult struct {
	AccessToken         string
	IDToken             string
	RefreshToken        string
	ExpiresIn           int32
	TokenType           string
	ChallengeName       string
	Session             string
	ChallengeParameters map[string]string
}

// CodeDelivery reports where a password-reset code was sent.
type CodeDelivery struct {
	Destination   string
	Medium        string
	AttributeName string
}

// IdentityProvider defines the operations delegated to the external user
// pool. Implementations handle provider-specific details such as the secret
// hash required by confidential app clients.
type IdentityProvider interface {
	// SignUp registers a new user with the provider.
	SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error)

	// ConfirmSignUp completes registration with the emailed confirmation code.
	ConfirmSignUp(ctx context.Context, username, confirmationCode string) error

	// SignIn starts a username/password authentication flow.
	SignIn(ctx context.Context, username, password string) (*SignInResult, error)

	// ForgotPassword sends a password-reset code to the user.
	ForgotPassword(ctx context.Context, username string) (*CodeDelivery, error)

	// ConfirmForgotPassword sets a new password using the reset code.
	ConfirmForgotPassword(ctx context.Context, username, confirmationCode, newPassword string) error
}
