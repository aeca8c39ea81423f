package connector

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/BizLenz/api/internal/domain/users"
	appconfig "github.com/BizLenz/api/internal/pkg/config"
	"github.com/BizLenz/api/internal/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

type cognitoConnector struct {
	client   *cognitoidentityprovider.Client
	settings *appconfig.CognitoSettings
	logger   logger.Logger
}

// NewCognitoConnector creates an IdentityProvider backed by a Cognito user
// pool app client.
func NewCognitoConnector(ctx context.Context, settings *appconfig.CognitoSettings, logger logger.Logger) (users.IdentityProvider, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(settings.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &cognitoConnector{
		client:   cognitoidentityprovider.NewFromConfig(cfg),
		settings: settings,
		logger:   logger,
	}, nil
}

// secretHash computes the hash confidential app clients must send with every
// request: Base64(HMAC-SHA256(client_secret, username + client_id)).
func (c *cognitoConnector) secretHash(username string) *string {
	if c.settings.ClientSecret == "" {
		return nil
	}

	mac := hmac.New(sha256.New, []byte(c.settings.ClientSecret))
	mac.Write([]byte(username + c.settings.ClientID))
	hash := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return &hash
}

func (c *cognitoConnector) SignUp(ctx context.Context, in users.SignUpInput) (*users.SignUpResult, error) {
	var attributes []types.AttributeType
	if in.Email != "" {
		attributes = append(attributes, types.AttributeType{
			Name:  aws.String("email"),
			Value: aws.String(in.Email),
		})
	}
	if in.PhoneNumber != "" {
		attributes = append(attributes, types.AttributeType{
			Name:  aws.String("phone_number"),
			Value: aws.String(in.PhoneNumber),
		})
	}
	if in.Address != "" {
		attributes = append(attributes, types.AttributeType{
			Name:  aws.String("address"),
			Value: aws.String(in.Address),
		})
	}

	out, err := c.client.SignUp(ctx, &cognitoidentityprovider.SignUpInput{
		ClientId:       aws.String(c.settings.ClientID),
		SecretHash:     c.secretHash(in.Username),
		Username:       aws.String(in.Username),
		Password:       aws.String(in.Password),
		UserAttributes: attributes,
	})
	if err != nil {
		return nil, fmt.Errorf("sign-up failed: %w", err)
	}

	result := &users.SignUpResult{
		UserConfirmed: out.UserConfirmed,
		UserSub:       aws.ToString(out.UserSub),
	}
	if out.CodeDeliveryDetails != nil {
		result.Destination = aws.ToString(out.CodeDeliveryDetails.Destination)
		result.Medium = string(out.CodeDeliveryDetails.DeliveryMedium)
		result.AttributeName = aws.ToString(out.CodeDeliveryDetails.AttributeName)
	}

	c.logger.Info("Registered user ", in.Username)
	return result, nil
}

func (c *cognitoConnector) ConfirmSignUp(ctx context.Context, username, confirmationCode string) error {
	_, err := c.client.ConfirmSignUp(ctx, &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(c.settings.ClientID),
		SecretHash:       c.secretHash(username),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(confirmationCode),
	})
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}

	c.logger.Info("Confirmed registration for user ", username)
	return nil
}

func (c *cognitoConnector) SignIn(ctx context.Context, username, password string) (*users.SignInResult, error) {
	authParams := map[string]string{
		"USERNAME": username,
		"PASSWORD": password,
	}
	if hash := c.secretHash(username); hash != nil {
		authParams["SECRET_HASH"] = *hash
	}

	out, err := c.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		ClientId:       aws.String(c.settings.ClientID),
		AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: authParams,
	})
	if err != nil {
		return nil, fmt.Errorf("sign-in failed: %w", err)
	}

	result := &users.SignInResult{}
	if out.AuthenticationResult != nil {
		result.AccessToken = aws.ToString(out.AuthenticationResult.AccessToken)
		result.IDToken = aws.ToString(out.AuthenticationResult.IdToken)
		result.RefreshToken = aws.ToString(out.AuthenticationResult.RefreshToken)
		result.ExpiresIn = out.AuthenticationResult.ExpiresIn
		result.TokenType = aws.ToString(out.AuthenticationResult.TokenType)
	} else {
		// The pool demands another step (MFA, new password) before tokens
		result.ChallengeName = string(out.ChallengeName)
		result.Session = aws.ToString(out.Session)
		result.ChallengeParameters = out.ChallengeParameters
	}

	c.logger.Info("Authenticated user ", username)
	return result, nil
}

func (c *cognitoConnector) ForgotPassword(ctx context.Context, username string) (*users.CodeDelivery, error) {
	out, err := c.client.ForgotPassword(ctx, &cognitoidentityprovider.ForgotPasswordInput{
		ClientId:   aws.String(c.settings.ClientID),
		SecretHash: c.secretHash(username),
		Username:   aws.String(username),
	})
	if err != nil {
		return nil, fmt.Errorf("password-reset request failed: %w", err)
	}

	delivery := &users.CodeDelivery{}
	if out.CodeDeliveryDetails != nil {
		delivery.Destination = aws.ToString(out.CodeDeliveryDetails.Destination)
		delivery.Medium = string(out.CodeDeliveryDetails.DeliveryMedium)
		delivery.AttributeName = aws.ToString(out.CodeDeliveryDetails.AttributeName)
	}

	c.logger.Info("Sent password-reset code to user ", username)
	return delivery, nil
}

func (c *cognitoConnector) ConfirmForgotPassword(ctx context.Context, username, confirmationCode, newPassword string) error {
	_, err := c.client.ConfirmForgotPassword(ctx, &cognitoidentityprovider.ConfirmForgotPasswordInput{
		ClientId:         aws.String(c.settings.ClientID),
		SecretHash:       c.secretHash(username),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(confirmationCode),
		Password:         aws.String(newPassword),
	})
	if err != nil {
		return fmt.Errorf("password reset failed: %w", err)
	}

	c.logger.Info("Reset password for user ", username)
	return nil
}
