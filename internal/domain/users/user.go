package users

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// User entity. The ID is the subject claim issued by the identity provider;
// credentials are never stored locally.
type User struct {
	ID          string    `validate:"required,min=1,max=255"`
	Username    string    `validate:"omitempty,min=1,max=50"`
	Email       string    `validate:"omitempty,email,max=255"`
	PhoneNumber string    `validate:"omitempty,e164,max=20"`
	Address     string    `validate:"omitempty,max=500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate for validating User struct
func (u *User) Validate() error {
	validate := validator.New()

	err := validate.Struct(u)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// ToE164 normalizes a phone number to E.164. Separators are stripped,
// then numbers already carrying a + prefix are checked as-is; national
// numbers get their leading zeros stripped and the default country code
// prepended.
func ToE164(phone string, defaultCountryCode string) (string, error) {
	p := strings.TrimSpace(phone)
	for _, sep := range []string{" ", "-", "(", ")", "."} {
		p = strings.ReplaceAll(p, sep, "")
	}
	if strings.HasPrefix(p, "+") {
		if !e164Pattern.MatchString(p) {
			return "", fmt.Errorf("invalid E.164 format: %s", p)
		}
		return p, nil
	}

	p = strings.TrimLeft(p, "0")
	candidate := defaultCountryCode + p
	if !e164Pattern.MatchString(candidate) {
		return "", fmt.Errorf("invalid E.164 format: %s", candidate)
	}
	return candidate, nil
}
