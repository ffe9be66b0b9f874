// Package validation checks user-submitted registration data before it
// reaches account creation.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"focustrainer/internal/models"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.\-]+$`)
)

// Error represents a validation error on a single field
type Error struct {
	Field   string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SignUpInput is the raw registration payload as submitted by the form.
// Email and parent username are only meaningful for some roles; the
// orchestrator normalizes them after validation.
type SignUpInput struct {
	Role           string
	Email          string
	ParentUsername string
	FullName       string
	Username       string
	Password       string
}

// ValidateSignUp checks a full registration payload. It returns the first
// field error found, or nil if the payload is well formed.
func ValidateSignUp(in SignUpInput) error {
	if err := ValidateRole(in.Role); err != nil {
		return err
	}
	if in.Email != "" {
		if err := ValidateEmail(in.Email); err != nil {
			return err
		}
	}
	if in.ParentUsername != "" {
		if err := validateUsernameField("parentUsername", in.ParentUsername); err != nil {
			return err
		}
	}
	if err := ValidateFullName(in.FullName); err != nil {
		return err
	}
	if err := ValidateUsername(in.Username); err != nil {
		return err
	}
	if err := ValidatePassword(in.Password); err != nil {
		return err
	}
	return nil
}

// ValidateRole checks that a role is one of the known account roles
func ValidateRole(role string) error {
	if !models.Role(role).Valid() {
		return Error{Field: "role", Message: "role must be child, parent or admin"}
	}
	return nil
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return Error{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return Error{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateFullName checks if a display name is valid
func ValidateFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return Error{Field: "fullName", Message: "full name is required"}
	}
	if len(name) < 2 {
		return Error{Field: "fullName", Message: "full name must be at least 2 characters"}
	}
	return nil
}

// ValidateUsername checks if a username is valid
func ValidateUsername(username string) error {
	return validateUsernameField("username", username)
}

func validateUsernameField(field, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return Error{Field: field, Message: "username is required"}
	}
	if len(username) < 3 {
		return Error{Field: field, Message: "username must be at least 3 characters"}
	}
	if !usernameRegex.MatchString(username) {
		return Error{Field: field, Message: "username may only contain letters, digits, dot, dash and underscore"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return Error{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return Error{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}
