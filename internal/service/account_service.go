package service

import (
	"context"
	"fmt"
	"log"

	"focustrainer/internal/models"
	"focustrainer/internal/repository"
	"focustrainer/internal/security"
	"focustrainer/internal/validation"
)

// Sign-up result messages. The UI renders these verbatim, so they stay
// stable and human-readable.
const (
	msgSignUpSuccess  = "Sign up success"
	msgNoPermission   = "You do not have permission to perform this action"
	msgInvalidInfo    = "Invalid information"
	msgGenericFailure = "An error occurred"
	msgUsernameTaken  = "Username already taken"
)

// UserCreator is the collaborator the sign-up orchestrator delegates account
// creation to. *repository.UserRepository satisfies it.
type UserCreator interface {
	CreateUser(params repository.CreateUserParams) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
}

// SignUpData is the registration payload as submitted by the sign-up form
type SignUpData struct {
	Role           string
	Email          string
	ParentUsername string
	FullName       string
	Username       string
	Password       string
}

// SignUpResult carries exactly one of a success or an error message back to
// the UI. No error value ever crosses this boundary.
type SignUpResult struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AccountService orchestrates account creation
type AccountService struct {
	users UserCreator
	email *EmailService
}

// NewAccountService creates a new account service. email may be nil when no
// mailer is configured.
func NewAccountService(users UserCreator, email *EmailService) *AccountService {
	return &AccountService{users: users, email: email}
}

// SignUp runs three sequential gates, short-circuiting on the first failure:
// the caller must be an admin, the payload must validate, and the creation
// collaborator must return an account. Every failure maps to a display
// string; unexpected errors fall back to their message, and even a panic is
// converted rather than re-raised.
func (s *AccountService) SignUp(ctx context.Context, actor *models.User, data SignUpData) (result SignUpResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("sign-up panic recovered: %v", r)
			result = SignUpResult{Error: msgGenericFailure}
		}
	}()

	if actor == nil || !actor.IsAdmin() {
		return SignUpResult{Error: msgNoPermission}
	}

	if err := validation.ValidateSignUp(validation.SignUpInput(data)); err != nil {
		return SignUpResult{Error: msgInvalidInfo}
	}

	existing, err := s.users.GetUserByUsername(data.Username)
	if err != nil {
		return SignUpResult{Error: err.Error()}
	}
	if existing != nil {
		return SignUpResult{Error: msgUsernameTaken}
	}

	passwordHash, err := security.HashPassword(data.Password)
	if err != nil {
		return SignUpResult{Error: fmt.Sprintf("failed to hash password: %v", err)}
	}

	user, err := s.users.CreateUser(normalize(data, passwordHash))
	if err != nil {
		return SignUpResult{Error: err.Error()}
	}
	if user == nil {
		return SignUpResult{Error: msgGenericFailure}
	}

	// Best effort; a failed welcome email never fails the sign-up
	if s.email != nil && user.Email != nil {
		if err := s.email.SendWelcomeEmail(ctx, *user.Email, user.FullName, user.Username); err != nil {
			log.Printf("failed to send welcome email to user %d: %v", user.ID, err)
		}
	}

	return SignUpResult{Success: msgSignUpSuccess}
}

// normalize maps the validated payload onto creation params, keeping each
// role-conditional field only for the role it belongs to: email for parents,
// parent username for children, neither for admins.
func normalize(data SignUpData, passwordHash string) repository.CreateUserParams {
	params := repository.CreateUserParams{
		Role:         models.Role(data.Role),
		Username:     data.Username,
		FullName:     data.FullName,
		PasswordHash: passwordHash,
	}

	switch params.Role {
	case models.RoleParent:
		if data.Email != "" {
			email := data.Email
			params.Email = &email
		}
	case models.RoleChild:
		if data.ParentUsername != "" {
			parent := data.ParentUsername
			params.ParentUsername = &parent
		}
	}

	return params
}
