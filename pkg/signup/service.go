package signup

import (
	"context"
	"log/slog"

	"github.com/tendant/simple-lifecycle/pkg/identity"
	"github.com/tendant/simple-lifecycle/pkg/profile"
)

// ConfirmationMessage is returned to the caller after a successful registration
const ConfirmationMessage = "Registration successful. Please check your email to verify your account."

// RegistrationService handles user registration business logic
type RegistrationService struct {
	provider identity.Provider
	profiles profile.ProfileRepository
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(provider identity.Provider, profiles profile.ProfileRepository) *RegistrationService {
	return &RegistrationService{
		provider: provider,
		profiles: profiles,
	}
}

// RegisterRequest represents a user registration request. Role flags
// default to false and are independent of each other.
type RegisterRequest struct {
	Email     string
	Password  string
	Name      string
	IsStudent bool
	IsAdmin   bool
	IsTester  bool
}

// RegisterResult represents the result of a successful registration
type RegisterResult struct {
	Account identity.Account
	Profile profile.Profile
	Message string
}

// SignupError represents a registration-specific error
type SignupError struct {
	Code    string
	Message string
	Err     error
}

func (e *SignupError) Error() string {
	return e.Message
}

func (e *SignupError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeInvalidRequest       = "INVALID_REQUEST"
	ErrCodeIdentityCreateFailed = "IDENTITY_CREATE_FAILED"
	ErrCodeProfileWriteFailed   = "PROFILE_WRITE_FAILED"
)

// Register creates an identity account with email confirmation required,
// then the matching profile row. The two-step write is not atomic across
// the pair: if the profile insert fails, the just-created account is
// deleted so no half-registered state survives. Compensation is best
// effort; its own failure is logged, not surfaced, and the storage error
// is returned instead.
func (s *RegistrationService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, &SignupError{
			Code:    ErrCodeInvalidRequest,
			Message: "Email, password, and name are required",
		}
	}

	account, err := s.provider.CreateAccount(ctx, identity.CreateAccountParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		slog.Error("Failed to create identity account", "email", req.Email, "error", err)
		return nil, &SignupError{
			Code:    ErrCodeIdentityCreateFailed,
			Message: identity.Message(err),
			Err:     err,
		}
	}

	prof, err := s.profiles.CreateProfile(ctx, profile.CreateProfileParams{
		ID:        account.ID,
		Email:     req.Email,
		Name:      req.Name,
		IsStudent: req.IsStudent,
		IsAdmin:   req.IsAdmin,
		IsTester:  req.IsTester,
	})
	if err != nil {
		slog.Error("Failed to create profile, compensating", "account_id", account.ID, "error", err)
		if delErr := s.provider.DeleteAccount(ctx, account.ID); delErr != nil {
			// The account survives until the cleanup job reaps it. A retry
			// with the same email may collide in the meantime.
			slog.Error("Compensating account deletion failed", "account_id", account.ID, "error", delErr)
		}
		return nil, &SignupError{
			Code:    ErrCodeProfileWriteFailed,
			Message: "Failed to register user",
			Err:     err,
		}
	}

	slog.Info("User registered", "account_id", account.ID, "email", account.Email)
	return &RegisterResult{
		Account: account,
		Profile: prof,
		Message: ConfirmationMessage,
	}, nil
}
