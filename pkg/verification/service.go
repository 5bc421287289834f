package verification

import (
	"context"
	"log/slog"

	"github.com/tendant/simple-lifecycle/pkg/identity"
)

// VerificationService handles the two verification flows: resending the
// verification email and exchanging an emailed token pair for a session.
// It holds no local state; both operations are pass-throughs to the
// identity provider with error translation at this boundary.
type VerificationService struct {
	provider identity.Provider
}

// NewVerificationService creates a new VerificationService
func NewVerificationService(provider identity.Provider) *VerificationService {
	return &VerificationService{provider: provider}
}

// ResendError is returned when re-triggering the verification email fails.
// Message preserves the provider's text when one was given.
type ResendError struct {
	Message string
	Err     error
}

func (e *ResendError) Error() string {
	return e.Message
}

func (e *ResendError) Unwrap() error {
	return e.Err
}

// ExchangeError is returned when the token exchange fails
type ExchangeError struct {
	Message string
	Err     error
}

func (e *ExchangeError) Error() string {
	return e.Message
}

func (e *ExchangeError) Unwrap() error {
	return e.Err
}

const (
	genericResendMessage   = "Failed to send verification email"
	genericExchangeMessage = "Failed to verify email"
)

// Resend re-triggers the verification email for the given address
func (s *VerificationService) Resend(ctx context.Context, email string) error {
	if email == "" {
		return &ResendError{Message: "Email is required"}
	}

	if err := s.provider.ResendVerification(ctx, email); err != nil {
		slog.Error("Failed to resend verification email", "email", email, "error", err)
		message := identity.Message(err)
		if message == "" {
			message = genericResendMessage
		}
		return &ResendError{Message: message, Err: err}
	}

	return nil
}

// Verify exchanges a token pair for an authenticated session. The session
// is returned opaquely; its contents are not interpreted here.
func (s *VerificationService) Verify(ctx context.Context, accessToken, refreshToken string) (identity.Session, error) {
	if accessToken == "" || refreshToken == "" {
		return identity.Session{}, &ExchangeError{Message: "Access token and refresh token are required"}
	}

	session, err := s.provider.ExchangeSession(ctx, accessToken, refreshToken)
	if err != nil {
		slog.Error("Failed to exchange token pair", "error", err)
		message := identity.Message(err)
		if message == "" {
			message = genericExchangeMessage
		}
		return identity.Session{}, &ExchangeError{Message: message, Err: err}
	}

	return session, nil
}
