package identity

import (
	"errors"
	"fmt"
)

var (
	// ErrAccountNotFound is returned when the provider has no account with the given id
	ErrAccountNotFound = errors.New("identity account not found")

	// ErrEmailTaken is returned when creating an account with an email that already exists
	ErrEmailTaken = errors.New("email address already registered")

	// ErrInvalidTokenPair is returned when a session exchange is rejected by the provider
	ErrInvalidTokenPair = errors.New("invalid or expired token pair")
)

// ProviderError carries the HTTP status and message returned by the
// identity provider when a call fails.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("identity provider returned status %d", e.Status)
	}
	return e.Message
}

// Message extracts a human-readable message from a provider call error.
// Falls back to the error's own text when no provider message is present.
func Message(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	return err.Error()
}
