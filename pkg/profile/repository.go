package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrProfileNotFound is returned when no profile exists for an id
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileExists is returned when creating a profile with an id that already has one
	ErrProfileExists = errors.New("profile already exists")
)

// ProfileRepository defines the persistence operations for profiles
type ProfileRepository interface {
	CreateProfile(ctx context.Context, params CreateProfileParams) (Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (Profile, error)
	DeleteProfile(ctx context.Context, id uuid.UUID) error
}
