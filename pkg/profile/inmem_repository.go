package profile

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemProfileRepository implements ProfileRepository using in-memory storage
type InMemProfileRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]Profile
}

// NewInMemProfileRepository creates a new in-memory profile repository
func NewInMemProfileRepository() *InMemProfileRepository {
	return &InMemProfileRepository{
		profiles: make(map[uuid.UUID]Profile),
	}
}

// CreateProfile creates a new profile
func (r *InMemProfileRepository) CreateProfile(ctx context.Context, params CreateProfileParams) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[params.ID]; ok {
		return Profile{}, ErrProfileExists
	}

	p := Profile{
		ID:        params.ID,
		Email:     params.Email,
		Name:      params.Name,
		IsStudent: params.IsStudent,
		IsAdmin:   params.IsAdmin,
		IsTester:  params.IsTester,
		CreatedAt: time.Now().UTC(),
	}
	r.profiles[p.ID] = p

	return p, nil
}

// GetProfile retrieves a profile by id
func (r *InMemProfileRepository) GetProfile(ctx context.Context, id uuid.UUID) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}

	return p, nil
}

// DeleteProfile removes a profile by id
func (r *InMemProfileRepository) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[id]; !ok {
		return ErrProfileNotFound
	}
	delete(r.profiles, id)

	return nil
}
