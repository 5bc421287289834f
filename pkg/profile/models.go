package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the application-owned row describing a user's roles and
// display data. Its id equals the identity account id (1:1); the two are
// created and destroyed as a unit.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsStudent bool      `json:"is_student"`
	IsAdmin   bool      `json:"is_admin"`
	IsTester  bool      `json:"is_tester"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProfileParams contains the fields for creating a profile. ID is the
// provider-issued identity account id.
type CreateProfileParams struct {
	ID        uuid.UUID
	Email     string
	Name      string
	IsStudent bool
	IsAdmin   bool
	IsTester  bool
}
