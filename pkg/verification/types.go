package verification

import "github.com/tendant/simple-lifecycle/pkg/identity"

// ResendParams is the JSON request body for resending the verification email
type ResendParams struct {
	Email string `json:"email"`
}

// VerifyParams is the JSON request body for the token exchange
type VerifyParams struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// MessageData carries the human-readable confirmation for a resend
type MessageData struct {
	Message string `json:"message"`
}

// SessionData carries the opaque session established by a verification
type SessionData struct {
	Session identity.Session `json:"session"`
}

// ResendResponse is the discriminated resend response: exactly one of
// Data and Error is present.
type ResendResponse struct {
	Data  *MessageData `json:"data,omitempty"`
	Error *string      `json:"error,omitempty"`
}

// VerifyResponse is the discriminated verify response
type VerifyResponse struct {
	Data  *SessionData `json:"data,omitempty"`
	Error *string      `json:"error,omitempty"`
}
