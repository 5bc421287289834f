package verification

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// Handle exposes the verification service over HTTP. Every response is a
// structured result with either a data field or an error field, never
// both and never neither; no failure escapes these handlers.
type Handle struct {
	service *VerificationService
}

// NewHandle creates a new verification handler
func NewHandle(service *VerificationService) *Handle {
	return &Handle{service: service}
}

// Resend handles POST /resend
func (h *Handle) Resend(w http.ResponseWriter, r *http.Request) {
	var params ResendParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		message := "Invalid request body"
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ResendResponse{Error: &message})
		return
	}

	if err := h.service.Resend(r.Context(), params.Email); err != nil {
		message := err.Error()
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ResendResponse{Error: &message})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ResendResponse{
		Data: &MessageData{Message: "Verification email sent. Please check your inbox."},
	})
}

// Verify handles POST /verify
func (h *Handle) Verify(w http.ResponseWriter, r *http.Request) {
	var params VerifyParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		message := "Invalid request body"
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, VerifyResponse{Error: &message})
		return
	}

	session, err := h.service.Verify(r.Context(), params.AccessToken, params.RefreshToken)
	if err != nil {
		message := err.Error()
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, VerifyResponse{Error: &message})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, VerifyResponse{
		Data: &SessionData{Session: session},
	})
}
