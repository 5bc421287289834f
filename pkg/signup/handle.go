package signup

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/jinzhu/copier"
)

// Handle exposes the registration service over HTTP
type Handle struct {
	service *RegistrationService
}

// NewHandle creates a new registration handler
func NewHandle(service *RegistrationService) *Handle {
	return &Handle{service: service}
}

// Register handles POST /register. Responses carry a discriminated
// data/error shape: 200 with data on success, 400 with error otherwise.
func (h *Handle) Register(w http.ResponseWriter, r *http.Request) {
	var params RegisterParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		renderError(w, r, "Please check your registration information and try again")
		return
	}

	var req RegisterRequest
	copier.Copy(&req, &params)

	result, err := h.service.Register(r.Context(), req)
	if err != nil {
		renderError(w, r, err.Error())
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RegisterResponse{
		Data: &RegisterData{
			User: AccountPayload{
				ID:        result.Account.ID.String(),
				Email:     result.Account.Email,
				CreatedAt: result.Account.CreatedAt.Format(time.RFC3339),
			},
			Message: result.Message,
		},
	})
}

func renderError(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, RegisterResponse{Error: &message})
}
