package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-lifecycle/pkg/cleanup"
)

// Handler exposes a manual trigger for the cleanup job. The route is
// mounted behind a jwtauth verifier in cmd; this handler additionally
// requires an admin role claim.
type Handler struct {
	service *cleanup.CleanupService
}

// NewHandler creates a new cleanup API handler
func NewHandler(service *cleanup.CleanupService) *Handler {
	return &Handler{service: service}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// TriggerCleanup handles POST /cleanup
func (h *Handler) TriggerCleanup(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "Admin role required"})
		return
	}

	result := h.service.Run(r.Context())
	if !result.Success {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, result)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}

// isAdmin checks the verified JWT claims for an admin role
func isAdmin(r *http.Request) bool {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		slog.Error("Failed to get JWT claims from context", "error", err)
		return false
	}

	rolesClaim, ok := claims["roles"]
	if !ok {
		return false
	}

	roles, ok := rolesClaim.([]interface{})
	if !ok {
		return false
	}

	for _, role := range roles {
		if s, ok := role.(string); ok && s == "admin" {
			return true
		}
	}

	return false
}
