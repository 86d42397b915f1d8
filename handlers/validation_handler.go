package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/benclube/membership-service/services"
	"github.com/benclube/membership-service/utils"
)

// ValidationHandler handles the public QR validation endpoint and the scan
// history surface
type ValidationHandler struct {
	service *services.ValidationService
}

// NewValidationHandler creates a new validation handler
func NewValidationHandler(service *services.ValidationService) *ValidationHandler {
	return &ValidationHandler{service: service}
}

// ValidateToken handles GET /api/validate?token=...
// A token that resolves to no member is a normal outcome (the scanner shows
// "registration not found"), not a failure. Integrity faults are logged
// distinctly so operators can tell bad input from data corruption.
func (h *ValidationHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	response, err := h.service.ValidateToken(r.Context(), token)
	if err != nil {
		switch {
		case services.IsNotFoundError(err):
			utils.RespondWithError(w, http.StatusNotFound, "Registration not found", nil)
		case services.IsIntegrityError(err):
			slog.Error("Store integrity fault during validation", "error", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Validation failed", nil)
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to look up registration", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ListScans handles GET /api/members/{id}/scans
func (h *ValidationHandler) ListScans(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("id")
	if memberID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Member ID is required", nil)
		return
	}

	limit := 100 // default
	offset := 0  // default

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	response, err := h.service.ListScans(r.Context(), memberID, limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve scan history", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
