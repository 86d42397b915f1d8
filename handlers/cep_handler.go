package handlers

import (
	"errors"
	"net/http"

	"github.com/benclube/membership-service/cep"
	"github.com/benclube/membership-service/utils"
)

// CEPHandler proxies postal-code lookups for the registration form
type CEPHandler struct {
	client cep.Client
}

// NewCEPHandler creates a new CEP handler
func NewCEPHandler(client cep.Client) *CEPHandler {
	return &CEPHandler{client: client}
}

// Lookup handles GET /api/cep/{code}
func (h *CEPHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "CEP is required", nil)
		return
	}

	address, err := h.client.Lookup(r.Context(), code)
	if err != nil {
		if errors.Is(err, cep.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "CEP not found", nil)
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to look up CEP", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, address)
}
