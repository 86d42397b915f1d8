package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/benclube/membership-service/models"
	"github.com/benclube/membership-service/services"
	"github.com/benclube/membership-service/utils"
)

// MemberHandler handles HTTP requests for member registration and the directory
type MemberHandler struct {
	service *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(service *services.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

// RegisterMember handles POST /api/members
func (h *MemberHandler) RegisterMember(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	response, err := h.service.RegisterMember(r.Context(), &req)
	if err != nil {
		if services.IsValidationError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid member data", err)
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register member", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, response)
}

// ListMembers handles GET /api/members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	response, err := h.service.ListMembers(r.Context(), query)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve members", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetMember handles GET /api/members/{id}
func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("id")
	if memberID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Member ID is required", nil)
		return
	}

	response, err := h.service.GetMember(r.Context(), memberID)
	if err != nil {
		if services.IsNotFoundError(err) {
			utils.RespondWithError(w, http.StatusNotFound, "Member not found", nil)
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve member", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// UpdateMember handles PUT /api/members/{id}
func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("id")
	if memberID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Member ID is required", nil)
		return
	}

	var req models.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	response, err := h.service.UpdateMember(r.Context(), memberID, &req)
	if err != nil {
		switch {
		case services.IsNotFoundError(err):
			utils.RespondWithError(w, http.StatusNotFound, "Member not found", nil)
		case services.IsValidationError(err):
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid member data", err)
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update member", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// DeactivateMember handles PATCH /api/members/{id}/deactivate
func (h *MemberHandler) DeactivateMember(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("id")
	if memberID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Member ID is required", nil)
		return
	}

	response, err := h.service.DeactivateMember(r.Context(), memberID)
	if err != nil {
		if services.IsNotFoundError(err) {
			utils.RespondWithError(w, http.StatusNotFound, "Member not found", nil)
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to deactivate member", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
