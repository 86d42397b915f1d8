package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/benclube/membership-service/services"
	"github.com/benclube/membership-service/utils"
	qrcode "github.com/skip2/go-qrcode"
)

// QRHandler renders a member's QR token as a downloadable PNG.
// When a validation base URL is configured the token is embedded in a
// callback URL so generic scanner apps land on the validation page;
// otherwise the raw token is encoded.
type QRHandler struct {
	service           *services.MemberService
	validationBaseURL string
}

// NewQRHandler creates a new QR handler
func NewQRHandler(service *services.MemberService, validationBaseURL string) *QRHandler {
	return &QRHandler{
		service:           service,
		validationBaseURL: strings.TrimSuffix(validationBaseURL, "/"),
	}
}

// GetQRCode handles GET /api/members/{id}/qr
func (h *QRHandler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("id")
	if memberID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Member ID is required", nil)
		return
	}

	size := 256 // default, matches the portal modal
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s >= 64 && s <= 2048 {
			size = s
		}
	}

	member, err := h.service.GetMember(r.Context(), memberID)
	if err != nil {
		if services.IsNotFoundError(err) {
			utils.RespondWithError(w, http.StatusNotFound, "Member not found", nil)
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve member", err)
		return
	}

	content := member.QRCodeToken
	if h.validationBaseURL != "" {
		content = fmt.Sprintf("%s/validate?token=%s", h.validationBaseURL, url.QueryEscape(member.QRCodeToken))
	}

	png, err := qrcode.Encode(content, qrcode.High, size)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render QR code", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", qrFilename(member.FullName)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// qrFilename builds a download filename from the member name, the same way
// the portal modal names its export
func qrFilename(fullName string) string {
	slug := strings.ToLower(strings.TrimSpace(fullName))
	slug = strings.Join(strings.Fields(slug), "-")
	if slug == "" {
		slug = "member"
	}
	return "qr-" + slug + ".png"
}
