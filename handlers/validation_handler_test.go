package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/benclube/membership-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationHandler_ValidateToken(t *testing.T) {
	mux, _ := setupTestMux(t, &stubCEPClient{})
	registered := registerTestMember(t, mux, `{"owner": {"fullName": "Maria Silva", "cpfDni": "12345678900"}}`)

	t.Run("Known token resolves the member", func(t *testing.T) {
		target := "/api/validate?token=" + url.QueryEscape(registered.Owner.QRCodeToken)
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp models.ValidationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, registered.Owner.MemberID, resp.Member.MemberID)
		assert.Equal(t, models.StatusActive, resp.Status)
		assert.Equal(t, "Ativo", resp.StatusLabel)
		assert.NotEmpty(t, resp.ValidatedAt)
	})

	t.Run("Unknown token returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/validate?token=not-a-token", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, "Registration not found", errResp.Error)
	})

	t.Run("Missing token returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/validate", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestValidationHandler_ListScans(t *testing.T) {
	mux, _ := setupTestMux(t, &stubCEPClient{})
	registered := registerTestMember(t, mux, `{"owner": {"fullName": "Maria Silva", "cpfDni": "12345678900"}}`)

	// Two validations leave two scan events
	for i := 0; i < 2; i++ {
		target := "/api/validate?token=" + url.QueryEscape(registered.Owner.QRCodeToken)
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	t.Run("Scan history", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/members/"+registered.Owner.MemberID+"/scans", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp models.ListScansResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Total)
		require.Len(t, resp.Scans, 2)
		assert.Equal(t, registered.Owner.MemberID, resp.Scans[0].MemberID)
	})

	t.Run("Limit caps the page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/members/"+registered.Owner.MemberID+"/scans?limit=1", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp models.ListScansResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Total)
		assert.Len(t, resp.Scans, 1)
	})

	t.Run("Unknown member has an empty history", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/members/mem_missing/scans", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp models.ListScansResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.Total)
	})
}
