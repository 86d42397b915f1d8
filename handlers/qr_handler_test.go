package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestQRHandler_GetQRCode(t *testing.T) {
	mux, _ := setupTestMux(t, &stubCEPClient{})
	registered := registerTestMember(t, mux, `{"owner": {"fullName": "Maria Silva", "cpfDni": "12345678900"}}`)

	t.Run("Returns a PNG download", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/members/"+registered.Owner.MemberID+"/qr", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), `qr-maria-silva.png`)
		require.True(t, w.Body.Len() > 4)
		assert.Equal(t, pngMagic, w.Body.Bytes()[:4])
	})

	t.Run("Size parameter is honored within bounds", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/members/"+registered.Owner.MemberID+"/qr?size=128", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	})

	t.Run("Unknown member returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/members/mem_missing/qr", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestQRFilename(t *testing.T) {
	assert.Equal(t, "qr-maria-silva.png", qrFilename("Maria Silva"))
	assert.Equal(t, "qr-maria-da-silva.png", qrFilename("  Maria   da Silva  "))
	assert.Equal(t, "qr-member.png", qrFilename(""))
}
