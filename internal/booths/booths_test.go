package booths

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(DefaultBooths)
	require.NoError(t, err)
	return svc
}

func TestDefaultCatalog(t *testing.T) {
	svc := newTestService(t)
	assert.Equal(t, 9, svc.Count())

	b, err := svc.Get(9)
	require.NoError(t, err)
	assert.Equal(t, "Booth India", b.Name)
	assert.Equal(t, "INDIA24", b.SecretCode)
}

func TestNewServiceRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name   string
		booths []Booth
	}{
		{"empty", nil},
		{"zero id", []Booth{{ID: 0, Name: "A", SecretCode: "A"}}},
		{"missing code", []Booth{{ID: 1, Name: "A"}}},
		{"missing name", []Booth{{ID: 1, Name: "  ", SecretCode: "A"}}},
		{"duplicate id", []Booth{{ID: 1, Name: "A", SecretCode: "A"}, {ID: 1, Name: "B", SecretCode: "B"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.booths)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestUnlock(t *testing.T) {
	svc := newTestService(t)

	b, err := svc.Unlock(1, "ALPHA24")
	require.NoError(t, err)
	assert.Equal(t, 1, b.ID)

	_, err = svc.Unlock(1, "alpha24")
	assert.ErrorIs(t, err, ErrWrongCode)

	_, err = svc.Unlock(1, "BRAVO24")
	assert.ErrorIs(t, err, ErrWrongCode)

	_, err = svc.Unlock(42, "ALPHA24")
	assert.ErrorIs(t, err, ErrBoothNotFound)
}

func TestLoadCatalog(t *testing.T) {
	booths, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBooths, booths)

	path := filepath.Join(t.TempDir(), "booths.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":3,"name":"Lab","secret_code":"LAB","description":"d"}]`), 0o600))

	booths, err = LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []Booth{{ID: 3, Name: "Lab", SecretCode: "LAB", Description: "d"}}, booths)

	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))
	_, err = LoadCatalog(path)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestQRCode(t *testing.T) {
	svc := newTestService(t)

	png, err := svc.QRCode(2)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = svc.QRCode(99)
	assert.ErrorIs(t, err, ErrBoothNotFound)
}

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupBoothRoutes(r.Group("/api/v1"), NewController(newTestService(t)))
	return r
}

func TestListBoothsHidesSecrets(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/booths", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "ALPHA24")

	var body struct {
		Data BoothListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 9, body.Data.Total)
	assert.Equal(t, "Booth Alpha", body.Data.Booths[0].Name)
}

func TestBoothQRCodeEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/booths/1/qr", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/booths/77/qr", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/booths/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
