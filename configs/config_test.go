package config

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUniqueInstance(t *testing.T) {
	id := CreateUniqueInstance("match")
	assert.Len(t, id, 36)
	assert.Equal(t, id, GetInstanceId())
	assert.NotEqual(t, id, CreateUniqueInstance("match"))
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MATCH_CONFIG_TEST=loaded\n"), 0644))
	t.Setenv("MATCH_CONFIG_TEST", "")
	os.Unsetenv("MATCH_CONFIG_TEST")

	LoadEnv(path)
	assert.Equal(t, "loaded", os.Getenv("MATCH_CONFIG_TEST"))

	// a missing file only warns
	LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://app.example"}).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/players", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/players", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCustomLoggerMiddleware(t *testing.T) {
	h := middleware.RequestID(CustomLoggerMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestLoggingToDir(t *testing.T) {
	dir := t.TempDir()
	Logging("match_test", dir)
	t.Cleanup(func() { Logging("match_test", "") })

	_, err := os.Stat(filepath.Join(dir, "match_test.log"))
	assert.NoError(t, err)
}
