package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/XavierBriggs/Pythia/internal/publisher"
	"github.com/XavierBriggs/Pythia/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLatest implements publisher.LatestSource for testing
type MockLatest struct {
	data map[string][]byte
	err  error
}

func (m *MockLatest) Latest(ctx context.Context, sportKey string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.data[sportKey]
	if !ok {
		return nil, publisher.ErrNoReport
	}
	return data, nil
}

func writeArtifacts(t *testing.T, withJSON bool) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>report</html>"), 0o644))
	if withJSON {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "odds.json"), []byte(`[{"Team Name":"Kansas City"}]`), 0o644))
	}
	return dir
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeArtifacts(t *testing.T) {
	dir := writeArtifacts(t, true)
	h := server.New(server.Options{OutputDir: dir, AllowedOrigins: []string{"*"}}).Handler()

	for _, path := range []string{"/", "/index.html"} {
		rec := get(t, h, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "<html>report</html>", rec.Body.String())
	}

	rec := get(t, h, "/odds.json")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{"Team Name":"Kansas City"}]`, rec.Body.String())
}

func TestServeArtifacts_MissingJSON(t *testing.T) {
	dir := writeArtifacts(t, false)
	h := server.New(server.Options{OutputDir: dir}).Handler()

	assert.Equal(t, http.StatusNotFound, get(t, h, "/odds.json").Code)
	assert.Equal(t, http.StatusOK, get(t, h, "/").Code)
}

func TestHealthCheck(t *testing.T) {
	h := server.New(server.Options{OutputDir: writeArtifacts(t, false)}).Handler()

	rec := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "pythia", body["service"])

	empty := server.New(server.Options{OutputDir: t.TempDir()}).Handler()
	rec = get(t, empty, "/healthz")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "no report", body["status"])
}

func TestCORS(t *testing.T) {
	h := server.New(server.Options{
		OutputDir:      writeArtifacts(t, true),
		AllowedOrigins: []string{"https://example.com"},
	}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/odds.json", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/odds.json", nil)
	req.Header.Set("Origin", "https://elsewhere.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetLatestReport(t *testing.T) {
	latest := &MockLatest{data: map[string][]byte{
		"americanfootball_nfl": []byte(`[{"Team Name":"Las Vegas","Score":4}]`),
	}}
	h := server.New(server.Options{OutputDir: t.TempDir(), Latest: latest}).Handler()

	rec := get(t, h, "/api/v1/reports/americanfootball_nfl/latest")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"Team Name":"Las Vegas","Score":4}]`, rec.Body.String())

	rec = get(t, h, "/api/v1/reports/basketball_nba/latest")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var errResp server.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, http.StatusNotFound, errResp.Code)
	assert.Contains(t, errResp.Message, "basketball_nba")
}

func TestGetLatestReport_SourceError(t *testing.T) {
	latest := &MockLatest{err: errors.New("connection refused")}
	h := server.New(server.Options{OutputDir: t.TempDir(), Latest: latest}).Handler()

	rec := get(t, h, "/api/v1/reports/americanfootball_nfl/latest")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetLatestReport_NotMounted(t *testing.T) {
	h := server.New(server.Options{OutputDir: t.TempDir()}).Handler()

	rec := get(t, h, "/api/v1/reports/americanfootball_nfl/latest")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
