package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckHealthy(t *testing.T) {
	svc := &stubService{files: []string{"a.xlsx", "b.xlsx"}}
	h := NewHealthHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), "1.2.3")

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.2.3", body["version"])
	assert.Equal(t, float64(2), body["spreadsheets"])
}

func TestHealthCheckDegraded(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("directory unreadable")}
	h := NewHealthHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), "dev")

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])
	assert.Contains(t, body["error"], "directory unreadable")
}

func TestVersion(t *testing.T) {
	h := NewHealthHandler(&stubService{}, slog.New(slog.NewTextHandler(io.Discard, nil)), "9.9.9")

	rec := httptest.NewRecorder()
	h.Version(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "9.9.9")
}
