package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leitor/internal/config"
)

func testApplication(t *testing.T) *Application {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SpreadsheetsDir = filepath.Join(dir, "planilhas")
	cfg.Paths.RosterDB = filepath.Join(dir, "roster.db")
	cfg.Paths.LogsDir = filepath.Join(dir, "logs")
	cfg.Security.RateLimit.Enabled = false

	app := &Application{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	require.NoError(t, app.initializeServices())
	t.Cleanup(func() { app.Roster.Close() })

	app.setupRouter()
	app.setupServer()
	return app
}

func TestApplicationWiring(t *testing.T) {
	app := testApplication(t)

	assert.NotNil(t, app.Cache)
	assert.NotNil(t, app.Dataset)
	assert.NotNil(t, app.Router)
	require.NotNil(t, app.Server)
	assert.Equal(t, app.Router, app.Server.Handler)
	assert.Equal(t, ":8080", app.Server.Addr)
}

func TestApplicationHealthEndpoint(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	// The spreadsheets directory does not exist yet; an empty dataset is
	// still a healthy state.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestApplicationStudentsEndpoint(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/students", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"success"`)
}

func TestApplicationUnknownRoute(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/errors/not-found")
}

func TestApplicationSecurityHeaders(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestApplicationStop(t *testing.T) {
	app := testApplication(t)

	require.NoError(t, app.Stop(context.Background()))
}
