package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomHandler_WritesJSONAndConsole(t *testing.T) {
	color.NoColor = true

	var console, file bytes.Buffer
	logger := slog.New(NewCustomHandler(&console, &file, slog.LevelInfo)).With(slog.String("component", "auth"))

	logger.Info("Login succeeded", slog.String("email", "john@company.com"))
	logger.Debug("dropped")

	var record map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &record))
	assert.Equal(t, "Login succeeded", record["msg"])
	assert.Equal(t, "workflow_portal", record["job"])
	assert.Equal(t, "auth", record["component"])
	assert.Contains(t, record, "timestamp")

	assert.Contains(t, console.String(), "INFO")
	assert.Contains(t, console.String(), "Login succeeded component=auth email=john@company.com")
	assert.NotContains(t, console.String(), "dropped")
}

func TestMiddleware(t *testing.T) {
	color.NoColor = true

	var console, file bytes.Buffer
	logger := slog.New(NewCustomHandler(&console, &file, slog.LevelInfo))

	h := middleware.RequestID(Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, console.String(), "path=/api/v1/me")
	assert.Contains(t, console.String(), "status=418")
	assert.NotContains(t, console.String(), "request_id=unknown")
}
