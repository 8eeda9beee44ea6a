package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/tanchoice/livestock/backend/internal/middleware"
)

// TestSlogLogger_LogsRequestFields drives one request through the logging
// middleware and asserts the JSON log line carries the expected fields,
// including the request ID that chi's RequestID middleware would have put
// in context.
func TestSlogLogger_LogsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middleware.NewSlogLogger(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/suppliers", nil)
	// Stand in for chimiddleware.RequestID so only the logging behaviour
	// is under test.
	req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "req-42"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	require.Equal(t, "POST", entry["method"])
	require.Equal(t, "/suppliers", entry["path"])
	require.EqualValues(t, http.StatusCreated, entry["status"])
	require.Equal(t, "req-42", entry["request_id"])
	require.NotNil(t, entry["duration_ms"])
}
