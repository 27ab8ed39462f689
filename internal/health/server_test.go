package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type checkFunc func(ctx context.Context) error

func (f checkFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func doRequest(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ProbePaths(t *testing.T) {
	handler := NewHandler(NewChecker(testLogger()), testLogger())

	for _, path := range []string{"/", "/health"} {
		rec := doRequest(t, handler, path)

		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp["status"])
	}
}

func TestHandler_UnknownPathIs404(t *testing.T) {
	handler := NewHandler(NewChecker(testLogger()), testLogger())

	for _, path := range []string{"/nope", "/health/deep", "/favicon.ico"} {
		rec := doRequest(t, handler, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, "path %s", path)
	}
}

func TestHandler_ReportsComponentStatus(t *testing.T) {
	checker := NewChecker(testLogger())
	checker.AddCheck("up", checkFunc(func(context.Context) error { return nil }))
	checker.AddCheck("down", checkFunc(func(context.Context) error { return errors.New("connection refused") }))

	rec := doRequest(t, NewHandler(checker, testLogger()), "/health")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "OK", resp.Components["up"])
	assert.Contains(t, resp.Components["down"], "connection refused")
}

func TestHandler_MetricsEndpoint(t *testing.T) {
	rec := doRequest(t, NewHandler(NewChecker(testLogger()), testLogger()), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
