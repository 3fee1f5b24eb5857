package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ScreenSense/internal/contextfile"
	"github.com/GriffinCanCode/ScreenSense/internal/monitoring"
	"github.com/GriffinCanCode/ScreenSense/internal/pipeline"
	"github.com/GriffinCanCode/ScreenSense/internal/session"
	"github.com/GriffinCanCode/ScreenSense/internal/shared/types"
	"github.com/GriffinCanCode/ScreenSense/internal/urls"
)

var testMetrics = monitoring.NewMetrics()

type fakeExtractor struct{ text string }

func (f *fakeExtractor) Initialize() error                  { return nil }
func (f *fakeExtractor) Available() bool                    { return true }
func (f *fakeExtractor) Close() error                       { return nil }
func (f *fakeExtractor) ExtractText(string) (string, error) { return f.text, nil }

type fakeResolver struct{}

func (fakeResolver) Mode() string { return "scrape_only" }
func (fakeResolver) ResolveAll(_ context.Context, discovered []urls.Discovered) []types.ResolvedURL {
	out := make([]types.ResolvedURL, len(discovered))
	for i, d := range discovered {
		out[i] = types.ResolvedURL{
			Original:   d.Original,
			Normalized: d.Normalized,
			Kind:       types.KindWeb,
			Success:    true,
		}
	}
	return out
}

func newTestRouter(t *testing.T) (*gin.Engine, *pipeline.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := pipeline.New(pipeline.Options{
		Engine:    &fakeExtractor{text: "see https://example.com/articles/today"},
		Resolver:  fakeResolver{},
		Store:     session.NewStore(),
		Assembler: contextfile.New(filepath.Join(t.TempDir(), "contexts")),
		Metrics:   testMetrics,
	})

	router := gin.New()
	NewHandlers(svc, nil).Register(router)
	return router, svc
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func writeImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.png")
	require.NoError(t, os.WriteFile(path, []byte("png bytes"), 0o644))
	return path
}

func TestRootAndHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "online")

	rec = doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "scrape_only")
}

func TestProcessScreenshotEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/screenshots/process", gin.H{
		"image_path": writeImage(t),
		"session_id": "S1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result types.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.ContextFile)
	require.NotNil(t, result.Data)
	require.Len(t, result.Data.URLs, 1)
	assert.Equal(t, "https://example.com/articles/today", result.Data.URLs[0].Normalized)
}

func TestProcessScreenshotMissingImageStill200(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/screenshots/process", gin.H{
		"image_path": "/nonexistent/capture.png",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result types.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
}

func TestProcessScreenshotValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/screenshots/process", gin.H{
		"session_id": "S1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateContextEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/sessions/unknown/context", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	doJSON(t, router, http.MethodPost, "/screenshots/process", gin.H{
		"image_path": writeImage(t),
		"session_id": "S1",
	})

	rec = doJSON(t, router, http.MethodPost, "/sessions/S1/context", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "S1-context.txt")
}

func TestCleanupEndpoints(t *testing.T) {
	router, svc := newTestRouter(t)
	image := writeImage(t)

	for _, id := range []string{"A", "B"} {
		doJSON(t, router, http.MethodPost, "/screenshots/process", gin.H{
			"image_path": image,
			"session_id": id,
		})
	}

	rec := doJSON(t, router, http.MethodDelete, "/sessions/A?remove_files=true", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/sessions/A", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"removed":1`)
	assert.Equal(t, 0, svc.Status().Sessions)
}

func TestStatusEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/screenshots/process", gin.H{
		"image_path": writeImage(t),
		"session_id": "S1",
	})

	rec := doJSON(t, router, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status types.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, 1, status.Sessions)
	assert.Equal(t, 1, status.Screenshots)
	assert.Equal(t, "scrape_only", status.ResolverMode)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "screensense_")
}
