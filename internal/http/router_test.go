package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"travelbuddy/internal/modules/catalog"
	"travelbuddy/internal/modules/generation"
)

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, model, _ string) (string, error) {
	return "reply from " + model, nil
}

func newTestServer(cors []string) http.Handler {
	gin.SetMode(gin.TestMode)
	gen := generation.NewService(echoGenerator{}, generation.NewRouter("", "", generation.Models{}), 0)
	snap := catalog.NewSnapshot([]catalog.Place{{ID: 1, Name: "Unkal Lake", Category: "Nature", Lat: 15.37, Lng: 75.11}})
	return NewServer(ServerDeps{
		Generation:  gen,
		Catalog:     catalog.NewService(snap, catalog.Options{}),
		CORSOrigins: cors,
	}).Routes()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoutes_Wired(t *testing.T) {
	h := newTestServer(nil)

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/api/places", http.StatusOK},
		{http.MethodGet, "/api/places/categories", http.StatusOK},
		{http.MethodGet, "/api/places/category/Nature", http.StatusOK},
		{http.MethodGet, "/api/places/markers", http.StatusOK},
		{http.MethodGet, "/api/places/nearby?lat=15.37&lng=75.11", http.StatusOK},
		{http.MethodGet, "/api/places/1", http.StatusOK},
		{http.MethodGet, "/api/places/1/route?to=1", http.StatusServiceUnavailable},
		{http.MethodGet, "/api/places/1/explore", http.StatusServiceUnavailable},
		{http.MethodGet, "/api/generate", http.StatusMethodNotAllowed},
		{"PROPFIND", "/api/generate", http.StatusMethodNotAllowed},
		{"PROPFIND", "/api/places", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
		{http.MethodPost, "/api/generate", http.StatusOK},
	}
	for _, tt := range tests {
		w := serve(h, httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{"chat":"hi"}`)))
		assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), tt.path)
	}
}

func TestRoutes_GenerateReply(t *testing.T) {
	w := serve(newTestServer(nil), httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"days":2}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"result":"reply from gemini-2.0-pro"}`, w.Body.String())
}

func TestRoutes_PreflightWithoutCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
	req.Header.Set("Origin", "https://travelbuddy.example")
	req.Header.Set("Access-Control-Request-Method", "POST")

	w := serve(newTestServer(nil), req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRoutes_PreflightWithCORS(t *testing.T) {
	h := newTestServer([]string{"https://travelbuddy.example"})

	req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
	req.Header.Set("Origin", "https://travelbuddy.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := serve(h, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://travelbuddy.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")

	req = httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w = serve(h, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRoutes_RequestIDPropagates(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := serve(newTestServer(nil), req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
