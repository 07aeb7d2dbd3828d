package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelbuddy/internal/http/handlers"
	"travelbuddy/internal/modules/health"
)

type fakeChecker struct {
	name string
	err  error
}

func (f fakeChecker) Name() string                { return f.name }
func (f fakeChecker) Check(context.Context) error { return f.err }

func buildHealthRouter(checkers ...health.Checker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewHealthHandler(health.NewService(checkers...))
	r := gin.New()
	r.GET("/health", h.Live)
	r.GET("/ready", h.Ready)
	return r
}

func TestHealth_Live(t *testing.T) {
	r := buildHealthRouter(fakeChecker{name: "postgres", err: errors.New("down")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestHealth_Ready(t *testing.T) {
	r := buildHealthRouter(fakeChecker{name: "redis"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
}

func TestHealth_NotReady(t *testing.T) {
	r := buildHealthRouter(fakeChecker{name: "redis"}, fakeChecker{name: "postgres", err: errors.New("connection refused")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status  string            `json:"status"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body.Status)
	assert.Equal(t, map[string]string{"postgres": "connection refused"}, body.Details)
}
