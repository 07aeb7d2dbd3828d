package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelbuddy/internal/ai"
	"travelbuddy/internal/http/handlers"
	"travelbuddy/internal/modules/generation"
)

// stubGenerator is a test double for ai.Generator.
type stubGenerator struct {
	mu     sync.Mutex
	calls  int
	model  string
	prompt string
	text   string
	err    error
}

func (s *stubGenerator) Generate(_ context.Context, model, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.model, s.prompt = model, prompt
	return s.text, s.err
}

func buildGenerateRouter(gen ai.Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := generation.NewService(gen, generation.NewRouter("Hubli", "Karnataka", generation.Models{}), 0)
	r := gin.New()
	handlers.NewGenerateHandler(svc).Register(r)
	return r
}

type generateBody struct {
	Success bool    `json:"success"`
	Result  *string `json:"result"`
	Error   *string `json:"error"`
}

func doGenerate(t *testing.T, r *gin.Engine, method, body string) (*httptest.ResponseRecorder, generateBody) {
	t.Helper()
	req := httptest.NewRequest(method, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var got generateBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got), w.Body.String())
	return w, got
}

func TestGenerate_MethodNotAllowed(t *testing.T) {
	gen := &stubGenerator{text: "unused"}
	r := buildGenerateRouter(gen)

	methods := []string{
		http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions,
		http.MethodHead, http.MethodTrace, "PROPFIND", "FOO",
	}
	for _, m := range methods {
		t.Run(m, func(t *testing.T) {
			w, got := doGenerate(t, r, m, `{"chat":"hi"}`)
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.False(t, got.Success)
			require.NotNil(t, got.Error)
			assert.Equal(t, "Method not allowed", *got.Error)
			assert.Nil(t, got.Result)
		})
	}
	assert.Zero(t, gen.calls, "no upstream call for rejected methods")
}

func TestGenerate_Chat(t *testing.T) {
	gen := &stubGenerator{text: "Try Unkal Lake at sunset."}
	r := buildGenerateRouter(gen)

	w, got := doGenerate(t, r, http.MethodPost, `{"chat":"best sunset spot?"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, got.Success)
	require.NotNil(t, got.Result)
	assert.Equal(t, "Try Unkal Lake at sunset.", *got.Result)
	assert.Nil(t, got.Error)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, generation.DefaultChatModel, gen.model)
	assert.Contains(t, gen.prompt, "Hubli, Karnataka")
	assert.Contains(t, gen.prompt, "best sunset spot?")
}

func TestGenerate_Itinerary(t *testing.T) {
	gen := &stubGenerator{text: "Day 1: Unkal Lake"}
	r := buildGenerateRouter(gen)

	w, got := doGenerate(t, r, http.MethodPost, `{"days":3}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, got.Success)
	assert.Equal(t, "Day 1: Unkal Lake", *got.Result)
	assert.Equal(t, generation.DefaultPlannerModel, gen.model)
	assert.Contains(t, gen.prompt, "Create a 3-day detailed itinerary including:")
}

func TestGenerate_BothFieldsUsesItinerary(t *testing.T) {
	gen := &stubGenerator{text: "plan"}
	r := buildGenerateRouter(gen)

	w, _ := doGenerate(t, r, http.MethodPost, `{"days":2,"chat":"where to eat?"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, generation.DefaultPlannerModel, gen.model)
	assert.NotContains(t, gen.prompt, "where to eat?")
}

func TestGenerate_EmptyBodies(t *testing.T) {
	for _, body := range []string{"", "{}", "  ", "null", `{"days":0,"chat":""}`} {
		t.Run(fmt.Sprintf("%q", body), func(t *testing.T) {
			gen := &stubGenerator{text: "unused"}
			r := buildGenerateRouter(gen)

			w, got := doGenerate(t, r, http.MethodPost, body)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.True(t, got.Success)
			assert.Equal(t, generation.FallbackText, *got.Result)
			assert.Zero(t, gen.calls)
		})
	}
}

func TestGenerate_InvalidBody(t *testing.T) {
	for _, body := range []string{`{"chat":`, `[1,2]`, `{"days":"three"}`} {
		t.Run(body, func(t *testing.T) {
			gen := &stubGenerator{text: "unused"}
			r := buildGenerateRouter(gen)

			w, got := doGenerate(t, r, http.MethodPost, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, got.Success)
			assert.Equal(t, "invalid request body", *got.Error)
			assert.Zero(t, gen.calls)
		})
	}
}

func TestGenerate_MalformedUpstreamFallsBack(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("%w: no candidates", ai.ErrMalformedResponse)}
	r := buildGenerateRouter(gen)

	w, got := doGenerate(t, r, http.MethodPost, `{"chat":"hello"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, got.Success)
	assert.Equal(t, "AI response unavailable.", *got.Result)
}

func TestGenerate_UpstreamFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("dial tcp: connection refused")}
	r := buildGenerateRouter(gen)

	w, got := doGenerate(t, r, http.MethodPost, `{"days":1}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, got.Success)
	require.NotNil(t, got.Error)
	assert.Contains(t, *got.Error, "connection refused")
	assert.Nil(t, got.Result)
}
