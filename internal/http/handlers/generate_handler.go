// README: Prompt router endpoint (POST /api/generate).
package handlers

import (
	"bytes"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"travelbuddy/internal/modules/generation"
)

// GeneratePath is the prompt router endpoint.
const GeneratePath = "/api/generate"

type GenerateHandler struct {
	gen *generation.Service
}

func NewGenerateHandler(gen *generation.Service) *GenerateHandler {
	return &GenerateHandler{gen: gen}
}

type generateResponse struct {
	Success bool   `json:"success"`
	Result  string `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Register binds the handler to GeneratePath for every method. gin only builds
// trees for the standard methods, so anything else (PROPFIND, custom verbs)
// reaches the engine's NoRoute chain and is answered there.
func (h *GenerateHandler) Register(r *gin.Engine) {
	r.Any(GeneratePath, h.Generate)
	r.NoRoute(h.noRoute)
}

// noRoute sends unrouted methods on GeneratePath to Generate. Other paths are
// left unwritten so gin falls back to its 404.
func (h *GenerateHandler) noRoute(c *gin.Context) {
	if c.Request.URL.Path == GeneratePath {
		h.Generate(c)
	}
}

// Generate handles every method on /api/generate; only POST is served.
func (h *GenerateHandler) Generate(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		writeJSON(c, http.StatusMethodNotAllowed, generateResponse{Error: "Method not allowed"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeJSON(c, http.StatusBadRequest, generateResponse{Error: "invalid request body"})
		return
	}

	// An empty body is the same as {}.
	var in generation.Input
	if len(bytes.TrimSpace(body)) > 0 {
		if err := binding.JSON.BindBody(body, &in); err != nil {
			writeJSON(c, http.StatusBadRequest, generateResponse{Error: "invalid request body"})
			return
		}
	}

	res, err := h.gen.Generate(c.Request.Context(), generation.Resolve(in))
	if err != nil {
		log.Printf("generate: %v", err)
		writeJSON(c, http.StatusInternalServerError, generateResponse{Error: err.Error()})
		return
	}
	writeJSON(c, http.StatusOK, generateResponse{Success: true, Result: res.Text})
}
