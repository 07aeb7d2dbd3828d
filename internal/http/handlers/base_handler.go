// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelbuddy/internal/maps"
	"travelbuddy/internal/modules/catalog"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, maps.ErrDisabled):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("catalog: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		writeError(c, http.StatusBadGateway, "maps lookup failed")
	}
}
