// README: Catalog endpoints (grid, search, tabs, detail, map, nearby, route, explore).
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelbuddy/internal/modules/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

// List handles GET /api/places?q=.
func (h *CatalogHandler) List(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"places": h.catalog.List(c.Query("q"))})
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}

func (h *CatalogHandler) Category(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"places": h.catalog.Category(c.Param("category"))})
}

func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := h.catalog.Detail(id)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

func (h *CatalogHandler) Markers(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.catalog.Map())
}

// Nearby handles GET /api/places/nearby?lat=&lng=&radius_km=&limit=.
func (h *CatalogHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid lat")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid lng")
		return
	}
	var radius float64
	if v := c.Query("radius_km"); v != "" {
		if radius, err = strconv.ParseFloat(v, 64); err != nil {
			writeError(c, http.StatusBadRequest, "invalid radius_km")
			return
		}
	}
	var limit int
	if v := c.Query("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	places, err := h.catalog.Nearby(c.Request.Context(), lat, lng, radius, limit)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"places": places})
}

// Route handles GET /api/places/:id/route?to=&mode=.
func (h *CatalogHandler) Route(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	to, err := strconv.Atoi(c.Query("to"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid to")
		return
	}
	est, err := h.catalog.Route(c.Request.Context(), id, to, c.Query("mode"))
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, est)
}

// Explore handles GET /api/places/:id/explore?q=.
func (h *CatalogHandler) Explore(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	found, err := h.catalog.Explore(c.Request.Context(), id, c.Query("q"))
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"suggestions": found})
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
