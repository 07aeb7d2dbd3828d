// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"

	"travelbuddy/internal/http/handlers"
	"travelbuddy/internal/http/middleware"
	"travelbuddy/internal/modules/catalog"
	"travelbuddy/internal/modules/generation"
	"travelbuddy/internal/modules/health"
)

func NewRouter(
	generationService *generation.Service,
	catalogService *catalog.Service,
	healthService *health.Service,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())
	if len(corsOrigins) > 0 {
		r.Use(middleware.CORS(corsOrigins))
	}

	handlers.NewGenerateHandler(generationService).Register(r)

	catalogHandler := handlers.NewCatalogHandler(catalogService)
	places := r.Group("/api/places")
	places.GET("", catalogHandler.List)
	places.GET("/categories", catalogHandler.Categories)
	places.GET("/category/:category", catalogHandler.Category)
	places.GET("/markers", catalogHandler.Markers)
	places.GET("/nearby", catalogHandler.Nearby)
	places.GET("/:id", catalogHandler.Get)
	places.GET("/:id/route", catalogHandler.Route)
	places.GET("/:id/explore", catalogHandler.Explore)

	healthHandler := handlers.NewHealthHandler(healthService)
	r.GET("/health", healthHandler.Live)
	r.GET("/ready", healthHandler.Ready)

	return r
}
