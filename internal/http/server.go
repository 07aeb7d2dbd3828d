// README: API gateway; wires module services into the HTTP router.
package http

import (
	"net/http"

	"travelbuddy/internal/modules/catalog"
	"travelbuddy/internal/modules/generation"
	"travelbuddy/internal/modules/health"
)

type ServerDeps struct {
	Generation  *generation.Service
	Catalog     *catalog.Service
	Health      *health.Service
	CORSOrigins []string
}

type Server struct {
	generation  *generation.Service
	catalog     *catalog.Service
	health      *health.Service
	corsOrigins []string
}

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		generation:  deps.Generation,
		catalog:     deps.Catalog,
		health:      deps.Health,
		corsOrigins: deps.CORSOrigins,
	}
	if s.catalog == nil {
		s.catalog = catalog.NewService(nil, catalog.Options{})
	}
	if s.health == nil {
		s.health = health.NewService()
	}
	return s
}

func (s *Server) Routes() http.Handler {
	return NewRouter(s.generation, s.catalog, s.health, s.corsOrigins)
}
