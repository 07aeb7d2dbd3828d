// README: Catalog service (views over the loaded snapshot plus geo and maps lookups).
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	gmaps "googlemaps.github.io/maps"

	"travelbuddy/internal/maps"
)

const (
	DefaultRadiusKm    = 5.0
	DefaultNearbyLimit = 10
	MaxNearbyLimit     = 50

	// DefaultExploreQuery is used when the caller gives no search text.
	DefaultExploreQuery = "tourist attractions"
	// exploreRadiusMeters bounds the text search around a place.
	exploreRadiusMeters = 2000
)

// RouteEstimator is satisfied by *maps.RouteService.
type RouteEstimator interface {
	GetTravelEstimate(ctx context.Context, origin, destination string, mode gmaps.Mode) (maps.Estimate, error)
}

// PlaceSearcher is satisfied by *maps.PlacesService.
type PlaceSearcher interface {
	SearchNearby(ctx context.Context, query string, lat, lng float64, radius uint) ([]maps.Place, error)
}

// NearbyIndex is satisfied by *GeoIndex.
type NearbyIndex interface {
	Nearby(ctx context.Context, snap *Snapshot, center LatLng, radiusKm float64, limit int) ([]NearbyPlace, error)
}

// Options wires the optional collaborators. Nil fields disable the feature
// that needs them.
type Options struct {
	Center LatLng
	Zoom   int
	Index  NearbyIndex
	Routes RouteEstimator
	Places PlaceSearcher
}

type Service struct {
	snap   *Snapshot
	center LatLng
	zoom   int
	index  NearbyIndex
	routes RouteEstimator
	places PlaceSearcher
}

func NewService(snap *Snapshot, opts Options) *Service {
	if snap == nil {
		snap = NewSnapshot(nil)
	}
	return &Service{
		snap:   snap,
		center: opts.Center,
		zoom:   opts.Zoom,
		index:  opts.Index,
		routes: opts.Routes,
		places: opts.Places,
	}
}

func (s *Service) Snapshot() *Snapshot { return s.snap }

// List returns the grid, filtered by q when it is non-empty.
func (s *Service) List(q string) []Card {
	if q == "" {
		return Cards(s.snap)
	}
	return Search(s.snap, q)
}

func (s *Service) Categories() []string { return Categories(s.snap) }

func (s *Service) Category(category string) []Card { return FilterCategory(s.snap, category) }

func (s *Service) Detail(id int) (Detail, error) { return DetailOf(s.snap, id) }

func (s *Service) Map() MapView { return Markers(s.snap, s.center, s.zoom) }

// Nearby returns places within radiusKm of (lat, lng), nearest first. Zero
// radius and limit take the defaults. A Redis failure falls back to the
// in-memory scan.
func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]NearbyPlace, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrBadRequest)
	}
	if radiusKm < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: radius and limit must not be negative", ErrBadRequest)
	}
	if radiusKm == 0 {
		radiusKm = DefaultRadiusKm
	}
	if limit == 0 {
		limit = DefaultNearbyLimit
	}
	if limit > MaxNearbyLimit {
		limit = MaxNearbyLimit
	}

	center := LatLng{Lat: lat, Lng: lng}
	if s.index != nil {
		res, err := s.index.Nearby(ctx, s.snap, center, radiusKm, limit)
		if err == nil {
			return res, nil
		}
		log.Printf("catalog: geo index unavailable, scanning in memory: %v", err)
	}
	return NearbyInMemory(s.snap, center, radiusKm, limit), nil
}

// Route estimates travel between two catalog places.
func (s *Service) Route(ctx context.Context, fromID, toID int, mode string) (TravelEstimate, error) {
	if s.routes == nil {
		return TravelEstimate{}, maps.ErrDisabled
	}
	m, err := maps.ParseMode(mode)
	if err != nil {
		return TravelEstimate{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	from, ok := s.snap.Get(fromID)
	if !ok {
		return TravelEstimate{}, fmt.Errorf("place %d: %w", fromID, ErrNotFound)
	}
	to, ok := s.snap.Get(toID)
	if !ok {
		return TravelEstimate{}, fmt.Errorf("place %d: %w", toID, ErrNotFound)
	}

	est, err := s.routes.GetTravelEstimate(ctx,
		maps.Coordinates(from.Lat, from.Lng),
		maps.Coordinates(to.Lat, to.Lng),
		m,
	)
	if err != nil {
		if errors.Is(err, maps.ErrNoRoute) {
			return TravelEstimate{}, fmt.Errorf("route %d to %d: %w", fromID, toID, ErrNotFound)
		}
		return TravelEstimate{}, fmt.Errorf("route %d to %d: %w", fromID, toID, err)
	}
	return TravelEstimate{
		FromID:          fromID,
		ToID:            toID,
		Mode:            string(m),
		DurationMinutes: est.Duration.Minutes(),
		Distance:        est.Distance,
	}, nil
}

// Explore searches for well-rated external places around a catalog place.
func (s *Service) Explore(ctx context.Context, id int, query string) ([]Suggestion, error) {
	if s.places == nil {
		return nil, maps.ErrDisabled
	}
	p, ok := s.snap.Get(id)
	if !ok {
		return nil, fmt.Errorf("place %d: %w", id, ErrNotFound)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		query = DefaultExploreQuery
	}

	found, err := s.places.SearchNearby(ctx, query, p.Lat, p.Lng, exploreRadiusMeters)
	if err != nil {
		return nil, fmt.Errorf("explore around %d: %w", id, err)
	}
	out := make([]Suggestion, 0, len(found))
	for _, f := range found {
		out = append(out, Suggestion{Name: f.Name, Address: f.Address, Rating: f.Rating, PlaceID: f.PlaceID})
	}
	return out, nil
}
