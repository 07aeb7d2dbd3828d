// README: Directions API wrapper used for travel estimates between catalog places.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

var (
	// ErrDisabled is returned when no Maps API key is configured.
	ErrDisabled    = errors.New("maps integration disabled")
	ErrUnknownMode = errors.New("unknown travel mode")
	ErrNoRoute     = errors.New("no route found")
)

const (
	language = "en"
	region   = "in" // bias results to India
)

// Estimate is the first leg of the first route the API returns.
type Estimate struct {
	Duration time.Duration
	Distance string
	Meters   int
}

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key. Extra
// client options (base URL, HTTP client) are applied after the key.
func NewRouteService(apiKey string, opts ...maps.ClientOption) (*RouteService, error) {
	client, err := newClient(apiKey, opts)
	if err != nil {
		return nil, err
	}
	return &RouteService{client: client}, nil
}

func newClient(apiKey string, opts []maps.ClientOption) (*maps.Client, error) {
	if apiKey == "" {
		return nil, ErrDisabled
	}
	all := append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

// ParseMode maps a query value onto a Directions travel mode. Empty means driving.
func ParseMode(s string) (maps.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "driving":
		return maps.TravelModeDriving, nil
	case "walking":
		return maps.TravelModeWalking, nil
	case "transit":
		return maps.TravelModeTransit, nil
	case "bicycling":
		return maps.TravelModeBicycling, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Coordinates formats a point the way the Directions API accepts it as an
// origin or destination.
func Coordinates(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}

// GetTravelEstimate returns the duration and distance for a trip from origin to destination.
func (s *RouteService) GetTravelEstimate(ctx context.Context, origin, destination string, mode maps.Mode) (Estimate, error) {
	if s == nil || s.client == nil {
		return Estimate{}, ErrDisabled
	}
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        mode,
		Language:    language,
		Region:      region,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return Estimate{}, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return Estimate{}, ErrNoRoute
	}

	leg := routes[0].Legs[0]
	return Estimate{
		Duration: leg.Duration,
		Distance: leg.Distance.HumanReadable,
		Meters:   leg.Distance.Meters,
	}, nil
}
