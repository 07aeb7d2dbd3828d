package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

const (
	minRating  = 4.0
	maxResults = 5
)

// Place represents a simplified location result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string, opts ...maps.ClientOption) (*PlacesService, error) {
	client, err := newClient(apiKey, opts)
	if err != nil {
		return nil, err
	}
	return &PlacesService{client: client}, nil
}

// SearchNearby runs a text search for query around (lat, lng) within radius
// metres. Results rated below minRating are dropped and at most maxResults
// are returned, in API order.
func (s *PlacesService) SearchNearby(ctx context.Context, query string, lat, lng float64, radius uint) ([]Place, error) {
	if s == nil || s.client == nil {
		return nil, ErrDisabled
	}
	r := &maps.TextSearchRequest{
		Query:    query,
		Location: &maps.LatLng{Lat: lat, Lng: lng},
		Radius:   radius,
		Language: language,
		Region:   region,
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	results := make([]Place, 0, maxResults)
	for _, result := range resp.Results {
		if result.Rating < minRating {
			continue
		}
		results = append(results, Place{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			PlaceID:          result.PlaceID,
			UserRatingsTotal: result.UserRatingsTotal,
		})
		if len(results) >= maxResults {
			break
		}
	}
	return results, nil
}
