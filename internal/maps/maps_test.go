package maps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func fakeAPI(t *testing.T, body string, seen func(*http.Request)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			seen(r)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want maps.Mode
	}{
		{"", maps.TravelModeDriving},
		{"driving", maps.TravelModeDriving},
		{"Walking", maps.TravelModeWalking},
		{" transit ", maps.TravelModeTransit},
		{"bicycling", maps.TravelModeBicycling},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseMode("teleport")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestCoordinates(t *testing.T) {
	assert.Equal(t, "15.3647,75.1239", Coordinates(15.3647, 75.1239))
	assert.Equal(t, "-1.5,0", Coordinates(-1.5, 0))
}

func TestNewServices_RequireKey(t *testing.T) {
	_, err := NewRouteService("")
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = NewPlacesService("")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestNilServicesAreDisabled(t *testing.T) {
	var rs *RouteService
	_, err := rs.GetTravelEstimate(context.Background(), "a", "b", maps.TravelModeDriving)
	assert.ErrorIs(t, err, ErrDisabled)

	var ps *PlacesService
	_, err = ps.SearchNearby(context.Background(), "food", 1, 1, 100)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestGetTravelEstimate(t *testing.T) {
	var got *http.Request
	base := fakeAPI(t, `{
		"status": "OK",
		"routes": [{"legs": [{
			"duration": {"value": 900, "text": "15 mins"},
			"distance": {"value": 6200, "text": "6.2 km"}
		}]}]
	}`, func(r *http.Request) { got = r })

	rs, err := NewRouteService("maps-key", maps.WithBaseURL(base))
	require.NoError(t, err)

	est, err := rs.GetTravelEstimate(context.Background(), "15.3647,75.1239", "15.35,75.14", maps.TravelModeWalking)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, est.Duration)
	assert.Equal(t, "6.2 km", est.Distance)
	assert.Equal(t, 6200, est.Meters)

	require.NotNil(t, got)
	q := got.URL.Query()
	assert.Equal(t, "/maps/api/directions/json", got.URL.Path)
	assert.Equal(t, "walking", q.Get("mode"))
	assert.Equal(t, "en", q.Get("language"))
	assert.Equal(t, "in", q.Get("region"))
	assert.Equal(t, "maps-key", q.Get("key"))
}

func TestGetTravelEstimate_NoRoute(t *testing.T) {
	base := fakeAPI(t, `{"status": "ZERO_RESULTS", "routes": []}`, nil)
	rs, err := NewRouteService("maps-key", maps.WithBaseURL(base))
	require.NoError(t, err)

	_, err = rs.GetTravelEstimate(context.Background(), "a", "b", maps.TravelModeDriving)
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestGetTravelEstimate_APIError(t *testing.T) {
	base := fakeAPI(t, `{"status": "REQUEST_DENIED", "error_message": "bad key"}`, nil)
	rs, err := NewRouteService("maps-key", maps.WithBaseURL(base))
	require.NoError(t, err)

	_, err = rs.GetTravelEstimate(context.Background(), "a", "b", maps.TravelModeDriving)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoRoute))
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestSearchNearby_FiltersAndLimits(t *testing.T) {
	var got *http.Request
	base := fakeAPI(t, `{
		"status": "OK",
		"results": [
			{"name": "A", "formatted_address": "a st", "rating": 4.5, "place_id": "pa"},
			{"name": "Low", "rating": 3.9, "place_id": "pl"},
			{"name": "B", "rating": 4.0, "place_id": "pb"},
			{"name": "C", "rating": 4.1, "place_id": "pc"},
			{"name": "D", "rating": 4.9, "place_id": "pd"},
			{"name": "E", "rating": 4.2, "place_id": "pe"},
			{"name": "F", "rating": 4.8, "place_id": "pf"}
		]
	}`, func(r *http.Request) { got = r })

	ps, err := NewPlacesService("maps-key", maps.WithBaseURL(base))
	require.NoError(t, err)

	res, err := ps.SearchNearby(context.Background(), "restaurants", 15.3647, 75.1239, 2000)
	require.NoError(t, err)
	require.Len(t, res, maxResults)

	names := make([]string, len(res))
	for i, p := range res {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, names)
	assert.Equal(t, "a st", res[0].Address)

	require.NotNil(t, got)
	q := got.URL.Query()
	assert.Equal(t, "restaurants", q.Get("query"))
	assert.Equal(t, "2000", q.Get("radius"))
	assert.Equal(t, "15.3647,75.1239", q.Get("location"))
}
