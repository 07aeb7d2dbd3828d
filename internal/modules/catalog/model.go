// README: Catalog domain types (place records and the view models built from them).
package catalog

import "errors"

var (
	ErrNotFound   = errors.New("place not found")
	ErrBadRequest = errors.New("bad request")
)

// AllCategory is the tab that shows every place.
const AllCategory = "All"

// summaryLength is how much of a description a card shows.
const summaryLength = 100

// Place is one record of the static place collection.
type Place struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Desc     string  `json:"desc"`
	Location string  `json:"location"`
	Type     string  `json:"type"`
	EntryFee string  `json:"entry_fee,omitempty"`
	Image    string  `json:"image,omitempty"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// Card is the grid view of a place.
type Card struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
	Image    string `json:"image,omitempty"`
}

// Detail is the modal view of a place.
type Detail struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Desc     string  `json:"desc"`
	Image    string  `json:"image,omitempty"`
	Category string  `json:"category"`
	Location string  `json:"location"`
	Type     string  `json:"type"`
	EntryFee string  `json:"entry_fee"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// Marker is one pin on the map page.
type Marker struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Info  string  `json:"info"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MapView is everything the map page needs to draw.
type MapView struct {
	Center  LatLng   `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
}

// NearbyPlace is a card with its distance from a query point.
type NearbyPlace struct {
	Card
	DistanceKm float64 `json:"distance_km"`
}

// TravelEstimate is a route summary between two catalog places.
type TravelEstimate struct {
	FromID          int     `json:"from_id"`
	ToID            int     `json:"to_id"`
	Mode            string  `json:"mode"`
	DurationMinutes float64 `json:"duration_minutes"`
	Distance        string  `json:"distance"`
}

// Suggestion is an external place found around a catalog place.
type Suggestion struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Rating  float32 `json:"rating"`
	PlaceID string  `json:"place_id"`
}
