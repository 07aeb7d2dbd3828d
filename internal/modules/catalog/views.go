// README: Pure view functions over a Snapshot (grid, search, tabs, modal, map).
package catalog

import (
	"strings"
	"unicode/utf8"
)

// CardOf builds the grid card for p.
func CardOf(p Place) Card {
	return Card{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Summary:  summarize(p.Desc),
		Image:    p.Image,
	}
}

// summarize keeps the first summaryLength runes of desc and always appends an
// ellipsis.
func summarize(desc string) string {
	if utf8.RuneCountInString(desc) <= summaryLength {
		return desc + "..."
	}
	r := []rune(desc)
	return string(r[:summaryLength]) + "..."
}

// Cards returns the overview grid in source order.
func Cards(snap *Snapshot) []Card {
	out := make([]Card, 0, snap.Len())
	snap.each(func(p Place) { out = append(out, CardOf(p)) })
	return out
}

// Search matches q case-insensitively as a substring of name, category or
// description. An empty q matches everything.
func Search(snap *Snapshot, q string) []Card {
	q = strings.ToLower(q)
	out := make([]Card, 0)
	snap.each(func(p Place) {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.Desc), q) {
			out = append(out, CardOf(p))
		}
	})
	return out
}

// Categories returns the filter tabs: AllCategory followed by each distinct
// category in order of first appearance.
func Categories(snap *Snapshot) []string {
	seen := make(map[string]struct{})
	out := []string{AllCategory}
	snap.each(func(p Place) {
		if _, ok := seen[p.Category]; ok {
			return
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	})
	return out
}

// FilterCategory returns the cards of one category; AllCategory returns all.
func FilterCategory(snap *Snapshot, category string) []Card {
	if category == AllCategory {
		return Cards(snap)
	}
	out := make([]Card, 0)
	snap.each(func(p Place) {
		if p.Category == category {
			out = append(out, CardOf(p))
		}
	})
	return out
}

// DetailOf returns the modal view for id.
func DetailOf(snap *Snapshot, id int) (Detail, error) {
	p, ok := snap.Get(id)
	if !ok {
		return Detail{}, ErrNotFound
	}
	fee := p.EntryFee
	if fee == "" {
		fee = "Free"
	}
	return Detail{
		ID:       p.ID,
		Name:     p.Name,
		Desc:     p.Desc,
		Image:    p.Image,
		Category: p.Category,
		Location: p.Location,
		Type:     p.Type,
		EntryFee: fee,
		Lat:      p.Lat,
		Lng:      p.Lng,
	}, nil
}

// Markers returns the map page: one marker per place around center.
func Markers(snap *Snapshot, center LatLng, zoom int) MapView {
	markers := make([]Marker, 0, snap.Len())
	snap.each(func(p Place) {
		markers = append(markers, Marker{ID: p.ID, Title: p.Name, Lat: p.Lat, Lng: p.Lng, Info: p.Desc})
	})
	return MapView{Center: center, Zoom: zoom, Markers: markers}
}
