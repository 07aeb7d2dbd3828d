package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": 2, "name": "Siddharoodha Math", "category": "Spiritual", "desc": "Ashram.", "location": "Old Hubli", "type": "Math", "lat": 15.36, "lng": 75.15},
		{"id": 1, "name": "Glass House", "category": "Nature", "desc": "Garden.", "location": "Indira Gandhi Park", "type": "Park", "entry_fee": "₹5", "image": "img/glass.jpg", "lat": 15.35, "lng": 75.13}
	]`), 0o644))

	snap, err := Load(context.Background(), FileSource{Path: path})
	require.NoError(t, err)
	require.Equal(t, 2, snap.Len())

	places := snap.Places()
	assert.Equal(t, 2, places[0].ID, "file order is kept")
	assert.Equal(t, "₹5", places[1].EntryFee)
	assert.Equal(t, "img/glass.jpg", places[1].Image)
	assert.Empty(t, places[0].EntryFee)
}

func TestFileSource_Errors(t *testing.T) {
	_, err := Load(context.Background(), FileSource{Path: filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0o644))
	_, err = Load(context.Background(), FileSource{Path: path})
	require.Error(t, err)
}

func TestBundledCatalogLoads(t *testing.T) {
	snap, err := Load(context.Background(), FileSource{Path: filepath.Join("..", "..", "..", "data", "places.json")})
	require.NoError(t, err)
	require.Greater(t, snap.Len(), 0)

	seen := map[int]bool{}
	for _, p := range snap.Places() {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Category)
		assert.InDelta(t, 15.36, p.Lat, 0.5, p.Name)
		assert.InDelta(t, 75.12, p.Lng, 0.5, p.Name)
	}
}
