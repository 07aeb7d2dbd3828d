// README: Place index backed by Redis GEO.
package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const placeGeoKey = "catalog:places"

// GeoIndex mirrors the snapshot's coordinates into a Redis GEO set so radius
// queries run server-side.
type GeoIndex struct {
	redis *redis.Client
	key   string
}

func NewGeoIndex(redis *redis.Client) *GeoIndex {
	return &GeoIndex{redis: redis, key: placeGeoKey}
}

// Index replaces the GEO set with the places in snap.
func (g *GeoIndex) Index(ctx context.Context, snap *Snapshot) error {
	pipe := g.redis.TxPipeline()
	pipe.Del(ctx, g.key)
	if locs := geoLocations(snap); len(locs) > 0 {
		pipe.GeoAdd(ctx, g.key, locs...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("index places: %w", err)
	}
	return nil
}

// geoLocations builds one GEO member per id. GEOADD keeps the last position
// it sees for a member, so later duplicates are dropped here to match Get.
func geoLocations(snap *Snapshot) []*redis.GeoLocation {
	locs := make([]*redis.GeoLocation, 0, snap.Len())
	snap.eachDistinct(func(p Place) {
		locs = append(locs, &redis.GeoLocation{
			Name:      strconv.Itoa(p.ID),
			Longitude: p.Lng,
			Latitude:  p.Lat,
		})
	})
	return locs
}

// Nearby asks Redis for members within radiusKm of center and resolves them
// against snap. Members that are no longer in the snapshot are skipped.
func (g *GeoIndex) Nearby(ctx context.Context, snap *Snapshot, center LatLng, radiusKm float64, limit int) ([]NearbyPlace, error) {
	q := &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  center.Lng,
			Latitude:   center.Lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
		},
		WithDist: true,
	}
	if limit > 0 {
		q.Count = limit
	}
	results, err := g.redis.GeoSearchLocation(ctx, g.key, q).Result()
	if err != nil {
		return nil, err
	}

	out := make([]NearbyPlace, 0, len(results))
	for _, r := range results {
		id, err := strconv.Atoi(r.Name)
		if err != nil {
			continue
		}
		p, ok := snap.Get(id)
		if !ok {
			continue
		}
		out = append(out, NearbyPlace{Card: CardOf(p), DistanceKm: roundKm(r.Dist)})
	}
	return out, nil
}
