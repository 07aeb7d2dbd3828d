package catalog

import "math"

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// sortByDistance is a stable insertion sort; catalogs are small.
func sortByDistance[T any](items []T, dist func(T) float64) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && dist(items[j]) > dist(key) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}

// NearbyInMemory scans the snapshot for places within radiusKm of center,
// nearest first. limit <= 0 means no limit. A repeated id is reported once,
// at the position of the record Get returns, as the GEO index does.
func NearbyInMemory(snap *Snapshot, center LatLng, radiusKm float64, limit int) []NearbyPlace {
	out := make([]NearbyPlace, 0)
	snap.eachDistinct(func(p Place) {
		d := haversineKm(center.Lat, center.Lng, p.Lat, p.Lng)
		if d <= radiusKm {
			out = append(out, NearbyPlace{Card: CardOf(p), DistanceKm: roundKm(d)})
		}
	})
	sortByDistance(out, func(n NearbyPlace) float64 { return n.DistanceKm })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// roundKm keeps three decimals (metre precision).
func roundKm(d float64) float64 {
	return math.Round(d*1000) / 1000
}
