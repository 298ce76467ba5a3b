package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// degLatPerKm is the latitude span of one kilometre. Longitude spans widen
// toward the poles and are derived per query.
const degLatPerKm = 1.0 / 111.32

// minCosLat bounds the cosine used for the longitude delta so boxes near
// the poles stay finite. Below this the box simply covers all longitudes.
const minCosLat = 1e-4

// BoundingBox is a rectangular lat/lon pre-filter. It is always a superset
// of the true search circle.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoxAround returns the bounding box of the circle with the given radius
// centred on (lat, lon). Edges are clamped to valid coordinate ranges.
// Once the longitude span reaches a full hemisphere the circle wraps the
// antimeridian, so the box covers all longitudes regardless of the centre.
func BoxAround(lat, lon, radiusKm float64) BoundingBox {
	latDelta := radiusKm * degLatPerKm

	box := BoundingBox{
		MinLat: math.Max(lat-latDelta, -90),
		MaxLat: math.Min(lat+latDelta, 90),
	}

	cosLat := math.Cos(lat * math.Pi / 180)
	lonDelta := 180.0
	if cosLat > minCosLat {
		lonDelta = radiusKm * degLatPerKm / cosLat
	}
	if lonDelta >= 180 {
		box.MinLon, box.MaxLon = -180, 180
		return box
	}

	box.MinLon = math.Max(lon-lonDelta, -180)
	box.MaxLon = math.Min(lon+lonDelta, 180)
	return box
}

// Contains reports whether the point lies inside the box.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Haversine returns the great-circle distance in kilometres between two
// points given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
