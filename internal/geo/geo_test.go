package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKnownDistances(t *testing.T) {
	// New York to Los Angeles, ~3936 km
	d := Haversine(40.7128, -74.0060, 34.0522, -118.2437)
	assert.InDelta(t, 3936, d, 20)

	// London to Paris, ~344 km
	d = Haversine(51.5074, -0.1278, 48.8566, 2.3522)
	assert.InDelta(t, 344, d, 5)
}

func TestHaversineIdenticalPoints(t *testing.T) {
	assert.Zero(t, Haversine(40.7128, -74.0060, 40.7128, -74.0060))
}

func TestHaversineSymmetry(t *testing.T) {
	a := Haversine(40.7128, -74.0060, 34.0522, -118.2437)
	b := Haversine(34.0522, -118.2437, 40.7128, -74.0060)
	assert.InDelta(t, a, b, 1e-9)
}

func TestHaversineAntipodal(t *testing.T) {
	// Half the Earth's circumference
	d := Haversine(0, 0, 0, 180)
	assert.InDelta(t, EarthRadiusKm*3.14159265, d, 1)
}

func TestBoxAroundContainsCircle(t *testing.T) {
	lat, lon, radius := 40.7128, -74.0060, 5.0
	box := BoxAround(lat, lon, radius)

	// Points on the circle's cardinal extremes fall inside the box
	latDelta := radius / 111.32
	assert.True(t, box.Contains(lat+latDelta*0.999, lon))
	assert.True(t, box.Contains(lat-latDelta*0.999, lon))
	assert.True(t, box.Contains(lat, lon+latDelta*0.999)) // lon delta is wider at this latitude
	assert.True(t, box.Contains(lat, lon-latDelta*0.999))

	// A point well outside is excluded
	assert.False(t, box.Contains(lat+1, lon))
}

func TestBoxAroundClampsAtEdges(t *testing.T) {
	box := BoxAround(89.9, 0, 100)
	assert.LessOrEqual(t, box.MaxLat, 90.0)
	assert.GreaterOrEqual(t, box.MinLat, -90.0)

	box = BoxAround(0, 179.9, 100)
	assert.LessOrEqual(t, box.MaxLon, 180.0)
	assert.GreaterOrEqual(t, box.MinLon, -180.0)
}

func TestBoxAroundPolarWidensToAllLongitudes(t *testing.T) {
	box := BoxAround(90, 0, 1)
	assert.InDelta(t, -180, box.MinLon, 1e-9)
	assert.InDelta(t, 180, box.MaxLon, 1e-9)

	// Same at a non-zero centre longitude: the box must still cover the
	// far side of the antimeridian, not shift and lose the wrapped band.
	box = BoxAround(89.99, 100, 10)
	assert.InDelta(t, -180, box.MinLon, 1e-9)
	assert.InDelta(t, 180, box.MaxLon, 1e-9)
	assert.True(t, box.Contains(89.99, -170))
}
