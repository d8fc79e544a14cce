package gridenv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yugo1103/motion-primitive-library/pkg/gridenv"
)

func TestGeoObstacleIndexNearby(t *testing.T) {
	origin := gridenv.GeoOrigin{Lat: -6.2, Lon: 106.8}

	occ := gridenv.NewOccupancy(-100, -100, 100, 100)
	occ.AddObstacle(0, 0, 1)   // at the origin
	occ.AddObstacle(5000, 5000, 1) // several km away (workspace units are meters)

	idx := gridenv.NewGeoObstacleIndex(origin, occ)

	lat, lon := origin.LatLon(0, 0)
	near := idx.Nearby(lat, lon, 0.5)

	assert.NotEmpty(t, near)
	for _, ob := range near {
		assert.Equal(t, 0.0, ob.X)
		assert.Equal(t, 0.0, ob.Y)
	}
}

func TestGeoOriginLatLonRoundTrip(t *testing.T) {
	origin := gridenv.GeoOrigin{Lat: 10, Lon: 20}

	lat, lon := origin.LatLon(0, 0)
	assert.Equal(t, origin.Lat, lat)
	assert.Equal(t, origin.Lon, lon)

	// moving north increases latitude, moving east increases longitude.
	latN, lonN := origin.LatLon(0, 1000)
	assert.Greater(t, latN, origin.Lat)
	assert.Equal(t, origin.Lon, lonN)

	latE, lonE := origin.LatLon(1000, 0)
	assert.Equal(t, origin.Lat, latE)
	assert.Greater(t, lonE, origin.Lon)
}
