package gridenv

import (
	"math"

	"github.com/uber/h3-go/v4"
)

// metersPerDegreeLat is the standard WGS84 equirectangular approximation
// used to convert local tangent-plane meters to a latitude offset; good
// enough for the short ranges a single workspace spans.
const metersPerDegreeLat = 111320.0

// GeoOrigin anchors a workspace's local (x, y) meters to a real-world
// lat/lon point, for the geo-referenced lat/lon motion planning mode
// (spec.md SPEC_FULL DOMAIN STACK: uber/h3-go/v4 spatial bucketing).
// Grid environments that never leave a local tangent plane don't need
// one; GeoObstacleIndex is the only consumer.
type GeoOrigin struct {
	Lat, Lon float64
}

// LatLon converts a workspace-local (x, y) in meters to a lat/lon pair
// anchored at o, using an equirectangular approximation.
func (o GeoOrigin) LatLon(x, y float64) (lat, lon float64) {
	lat = o.Lat + y/metersPerDegreeLat
	metersPerDegreeLon := metersPerDegreeLat * math.Cos(o.Lat*math.Pi/180)
	if metersPerDegreeLon == 0 {
		metersPerDegreeLon = metersPerDegreeLat
	}
	lon = o.Lon + x/metersPerDegreeLon
	return lat, lon
}

// GeoObstacleIndex buckets an Occupancy's obstacles into H3 cells at
// resolution 9, for nearest-obstacle lookups keyed by lat/lon instead of
// workspace-local coordinates — the lookup a geo-referenced deployment
// (the vehicle reports GPS fixes, not local meters) needs before it can
// even ask Occupancy.Collides. Grounded on the teacher's
// GetNearestStreetsFromPointCoord/kRingIndexesArea pattern (pkg/kv's
// road-segment lookup), repurposed here from street segments to
// obstacle discs.
type GeoObstacleIndex struct {
	origin GeoOrigin
	cells  map[h3.Cell][]Obstacle
}

const geoIndexResolution = 9

// NewGeoObstacleIndex buckets every obstacle currently registered in occ
// into its H3 cell, anchored at origin.
func NewGeoObstacleIndex(origin GeoOrigin, occ *Occupancy) *GeoObstacleIndex {
	idx := &GeoObstacleIndex{origin: origin, cells: make(map[h3.Cell][]Obstacle)}
	for _, ob := range occ.Obstacles() {
		lat, lon := origin.LatLon(ob.X, ob.Y)
		cell := h3.LatLngToCell(h3.NewLatLng(lat, lon), geoIndexResolution)
		idx.cells[cell] = append(idx.cells[cell], ob)
	}
	return idx
}

// Nearby returns every indexed obstacle bucketed in the H3 grid disk
// around (lat, lon), growing the disk radius until its area covers a
// circle of radiusKm (the teacher's kRingIndexesArea sizing, unchanged).
// Obstacles are not filtered by their exact distance, so ones in the
// disk's outer cells somewhat beyond radiusKm are returned too.
func (idx *GeoObstacleIndex) Nearby(lat, lon, radiusKm float64) []Obstacle {
	home := h3.LatLngToCell(h3.NewLatLng(lat, lon), geoIndexResolution)
	searchArea := math.Pi * radiusKm * radiusKm
	originArea := h3.CellAreaKm2(home)

	radius := 0
	diskArea := originArea
	for diskArea < searchArea {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originArea
	}

	var out []Obstacle
	for _, cell := range h3.GridDisk(home, radius) {
		out = append(out, idx.cells[cell]...)
	}
	return out
}
