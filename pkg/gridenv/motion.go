package gridenv

import (
	"math"

	"github.com/golang/geo/s1"
)

// Primitive is one fixed entry in the motion primitive library: either a
// forward step along the current heading or an in-place turn. ID is
// stable across calls so ForwardAction can look a primitive back up by
// index (spec.md §4.7 forward_action).
type Primitive struct {
	ID       int
	DX, DY   int // not read by Apply: forward steps take the yaw bucket's unit vector
	DYaw     int // yaw bucket delta, mod NumYawBuckets
	Name     string
	BaseCost float64
}

// MotionModel is the fixed primitive library shared by every Coord in a
// GridEnvironment: one forward step per yaw bucket plus left/right
// in-place turns. This is the "small, fixed library of parameterized
// maneuvers" spec.md §3 describes Action as an index into.
type MotionModel struct {
	Dt         float64
	Primitives []Primitive
}

// NewMotionModel builds the standard forward+turn primitive set. dt is
// the time each primitive consumes, used to populate Coord.T.
func NewMotionModel(dt float64) *MotionModel {
	prims := []Primitive{
		{ID: 0, DX: 0, DY: 0, DYaw: 0, Name: "forward", BaseCost: 1.0},
		{ID: 1, DX: 0, DY: 0, DYaw: 1, Name: "turn_left", BaseCost: 0.6},
		{ID: 2, DX: 0, DY: 0, DYaw: -1, Name: "turn_right", BaseCost: 0.6},
	}
	return &MotionModel{Dt: dt, Primitives: prims}
}

// Apply resolves a primitive at a given yaw bucket into the concrete
// (dx, dy, newYaw) it produces; forward steps use the yaw bucket's unit
// vector, turns leave position unchanged.
func (m *MotionModel) Apply(p Primitive, yaw int) (dx, dy, newYaw int) {
	newYaw = ((yaw+p.DYaw)%NumYawBuckets + NumYawBuckets) % NumYawBuckets
	if p.Name == "forward" {
		u := yawUnit[yaw]
		return u[0], u[1], newYaw
	}
	return 0, 0, newYaw
}

// YawRadians converts a yaw bucket to a heading, 0 = +X axis, as an
// s1.Angle — the same angular type golang/geo uses throughout its API,
// kept here rather than a bare float64 so yaw arithmetic elsewhere in
// the package goes through s1's radian-based representation.
func YawRadians(bucket int) s1.Angle {
	return s1.Angle(2 * math.Pi * float64(bucket) / float64(NumYawBuckets))
}

// AngleBucketOf quantizes a heading back to the nearest yaw bucket,
// wrapping negative or >2pi headings into [0, 2pi) first.
func AngleBucketOf(yaw s1.Angle) int {
	norm := math.Mod(yaw.Radians(), 2*math.Pi)
	if norm < 0 {
		norm += 2 * math.Pi
	}
	b := int(math.Round(norm / (2 * math.Pi) * float64(NumYawBuckets)))
	return b % NumYawBuckets
}
