// Package gridenv is the reference Environment implementation (spec.md
// §4.3/§4.7): a 2D occupancy grid with a small, fixed xy-yaw motion
// primitive set. It exists to exercise and test the graph-search core —
// the core itself never imports this package.
package gridenv

import (
	"fmt"

	"github.com/golang/geo/s1"
)

// NumYawBuckets discretizes heading into 8 compass directions. Forward
// primitives move one cell along the current bucket's unit vector;
// turn primitives rotate in place.
const NumYawBuckets = 8

var yawUnit = [NumYawBuckets][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// Key canonically identifies one discretized (x, y, yaw, time-bucket)
// state. It is a plain comparable struct, so Go's map/== machinery gives
// it equality and hashing for free (spec.md §4.1).
type Key struct {
	X, Y, Yaw, TBucket int
}

func (k Key) String() string {
	return fmt.Sprintf("(%d,%d,yaw=%d,t=%d)", k.X, k.Y, k.Yaw, k.TBucket)
}

// Coord is the continuous state payload bound to a Key: cell-center
// position in world units, heading in radians, and continuous time. Only
// T is read by the core (via TimeT); the rest is gridenv/trajectory's.
type Coord struct {
	X, Y float64
	Yaw  s1.Angle
	T    float64
}

// TimeT satisfies searchcore.Coord.
func (c Coord) TimeT() float64 { return c.T }
