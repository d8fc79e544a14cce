package gridenv

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/yugo1103/motion-primitive-library/domain"
	"github.com/yugo1103/motion-primitive-library/pkg/environment"
)

// ActionRecord is the forward_action result type: a replayable primitive
// identified by the action that produced it plus the pose it starts
// from, which trajectory.Reconstruct threads straight into the returned
// primitive sequence (spec.md §4.6/§4.7).
type ActionRecord struct {
	From     Coord
	To       Coord
	ActionID int
	Name     string
}

// GridEnvironment implements environment.Environment[Key, Coord,
// ActionRecord] over an Occupancy workspace and a fixed MotionModel
// (spec.md C8/C11; grounded on the teacher's alg/map.go successor
// enumeration pattern, generalized from road-graph adjacency to
// primitive-based adjacency).
type GridEnvironment struct {
	Occ        *Occupancy
	Model      *MotionModel
	CellSize   float64
	Clearance  float64
	GoalX      float64
	GoalY      float64
	GoalRadius float64
	GoalYaw    int // -1 means any heading satisfies the goal
}

// NewGridEnvironment wires an Occupancy and MotionModel into an
// Environment usable by astar.Search / lpastar.Search.
func NewGridEnvironment(occ *Occupancy, model *MotionModel, cellSize, clearance float64) *GridEnvironment {
	return &GridEnvironment{Occ: occ, Model: model, CellSize: cellSize, Clearance: clearance}
}

// SetGoal configures the goal predicate: within goalRadius world units
// of (x, y), and facing yaw bucket goalYaw unless goalYaw < 0.
func (g *GridEnvironment) SetGoal(x, y float64, goalRadius float64, goalYaw int) {
	g.GoalX, g.GoalY, g.GoalRadius, g.GoalYaw = x, y, goalRadius, goalYaw
}

// CoordOf converts a discretized Key to its world-frame Coord.
func (g *GridEnvironment) CoordOf(k Key) Coord {
	return Coord{
		X:   float64(k.X) * g.CellSize,
		Y:   float64(k.Y) * g.CellSize,
		Yaw: YawRadians(k.Yaw),
		T:   float64(k.TBucket) * g.Model.Dt,
	}
}

// IsGoal reports whether c lies within the configured goal tolerance.
func (g *GridEnvironment) IsGoal(c Coord) bool {
	d := r2.Point{X: c.X - g.GoalX, Y: c.Y - g.GoalY}.Norm()
	if d > g.GoalRadius {
		return false
	}
	if g.GoalYaw < 0 {
		return true
	}
	return AngleBucketOf(c.Yaw) == g.GoalYaw
}

// Heuristic is Euclidean distance to the goal point, admissible for any
// motion model whose per-step cost is at least the distance covered
// (spec.md §4.7). r2.Point is golang/geo's plain-Euclidean sibling to
// the s1/s2 spherical types the rest of the package uses for headings.
func (g *GridEnvironment) Heuristic(c Coord) float64 {
	return r2.Point{X: c.X, Y: c.Y}.Sub(r2.Point{X: g.GoalX, Y: g.GoalY}).Norm()
}

// Successors enumerates the fixed primitive library from c, rejecting
// any primitive whose resulting cell is out of bounds or collides with
// an obstacle along the swept path (spec.md §4.11).
func (g *GridEnvironment) Successors(c Coord) []environment.Successor[Key, Coord] {
	yawBucket := AngleBucketOf(c.Yaw)
	cellX := int(math.Round(c.X / g.CellSize))
	cellY := int(math.Round(c.Y / g.CellSize))
	tBucket := int(math.Round(c.T / g.Model.Dt))

	out := make([]environment.Successor[Key, Coord], 0, len(g.Model.Primitives))
	for _, p := range g.Model.Primitives {
		dx, dy, newYaw := g.Model.Apply(p, yawBucket)
		nx, ny := cellX+dx, cellY+dy
		nk := Key{X: nx, Y: ny, Yaw: newYaw, TBucket: tBucket + 1}
		nc := g.CoordOf(nk)

		cost := p.BaseCost
		if g.Occ != nil {
			if !g.Occ.InBounds(nc.X, nc.Y) || g.Occ.SegmentCollides(c.X, c.Y, nc.X, nc.Y, g.Clearance, g.CellSize/4) {
				cost = math.Inf(1)
			}
		}

		out = append(out, environment.Successor[Key, Coord]{
			Key:        nk,
			Coord:      nc,
			ActionCost: cost,
			ActionID:   p.ID,
		})
	}
	return out
}

// ForwardAction replays primitive actionID from c, returning the
// ActionRecord trajectory.Reconstruct threads into its primitive output.
func (g *GridEnvironment) ForwardAction(c Coord, actionID int) (ActionRecord, error) {
	for _, p := range g.Model.Primitives {
		if p.ID != actionID {
			continue
		}
		yawBucket := AngleBucketOf(c.Yaw)
		dx, dy, newYaw := g.Model.Apply(p, yawBucket)
		to := Coord{
			X:   c.X + float64(dx)*g.CellSize,
			Y:   c.Y + float64(dy)*g.CellSize,
			Yaw: YawRadians(newYaw),
			T:   c.T + g.Model.Dt,
		}
		return ActionRecord{From: c, To: to, ActionID: actionID, Name: p.Name}, nil
	}
	return ActionRecord{}, domain.WrapErrorf(nil, domain.ErrInfeasibleEdge, "unknown action id %d", actionID)
}
