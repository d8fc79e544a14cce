// Package planner exposes a single entry point gluing the graph-search
// core to a concrete environment (spec.md §4.11, C13) — what callers
// outside this module actually import.
package planner

import (
	"github.com/yugo1103/motion-primitive-library/domain"
	"github.com/yugo1103/motion-primitive-library/pkg/engine/astar"
	"github.com/yugo1103/motion-primitive-library/pkg/engine/lpastar"
	"github.com/yugo1103/motion-primitive-library/pkg/environment"
	"github.com/yugo1103/motion-primitive-library/pkg/searchcore"
	"github.com/yugo1103/motion-primitive-library/pkg/trajectory"
)

// Options configures a Planner's search behavior (spec.md §6).
type Options struct {
	Eps       float64
	Dt        float64
	MaxExpand int
	MaxT      float64
}

// Trajectory is a planned run's output: the ordered primitives and the
// cost LPA*/A* settled on for the goal node reached.
type Trajectory[K comparable, C searchcore.Coord, P any] struct {
	Primitives []P
	Cost       float64
	Expansions int
}

// Planner wraps a StateSpace and an Environment behind Plan/Replan, the
// two operations spec.md §4.11 names.
type Planner[K comparable, C searchcore.Coord, P any] struct {
	ss  *searchcore.StateSpace[K, C, P]
	env environment.Environment[K, C, P]
	opt Options
}

// New builds a Planner. Plan always runs A*, Replan always runs LPA*,
// both against the same shared StateSpace so either can resume the
// other's frontier.
func New[K comparable, C searchcore.Coord, P any](env environment.Environment[K, C, P], opt Options) *Planner[K, C, P] {
	ss := searchcore.NewStateSpace[K, C, P](searchcore.ModeAStar, opt.Eps, opt.Dt)
	return &Planner[K, C, P]{ss: ss, env: env, opt: opt}
}

// Plan runs a single-shot weighted A* search from (startCoord, startKey)
// (spec.md §4.4) and reconstructs the resulting trajectory.
func (p *Planner[K, C, P]) Plan(startCoord C, startKey K) (Trajectory[K, C, P], error) {
	p.ss.SetMode(searchcore.ModeAStar)
	res, err := astar.Search[K, C, P](p.ss, startCoord, startKey, p.env, astar.Options{
		MaxExpand: p.opt.MaxExpand,
		MaxT:      p.opt.MaxT,
	})
	if err != nil {
		return Trajectory[K, C, P]{}, err
	}
	return p.reconstruct(res.Goal, startKey, res.Expansions)
}

// Replan runs LPA* (spec.md §4.5) reusing the façade's StateSpace, so a
// caller who mutates the environment (or calls NotifyEdgeCostChanged)
// between calls gets incremental re-expansion rather than a cold start.
func (p *Planner[K, C, P]) Replan(startCoord C, startKey K) (Trajectory[K, C, P], error) {
	p.ss.SetMode(searchcore.ModeLPAStar)
	res, err := lpastar.Search[K, C, P](p.ss, startCoord, startKey, p.env, lpastar.Options{
		MaxExpand: p.opt.MaxExpand,
		MaxT:      p.opt.MaxT,
	})
	if err != nil {
		return Trajectory[K, C, P]{}, err
	}
	return p.reconstruct(res.Goal, startKey, p.ss.ExpandIteration())
}

// NotifyEdgeCostChanged invalidates n's cached consistency so the next
// Replan call re-derives its rhs from its current predecessors, per
// LPA*'s incremental re-planning contract (spec.md §4.5).
func (p *Planner[K, C, P]) NotifyEdgeCostChanged(key K, isStart bool) {
	n, ok := p.ss.Lookup(key)
	if !ok {
		return
	}
	p.ss.UpdateNode(n, isStart)
}

// StateSpace exposes the façade's underlying StateSpace for callers
// that need direct access (e.g. rendering or archiving a run).
func (p *Planner[K, C, P]) StateSpace() *searchcore.StateSpace[K, C, P] {
	return p.ss
}

func (p *Planner[K, C, P]) reconstruct(goal *searchcore.Node[K, C], startKey K, expansions int) (Trajectory[K, C, P], error) {
	if goal == nil {
		return Trajectory[K, C, P]{}, domain.WrapErrorf(nil, domain.ErrQueueExhausted, "search returned no goal node")
	}
	prims, err := trajectory.Reconstruct[K, C, P](p.ss, goal, startKey, p.env)
	return Trajectory[K, C, P]{Primitives: prims, Cost: goal.G, Expansions: expansions}, err
}
