// Package astar implements the single-shot weighted A* engine of
// spec.md §4.4 over the shared searchcore substrate.
package astar

import (
	"math"

	"github.com/yugo1103/motion-primitive-library/domain"
	"github.com/yugo1103/motion-primitive-library/pkg/environment"
	"github.com/yugo1103/motion-primitive-library/pkg/searchcore"
)

// Options bounds a single Search call (spec.md §6 configuration options).
type Options struct {
	// MaxExpand caps the number of expansions; <= 0 means unbounded.
	MaxExpand int
	// MaxT caps coord.t; <= 0 means unbounded.
	MaxT float64
}

// Result is the outcome of one Search call.
type Result[K comparable, C searchcore.Coord] struct {
	Goal       *searchcore.Node[K, C]
	Expansions int
}

// Search runs weighted A* over ss starting from (startCoord, startKey),
// using env as the successor/heuristic/goal oracle. If ss's queue is
// already non-empty, no re-initialization happens and the search resumes
// from the existing frontier (spec §4.4 "Initialization").
func Search[K comparable, C searchcore.Coord, P any](
	ss *searchcore.StateSpace[K, C, P],
	startCoord C,
	startKey K,
	env environment.Environment[K, C, P],
	opts Options,
) (Result[K, C], error) {

	if env.IsGoal(startCoord) {
		return Result[K, C]{}, domain.WrapErrorf(nil, domain.ErrAlreadyAtGoal, "start state already satisfies the goal predicate")
	}

	if ss.Empty() {
		start := ss.GetOrCreate(startKey, startCoord, env)
		start.G = 0
		ss.Push(start)
	}

	var curr *searchcore.Node[K, C]
	for {
		if ss.Empty() {
			return Result[K, C]{Expansions: ss.ExpandIteration()}, domain.WrapErrorf(nil, domain.ErrQueueExhausted, "priority queue exhausted before reaching a goal")
		}

		curr = ss.Pop()
		curr.Closed = true

		for _, s := range env.Successors(curr.Coord) {
			if math.IsInf(s.ActionCost, 1) {
				continue // InfeasibleEdge (spec §7): skipped silently in A*
			}

			sn := ss.GetOrCreate(s.Key, s.Coord, env)
			sn.PredEdges = append(sn.PredEdges, searchcore.PredEdge[K]{
				PredKey:    curr.Key,
				ActionID:   s.ActionID,
				ActionCost: s.ActionCost,
			})

			tentative := curr.G + s.ActionCost
			if tentative < sn.G {
				sn.G = tentative
				if sn.Opened && !sn.Closed {
					ss.Fix(sn)
				} else if !sn.Opened {
					ss.Push(sn)
				} else {
					// sn was already closed; an improved g re-opens it
					// implicitly by re-entering the queue. Strict A* with
					// a consistent heuristic never takes this branch —
					// it exists to tolerate inconsistent heuristics under
					// eps > 1 (spec §4.4 note, §9 open question).
					sn.Closed = false
					ss.Push(sn)
				}
			}
		}

		if env.IsGoal(curr.Coord) {
			return Result[K, C]{Goal: curr, Expansions: ss.ExpandIteration()}, nil
		}
		if opts.MaxT > 0 && curr.Coord.TimeT() >= opts.MaxT && !math.IsInf(curr.G, 1) {
			return Result[K, C]{Goal: curr, Expansions: ss.ExpandIteration()}, nil
		}
		if opts.MaxExpand > 0 && ss.ExpandIteration() >= opts.MaxExpand {
			return Result[K, C]{Expansions: ss.ExpandIteration()}, domain.WrapErrorf(nil, domain.ErrExpansionBudgetExhausted, "expansion budget of %d exhausted before reaching a goal", opts.MaxExpand)
		}
	}
}
