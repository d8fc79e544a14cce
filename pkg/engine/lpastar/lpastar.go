// Package lpastar implements Lifelong Planning A* (spec.md §4.5): an
// incremental search that reuses a StateSpace's g/rhs bookkeeping across
// successive calls so that only the locally-inconsistent region of the
// search graph re-expands when the environment's edge costs change.
package lpastar

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
	// MaxT caps coord.t; <= 0 means unbounded (spec §4.5 Initialization).
	MaxT float64
}

// Result is the outcome of one Search call.
type Result[K comparable, C searchcore.Coord] struct {
	GoalG float64
	Goal  *searchcore.Node[K, C]
}

// Search runs LPA* over ss starting from (startCoord, startKey). ss is
// expected to be reused across calls: a caller that mutates the
// environment between calls and re-invokes UpdateNode on the affected
// nodes gets incremental re-planning — only nodes whose g != rhs are
// ever re-queued. Successors are queried from env only on the visit that
// fills a node's empty SuccEdges cache; edges already cached are not
// re-queried when the environment changes.
func Search[K comparable, C searchcore.Coord, P any](
	ss *searchcore.StateSpace[K, C, P],
	startCoord C,
	startKey K,
	env environment.Environment[K, C, P],
	opts Options,
) (Result[K, C], error) {

	if opts.MaxT > 0 {
		ss.MaxT = opts.MaxT
	} else {
		ss.MaxT = math.Inf(1)
	}

	start, startExists := ss.Lookup(startKey)
	if !startExists {
		start = ss.GetOrCreate(startKey, startCoord, env)
		start.Rhs = 0
		ss.Push(start)
	}

	goalNode := previousGoalCandidate(ss, env)

	for !ss.Empty() && (ss.Less(ss.Top(), goalNode) || goalNode.Rhs != goalNode.G) {
		if opts.MaxExpand > 0 && ss.ExpandIteration() >= opts.MaxExpand {
			return Result[K, C]{GoalG: math.Inf(1)}, domain.WrapErrorf(nil, domain.ErrExpansionBudgetExhausted, "expansion budget of %d exhausted before reaching local consistency", opts.MaxExpand)
		}

		curr := ss.Pop()
		curr.Closed = true

		isStart := curr.Key == startKey
		if curr.G > curr.Rhs {
			// locally over-consistent: settle g and leave curr popped.
			curr.G = curr.Rhs
		} else {
			// locally under-consistent (or g == rhs == +Inf): invalidate
			// and let UpdateNode decide whether curr re-enters the queue.
			curr.G = math.Inf(1)
			ss.UpdateNode(curr, isStart)
		}

		if len(curr.SuccEdges) == 0 {
			for _, s := range env.Successors(curr.Coord) {
				curr.SuccEdges = append(curr.SuccEdges, searchcore.SuccEdge[K, C]{
					SuccKey:    s.Key,
					SuccCoord:  s.Coord,
					ActionID:   s.ActionID,
					ActionCost: s.ActionCost,
				})
			}
			curr.MarkExplored()
		}

		var freshThisVisit []environment.Successor[K, C]
		if curr.WasExploredThisVisit() {
			// Refresh every cache entry in case the environment's costs
			// changed between the one-shot query above and now (spec
			// §4.5 step 4's documented re-query-and-overwrite).
			freshThisVisit = env.Successors(curr.Coord)
		}

		for i, se := range curr.SuccEdges {
			if freshThisVisit != nil && i < len(freshThisVisit) {
				se = searchcore.SuccEdge[K, C]{
					SuccKey:    freshThisVisit[i].Key,
					SuccCoord:  freshThisVisit[i].Coord,
					ActionID:   freshThisVisit[i].ActionID,
					ActionCost: freshThisVisit[i].ActionCost,
				}
				curr.SuccEdges[i] = se
			}

			sn := ss.GetOrCreate(se.SuccKey, se.SuccCoord, env)
			if !hasPredFrom(sn, curr.Key) {
				sn.PredEdges = append(sn.PredEdges, searchcore.PredEdge[K]{
					PredKey:    curr.Key,
					ActionID:   se.ActionID,
					ActionCost: se.ActionCost,
				})
			}
			ss.UpdateNode(sn, sn.Key == startKey)
		}
		curr.ClearExploredThisVisit()

		if env.IsGoal(curr.Coord) || (opts.MaxT > 0 && curr.Coord.TimeT() >= opts.MaxT) {
			goalNode = curr
		}
	}

	if math.IsInf(goalNode.G, 1) {
		return Result[K, C]{GoalG: math.Inf(1)}, domain.WrapErrorf(nil, domain.ErrQueueExhausted, "no reachable goal found within the explored horizon")
	}
	return Result[K, C]{GoalG: goalNode.G, Goal: goalNode}, nil
}

func hasPredFrom[K comparable, C searchcore.Coord](n *searchcore.Node[K, C], predKey K) bool {
	for _, e := range n.PredEdges {
		if e.PredKey == predKey {
			return true
		}
	}
	return false
}

// previousGoalCandidate seeds goal_node from the previous best_child
// tail if it is still a goal state (spec §4.5 Initialization); otherwise
// a sentinel node with g = rhs = +Inf. The sentinel satisfies "rhs == g",
// but its key is (+Inf, +Inf), so any queued node with a finite key sorts
// before it and keeps the termination test false until a real goal is
// found.
func previousGoalCandidate[K comparable, C searchcore.Coord, P any](ss *searchcore.StateSpace[K, C, P], env environment.Environment[K, C, P]) *searchcore.Node[K, C] {
	if len(ss.BestChild) > 0 {
		tail := ss.BestChild[len(ss.BestChild)-1]
		if env.IsGoal(tail.Coord) {
			return tail
		}
	}
	return sentinelGoal[K, C]()
}

func sentinelGoal[K comparable, C searchcore.Coord]() *searchcore.Node[K, C] {
	var zero C
	n := searchcore.NewNode[K, C](zeroKey[K](), zero, 0)
	n.HeapIndex = -1
	return n
}

func zeroKey[K comparable]() K {
	var z K
	return z
}
