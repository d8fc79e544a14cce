// Package environment declares the external collaborator the graph-search
// core is built against (spec.md §4.3/§6). Nothing in this repository
// implements collision checking, occupancy storage, or forward simulation
// inside this package — those live in pkg/gridenv, one concrete
// implementation of the interface below. The core only ever depends on
// the interface.
package environment

// Successor is one candidate edge out of a state, as enumerated by
// Environment.Successors. ActionCost of +Inf marks an infeasible
// primitive; engines skip (A*) or let it raise rhs (LPA*) accordingly.
type Successor[K comparable, C any] struct {
	Key        K
	Coord      C
	ActionCost float64
	ActionID   int
}

// Environment is the oracle the search engines drive. K is the
// environment's Key type, C its continuous Coord payload, and P the
// Primitive type ForwardAction hands back for trajectory reconstruction.
// Implementations are expected to be pure and fast: the core invokes them
// synchronously and never retries or times out a call.
type Environment[K comparable, C any, P any] interface {
	// IsGoal reports whether c satisfies the planner's goal predicate.
	IsGoal(c C) bool

	// Heuristic estimates the cost from c to the nearest goal. It must be
	// admissible for A* with eps=1 to be optimal, and consistent for the
	// eps>1 bound in spec.md §8 invariant 5 to hold.
	Heuristic(c C) float64

	// Successors enumerates every kinodynamically reachable next state
	// from c, including infeasible ones (ActionCost = +Inf).
	Successors(c C) []Successor[K, C]

	// ForwardAction reproduces the motion primitive that action ActionID
	// traverses from c, for trajectory reconstruction.
	ForwardAction(c C, actionID int) (P, error)
}
