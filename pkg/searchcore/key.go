// Package searchcore holds the graph-search substrate shared by the A* and
// LPA* engines: the discretized-state Node record and the StateSpace that
// owns both the Node table and the priority queue.
//
// A Key is any comparable value the environment produces to canonically
// name one discretized state (typically a struct of quantized position,
// velocity, acceleration, yaw, and a time bucket). Go's `comparable`
// constraint gives Keys equality and hashability for free, so no separate
// Key type is introduced here — callers parameterize every type in this
// package by their own comparable Key type K. A total order on K is never
// required: priority ties are settled by the binary heap's own arrangement
// of its entries (see heap.go), not by Key order; the heap is not stable,
// so equal-priority nodes do not necessarily pop in insertion order.
package searchcore
