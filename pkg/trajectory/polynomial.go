package trajectory

import (
	"errors"
)

// SampledState is one instant of a fitted polynomial: position, velocity,
// and acceleration per axis. Axis count is whatever the caller's Coord
// uses (2 for planar, 3 for full 3D motion primitives).
type SampledState struct {
	Pos []float64
	Vel []float64
	Acc []float64
}

// axisPoly holds the six coefficients of one axis's quintic fit, in
// increasing power order (c0 + c1*t + ... + c5*t^5).
type axisPoly struct {
	c [6]float64
}

func (a axisPoly) eval(t float64) (pos, vel, acc float64) {
	t2 := t * t
	t3 := t2 * t
	t4 := t3 * t
	t5 := t4 * t
	pos = a.c[0] + a.c[1]*t + a.c[2]*t2 + a.c[3]*t3 + a.c[4]*t4 + a.c[5]*t5
	vel = a.c[1] + 2*a.c[2]*t + 3*a.c[3]*t2 + 4*a.c[4]*t3 + 5*a.c[5]*t4
	acc = 2*a.c[2] + 6*a.c[3]*t + 12*a.c[4]*t2 + 20*a.c[5]*t3
	return
}

// Polynomial is a fitted quintic segment, one axisPoly per axis, valid on
// t ∈ [0, Dt].
type Polynomial struct {
	axes []axisPoly
	Dt   float64
}

// SolveSegment fits a closed-form quintic per axis matching from's and
// to's position/velocity/acceleration boundary conditions at t=0 and
// t=dt — the standard minimum-jerk boundary-value solution (e.g.
// Mellinger & Kumar), which needs no iterative solver. This is the one
// place this repository reaches for plain math/stdlib rather than a
// pack dependency: no example repo in the corpus ships a polynomial or
// spline-fitting library, and a 6x6 boundary-condition solve has a
// closed form that a general LP/optimization dependency would be
// overkill for.
func SolveSegment(from, to SampledState, dt float64) (Polynomial, error) {
	if dt <= 0 {
		return Polynomial{}, errors.New("trajectory: dt must be > 0")
	}
	n := len(from.Pos)
	if len(from.Vel) != n || len(from.Acc) != n || len(to.Pos) != n || len(to.Vel) != n || len(to.Acc) != n {
		return Polynomial{}, errors.New("trajectory: from/to axis counts must match")
	}

	axes := make([]axisPoly, n)
	for i := 0; i < n; i++ {
		axes[i] = fitAxis(from.Pos[i], from.Vel[i], from.Acc[i], to.Pos[i], to.Vel[i], to.Acc[i], dt)
	}
	return Polynomial{axes: axes, Dt: dt}, nil
}

func fitAxis(p0, v0, a0, p1, v1, a1, T float64) axisPoly {
	T2 := T * T
	T3 := T2 * T
	T4 := T3 * T
	T5 := T4 * T

	c0 := p0
	c1 := v0
	c2 := a0 / 2

	c3 := (20*p1 - 20*p0 - (8*v1+12*v0)*T - (3*a0-a1)*T2) / (2 * T3)
	c4 := (30*p0 - 30*p1 + (14*v1+16*v0)*T + (3*a0-2*a1)*T2) / (2 * T4)
	c5 := (12*p1 - 12*p0 - (6*v1+6*v0)*T - (a0-a1)*T2) / (2 * T5)

	return axisPoly{c: [6]float64{c0, c1, c2, c3, c4, c5}}
}

// Sample evaluates the polynomial at t, clamped to [0, Dt].
func (p Polynomial) Sample(t float64) SampledState {
	if t < 0 {
		t = 0
	}
	if t > p.Dt {
		t = p.Dt
	}
	out := SampledState{
		Pos: make([]float64, len(p.axes)),
		Vel: make([]float64, len(p.axes)),
		Acc: make([]float64, len(p.axes)),
	}
	for i, a := range p.axes {
		pos, vel, acc := a.eval(t)
		out.Pos[i] = pos
		out.Vel[i] = vel
		out.Acc[i] = acc
	}
	return out
}
