// Package integrators advances sim states by one fixed step and provides
// the trapezoidal update used to integrate individual state derivatives.
package integrators

import "github.com/san-kum/sixdof/internal/sim"

// Euler is the explicit first-order stepper, selected as "euler". Its
// update is also the predictor of ModifiedEuler.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

// Step returns x + dt*f(x, u, t).
func (e *Euler) Step(dyn sim.Dynamics, x sim.State, u sim.Control, t, dt float64) sim.State {
	return eulerStep(make(sim.State, len(x)), x, dyn.Derivative(x, u, t), dt)
}

// eulerStep writes x + dt*d into dst, which must be as long as x.
func eulerStep(dst, x, d sim.State, dt float64) sim.State {
	for i := range x {
		dst[i] = x[i] + dt*d[i]
	}
	return dst
}
