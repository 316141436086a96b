package integrators

import (
	"fmt"

	"github.com/san-kum/sixdof/internal/matrix"
	"github.com/san-kum/sixdof/internal/sim"
)

// Integrate advances y by one trapezoidal step of size h from the previous
// derivative d and the new derivative dNew.
func Integrate(dNew, d, y, h float64) float64 {
	return y + (dNew+d)*h/2
}

// IntegrateMatrix applies Integrate element-wise. All three operands must
// share one shape; otherwise the error wraps matrix.ErrDimensionMismatch.
func IntegrateMatrix(dNew, d, y *matrix.Matrix, h float64) (*matrix.Matrix, error) {
	r, c := y.Dims()
	r1, c1 := dNew.Dims()
	r2, c2 := d.Dims()
	if r != r1 || r != r2 || c != c1 || c != c2 {
		return nil, fmt.Errorf("integrate: y %dx%d, dNew %dx%d, d %dx%d: %w", r, c, r1, c1, r2, c2, matrix.ErrDimensionMismatch)
	}
	out := matrix.New(r, c)
	yd, nd, od := y.RawData(), dNew.RawData(), d.RawData()
	for i := range yd {
		out.SetVec(i, Integrate(nd[i], od[i], yd[i], h))
	}
	return out, nil
}

// ModifiedEuler predicts with an Euler step and corrects with the
// trapezoidal rule on the derivatives at both ends of the step.
type ModifiedEuler struct {
	predicted sim.State
}

func NewModifiedEuler() *ModifiedEuler {
	return &ModifiedEuler{}
}

func (m *ModifiedEuler) Step(dyn sim.Dynamics, x sim.State, u sim.Control, t, dt float64) sim.State {
	n := len(x)
	if len(m.predicted) != n {
		m.predicted = make(sim.State, n)
	}

	d := dyn.Derivative(x, u, t)
	eulerStep(m.predicted, x, d, dt)
	dNew := dyn.Derivative(m.predicted, u, t+dt)

	result := make(sim.State, n)
	for i := range x {
		result[i] = Integrate(dNew[i], d[i], x[i], dt)
	}
	return result
}
