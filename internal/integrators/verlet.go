package integrators

import "github.com/san-kum/sixdof/internal/sim"

// Verlet is velocity Verlet for states laid out as positions followed by
// velocities of equal length. The derivative's second half must be the
// acceleration and may depend on position only.
type Verlet struct {
	scratch sim.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dyn sim.Dynamics, x sim.State, u sim.Control, t, dt float64) sim.State {
	n := len(x)
	half := n / 2
	if len(v.scratch) != n {
		v.scratch = make(sim.State, n)
	}

	acc := dyn.Derivative(x, u, t)
	result := make(sim.State, n)
	for i := 0; i < half; i++ {
		result[i] = x[i] + x[half+i]*dt + 0.5*acc[half+i]*dt*dt
		v.scratch[i] = result[i]
		v.scratch[half+i] = x[half+i]
	}

	accNew := dyn.Derivative(v.scratch, u, t+dt)
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + (acc[half+i]+accNew[half+i])*dt/2
	}
	return result
}
