package integrators

import "github.com/san-kum/sixdof/internal/sim"

// RK4 is the classical fourth-order Runge-Kutta stepper. It reuses its
// stage buffers between steps and must not be shared across goroutines.
type RK4 struct {
	k1, k2, k3, k4 sim.State
	scratch        sim.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(sim.State, n)
		r.k2 = make(sim.State, n)
		r.k3 = make(sim.State, n)
		r.k4 = make(sim.State, n)
		r.scratch = make(sim.State, n)
	}
}

// stage evaluates the derivative at x + h*k into dst.
func (r *RK4) stage(dst sim.State, dyn sim.Dynamics, x, k sim.State, u sim.Control, t, h float64) {
	for i := range x {
		r.scratch[i] = x[i] + h*k[i]
	}
	copy(dst, dyn.Derivative(r.scratch, u, t+h))
}

func (r *RK4) Step(dyn sim.Dynamics, x sim.State, u sim.Control, t, dt float64) sim.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, dyn.Derivative(x, u, t))
	r.stage(r.k2, dyn, x, r.k1, u, t, dt/2)
	r.stage(r.k3, dyn, x, r.k2, u, t, dt/2)
	r.stage(r.k4, dyn, x, r.k3, u, t, dt)

	result := make(sim.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return result
}
