package models

import (
	"github.com/san-kum/sixdof/internal/geodesy"
	"github.com/san-kum/sixdof/internal/orbit"
	"github.com/san-kum/sixdof/internal/sim"
)

// Orbiter is a point mass under WGS-84 gravity with the C20 correction.
// The control vector, when present, is an additional inertial
// acceleration in m/s^2.
type Orbiter struct{}

func NewOrbiter() *Orbiter {
	return &Orbiter{}
}

func (o *Orbiter) StateDim() int   { return stateDim }
func (o *Orbiter) ControlDim() int { return 3 }

func (o *Orbiter) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	sbii, _ := PosVel(x)
	g := geodesy.Grav84Inertial(sbii, t)

	dx := sim.State{x[3], x[4], x[5], g.Vec(0), g.Vec(1), g.Vec(2)}
	for i := 0; i < 3 && i < len(u); i++ {
		dx[3+i] += u[i]
	}
	return dx
}

// Energy is the two-body specific mechanical energy.
func (o *Orbiter) Energy(x sim.State) float64 {
	return ToOrbit(x).Energy()
}

// Done stops the run once the vehicle is below the ellipsoid.
func (o *Orbiter) Done(x sim.State, t float64) bool {
	return Geodetic(x, t).Alt < 0
}

// Elements returns the osculating elements of x.
func (o *Orbiter) Elements(x sim.State) (orbit.Elements, orbit.Degeneracy) {
	sbii, vbii := PosVel(x)
	return orbit.OrbIn(sbii, vbii)
}
