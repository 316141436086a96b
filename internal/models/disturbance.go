package models

import (
	"github.com/san-kum/sixdof/internal/sim"
	"github.com/san-kum/sixdof/internal/stochastic"
)

// Disturbance is a sim.Controller producing a three-axis Gauss-Markov
// acceleration. Each axis is an independent channel drawn once per step
// from one generator, so a Disturbance belongs to a single run.
type Disturbance struct {
	gen      *stochastic.Generator
	channels [3]stochastic.MarkovChannel
	dt       float64
	started  bool
	last     sim.Control
	lastTime float64
}

// NewDisturbance returns a disturbance with standard deviation sigma
// (m/s^2), correlation coefficient bcor (1/s) and step dt (s).
func NewDisturbance(seed int64, sigma, bcor, dt float64) *Disturbance {
	d := &Disturbance{gen: stochastic.New(seed), dt: dt}
	for i := range d.channels {
		d.channels[i] = stochastic.MarkovChannel{Sigma: sigma, Bcor: bcor}
	}
	return d
}

// Compute returns the disturbance at time t. Repeated calls at the same
// time return the same value.
func (d *Disturbance) Compute(x sim.State, t float64) sim.Control {
	if d.started && t == d.lastTime {
		return d.last
	}
	u := make(sim.Control, len(d.channels))
	for i := range d.channels {
		u[i] = d.channels[i].Next(d.gen, t, d.dt)
	}
	d.started, d.last, d.lastTime = true, u, t
	return u
}
