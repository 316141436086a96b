// Package metrics accumulates scalar figures of merit over a simulation
// run. Every metric implements sim.Metric.
package metrics

import (
	"math"

	"github.com/san-kum/sixdof/internal/atmosphere"
	"github.com/san-kum/sixdof/internal/geodesy"
	"github.com/san-kum/sixdof/internal/models"
	"github.com/san-kum/sixdof/internal/sim"
)

// MaxAltitude is the highest WGS-84 altitude seen, in m.
type MaxAltitude struct {
	max     float64
	samples int
}

func NewMaxAltitude() *MaxAltitude { return &MaxAltitude{} }

func (m *MaxAltitude) Name() string { return "max_altitude" }

func (m *MaxAltitude) Observe(x sim.State, u sim.Control, t float64) {
	alt := models.Geodetic(x, t).Alt
	if m.samples == 0 || alt > m.max {
		m.max = alt
	}
	m.samples++
}

func (m *MaxAltitude) Value() float64 { return m.max }
func (m *MaxAltitude) Reset()         { *m = MaxAltitude{} }

// GroundRange is the great-circle distance in km from the first observed
// position to the latest one.
type GroundRange struct {
	start, last geodesy.Geodetic
	samples     int
}

func NewGroundRange() *GroundRange { return &GroundRange{} }

func (g *GroundRange) Name() string { return "ground_range_km" }

func (g *GroundRange) Observe(x sim.State, u sim.Control, t float64) {
	pos := models.Geodetic(x, t)
	if g.samples == 0 {
		g.start = pos
	}
	g.last = pos
	g.samples++
}

func (g *GroundRange) Value() float64 {
	if g.samples == 0 {
		return 0
	}
	return geodesy.Distance(g.start.Lon, g.start.Lat, g.last.Lon, g.last.Lat)
}

func (g *GroundRange) Reset() { *g = GroundRange{} }

// EnergyDrift is the largest relative departure of the dynamics' energy
// from its first observed value.
type EnergyDrift struct {
	initialEnergy float64
	maxDrift      float64
	samples       int
	dyn           sim.EnergyComputer
}

// NewEnergyDrift returns nil if dyn has no energy.
func NewEnergyDrift(dyn sim.Dynamics) *EnergyDrift {
	ec, ok := dyn.(sim.EnergyComputer)
	if !ok {
		return nil
	}
	return &EnergyDrift{dyn: ec}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(x sim.State, u sim.Control, t float64) {
	energy := e.dyn.Energy(x)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// ControlEffort is the mean Euclidean norm of the control vector, in the
// control's units.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(x sim.State, u sim.Control, t float64) {
	var sq float64
	for _, v := range u {
		sq += v * v
	}
	c.sum += math.Sqrt(sq)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() { *c = ControlEffort{} }

// AirDataSource is implemented by dynamics flying through the atmosphere.
type AirDataSource interface {
	AirData(x sim.State, t float64) (atmosphere.Conditions, atmosphere.AirData)
}

// MaxDynamicPressure is the peak dynamic pressure in Pa.
type MaxDynamicPressure struct {
	src AirDataSource
	max float64
}

func NewMaxDynamicPressure(src AirDataSource) *MaxDynamicPressure {
	return &MaxDynamicPressure{src: src}
}

func (q *MaxDynamicPressure) Name() string { return "max_q" }

func (q *MaxDynamicPressure) Observe(x sim.State, u sim.Control, t float64) {
	_, ad := q.src.AirData(x, t)
	q.max = math.Max(q.max, ad.Dynamic)
}

func (q *MaxDynamicPressure) Value() float64 { return q.max }
func (q *MaxDynamicPressure) Reset()         { q.max = 0 }
