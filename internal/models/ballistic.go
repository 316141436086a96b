package models

import (
	"math"

	"github.com/san-kum/sixdof/internal/atmosphere"
	"github.com/san-kum/sixdof/internal/geodesy"
	"github.com/san-kum/sixdof/internal/matrix"
	"github.com/san-kum/sixdof/internal/sim"
	"github.com/san-kum/sixdof/internal/table"
)

// DragTable is the deck entry Ballistic reads its drag coefficient from,
// as a function of Mach number.
const DragTable = "cd"

// Ballistic is a point mass under WGS-84 gravity and aerodynamic drag in
// an atmosphere that rotates with the Earth.
type Ballistic struct {
	Mass    float64 // kg
	RefArea float64 // m^2
	Deck    *table.Deck
}

// DefaultDragDeck is a generic blunt-body drag curve.
func DefaultDragDeck() *table.Deck {
	deck, err := table.NewDeck(table.Table{
		Name: DragTable,
		Axes: [][]float64{{0, 0.6, 0.8, 1.0, 1.2, 1.5, 2, 3, 5, 10}},
		Data: []float64{0.30, 0.30, 0.34, 0.55, 0.62, 0.58, 0.52, 0.45, 0.40, 0.38},
	})
	if err != nil {
		panic(err)
	}
	return deck
}

func NewBallistic() *Ballistic {
	return &Ballistic{
		Mass:    100,
		RefArea: 0.1,
		Deck:    DefaultDragDeck(),
	}
}

func (b *Ballistic) StateDim() int   { return stateDim }
func (b *Ballistic) ControlDim() int { return 3 }

// AirData returns the atmosphere and flow state seen by the vehicle.
func (b *Ballistic) AirData(x sim.State, t float64) (atmosphere.Conditions, atmosphere.AirData) {
	cond, ad, _ := b.flow(x, t)
	return cond, ad
}

// flow also returns the Earth-relative velocity in inertial coordinates.
// Above the atmosphere model the conditions are zero.
func (b *Ballistic) flow(x sim.State, t float64) (atmosphere.Conditions, atmosphere.AirData, *matrix.Matrix) {
	sbii, vbii := PosVel(x)
	vair, err := geodesy.EarthRelativeVelocity(sbii, vbii)
	if err != nil {
		panic(err)
	}
	cond, err := atmosphere.Standard(math.Max(Geodetic(x, t).Alt, 0))
	if err != nil {
		return atmosphere.Conditions{}, atmosphere.AirData{}, vair
	}
	return cond, atmosphere.NewAirData(cond, vair.Absolute()), vair
}

// Derivative adds u, an inertial acceleration in m/s^2, to gravity and
// drag.
func (b *Ballistic) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	sbii, _ := PosVel(x)
	g := geodesy.Grav84Inertial(sbii, t)
	dx := sim.State{x[3], x[4], x[5], g.Vec(0), g.Vec(1), g.Vec(2)}
	for i := 0; i < 3 && i < len(u); i++ {
		dx[3+i] += u[i]
	}

	_, ad, vair := b.flow(x, t)
	if ad.Dynamic == 0 {
		return dx
	}
	cd, err := b.Deck.LookUp(DragTable, ad.Mach)
	if err != nil {
		return dx
	}

	k := -ad.Dynamic * b.RefArea * cd / (b.Mass * vair.Absolute())
	for i := 0; i < 3; i++ {
		dx[3+i] += k * vair.Vec(i)
	}
	return dx
}

// Done reports ground impact.
func (b *Ballistic) Done(x sim.State, t float64) bool {
	return Geodetic(x, t).Alt < 0
}
