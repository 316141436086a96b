// Package orbit converts between inertial state vectors and classical
// orbital elements and propagates two-body states along Keplerian arcs.
//
// Positions are in metres and velocities in m/s in the Earth-centred
// inertial frame. Element angles are in degrees.
package orbit

import (
	"math"
	"strings"

	"github.com/san-kum/sixdof/internal/earth"
	"github.com/san-kum/sixdof/internal/matrix"
)

// Degeneracy marks the elements OrbIn could not determine.
type Degeneracy uint8

const (
	// Circular leaves TrueAnom undefined.
	Circular Degeneracy = 1 << iota
	// Parabolic leaves Semi undefined.
	Parabolic
	// Equatorial leaves LonAnode undefined.
	Equatorial
	// CircularOrEquatorial leaves ArgPeri undefined.
	CircularOrEquatorial
)

// Has reports whether every flag in f is set.
func (d Degeneracy) Has(f Degeneracy) bool {
	return d&f == f
}

func (d Degeneracy) String() string {
	if d == 0 {
		return "none"
	}
	var parts []string
	for _, f := range []struct {
		flag Degeneracy
		name string
	}{
		{Circular, "circular"},
		{Parabolic, "parabolic"},
		{Equatorial, "equatorial"},
		{CircularOrEquatorial, "circular-or-equatorial"},
	} {
		if d.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// Elements is a classical orbital element set.
type Elements struct {
	Semi     float64 `json:"semi" yaml:"semi"`           // semi-major axis, m
	Ecc      float64 `json:"ecc" yaml:"ecc"`             // eccentricity
	Incl     float64 `json:"incl" yaml:"incl"`           // inclination, deg
	LonAnode float64 `json:"lon_anode" yaml:"lon_anode"` // celestial longitude of the ascending node, deg
	ArgPeri  float64 `json:"arg_peri" yaml:"arg_peri"`   // argument of periapsis, deg
	TrueAnom float64 `json:"true_anom" yaml:"true_anom"` // true anomaly, deg
}

// State is an inertial position/velocity pair.
type State struct {
	Pos *matrix.Matrix
	Vel *matrix.Matrix
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{Pos: s.Pos.Clone(), Vel: s.Vel.Clone()}
}

// Energy returns the specific mechanical energy v²/2 - GM/r.
func (s State) Energy() float64 {
	v := s.Vel.Absolute()
	return v*v/2 - earth.GM/s.Pos.Absolute()
}

// TIP returns the inertial wrt perifocal rotation for the 3-1-3 sequence
// of node longitude, inclination and argument of periapsis, all in
// radians.
func TIP(incl, lonAnode, argPeri float64) *matrix.Matrix {
	si, ci := math.Sincos(incl)
	so, co := math.Sincos(lonAnode)
	sw, cw := math.Sincos(argPeri)
	return matrix.Mat33(
		co*cw-so*sw*ci, -co*sw-so*cw*ci, so*si,
		so*cw+co*sw*ci, -so*sw+co*cw*ci, -co*si,
		sw*si, cw*si, ci,
	)
}

// InOrb builds the inertial state of el. When the semi-latus rectum is
// zero the result carries Parabolic and its velocity is the zero vector,
// which callers must not use.
func InOrb(el Elements) (State, Degeneracy) {
	pp := el.Semi * (1 - el.Ecc*el.Ecc)
	snu, cnu := math.Sincos(el.TrueAnom * earth.RAD)
	dbi := pp / (1 + el.Ecc*cnu)

	sbip := matrix.Vec3(dbi*cnu, dbi*snu, 0)
	vbip := matrix.New(3, 1)

	var flags Degeneracy
	if pp == 0 {
		flags |= Parabolic
	} else {
		dum := math.Sqrt(earth.GM / pp)
		vbip = matrix.Vec3(-dum*snu, dum*(el.Ecc+cnu), 0)
	}

	tip := TIP(el.Incl*earth.RAD, el.LonAnode*earth.RAD, el.ArgPeri*earth.RAD)
	return State{
		Pos: matrix.Must(tip.Mul(sbip)),
		Vel: matrix.Must(tip.Mul(vbip)),
	}, flags
}

// OrbIn recovers the elements of an inertial state. Elements named by the
// returned flags are left at zero.
func OrbIn(sbii, vbii *matrix.Matrix) (Elements, Degeneracy) {
	var el Elements
	var flags Degeneracy

	h := matrix.Must(matrix.Must(sbii.SkewSym()).Mul(vbii))
	hmag := h.Absolute()
	node := matrix.Vec3(-h.Vec(1), h.Vec(0), 0)
	nmag := node.Absolute()

	dbi := sbii.Absolute()
	dvbi := vbii.Absolute()
	rv := dot(sbii, vbii)
	ev := sbii.Scale(dvbi*dvbi - earth.GM/dbi)
	if err := ev.SubAssign(vbii.Scale(rv)); err != nil {
		panic(err)
	}
	ev.ScaleAssign(1 / earth.GM)
	el.Ecc = ev.Absolute()

	pp := hmag * hmag / earth.GM
	if math.Abs(1-el.Ecc) < earth.SMALL {
		flags |= Parabolic
	} else {
		el.Semi = pp / (1 - el.Ecc*el.Ecc)
	}

	el.Incl = acos(h.Vec(2)/hmag) * earth.DEG

	if nmag < earth.SMALL {
		flags |= Equatorial
	} else {
		el.LonAnode = quadrant(acos(node.Vec(0)/nmag), node.Vec(1) > 0)
	}
	if el.Ecc < earth.SMALL || nmag < earth.SMALL {
		flags |= CircularOrEquatorial
	} else {
		el.ArgPeri = quadrant(acos(dot(node, ev)/(nmag*el.Ecc)), ev.Vec(2) >= 0)
	}
	if el.Ecc < earth.SMALL {
		flags |= Circular
	} else {
		el.TrueAnom = quadrant(acos(dot(sbii, ev)/(dbi*el.Ecc)), rv >= 0)
	}
	return el, flags
}

// quadrant converts an acos result to degrees, reflecting it into
// (180, 360) when upper is false.
func quadrant(angle float64, upper bool) float64 {
	if upper {
		return angle * earth.DEG
	}
	return (2*math.Pi - angle) * earth.DEG
}

func acos(x float64) float64 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return math.Acos(x)
}

func dot(a, b *matrix.Matrix) float64 {
	d, err := a.Dot(b)
	if err != nil {
		panic(err)
	}
	return d
}
