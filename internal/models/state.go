// Package models provides inertial point-mass vehicle dynamics over the
// WGS-84 Earth. States are laid out as inertial position (m) followed by
// inertial velocity (m/s).
package models

import (
	"errors"

	"github.com/san-kum/sixdof/internal/earth"
	"github.com/san-kum/sixdof/internal/geodesy"
	"github.com/san-kum/sixdof/internal/matrix"
	"github.com/san-kum/sixdof/internal/orbit"
	"github.com/san-kum/sixdof/internal/sim"
)

const stateDim = 6

// PosVel splits a point-mass state into position and velocity vectors.
func PosVel(x sim.State) (sbii, vbii *matrix.Matrix) {
	return matrix.Vec3(x[0], x[1], x[2]), matrix.Vec3(x[3], x[4], x[5])
}

// FromOrbit builds a point-mass state from an orbit state.
func FromOrbit(s orbit.State) sim.State {
	return sim.State{
		s.Pos.Vec(0), s.Pos.Vec(1), s.Pos.Vec(2),
		s.Vel.Vec(0), s.Vel.Vec(1), s.Vel.Vec(2),
	}
}

// ToOrbit is the inverse of FromOrbit.
func ToOrbit(x sim.State) orbit.State {
	sbii, vbii := PosVel(x)
	return orbit.State{Pos: sbii, Vel: vbii}
}

// Geodetic returns the WGS-84 position of state x at time t. If the
// latitude iteration does not converge the last iterate is used.
func Geodetic(x sim.State, t float64) geodesy.Geodetic {
	sbii, _ := PosVel(x)
	pos, err := geodesy.Geo84In(sbii, t)
	if err != nil {
		var conv *geodesy.ConvergenceError
		if errors.As(err, &conv) {
			return conv.Last
		}
	}
	return pos
}

// Launch builds the inertial state at time zero of a vehicle at geodetic
// (lon, lat, alt) moving with an Earth-relative speed, heading and
// flight-path angle. Angles are in degrees, alt in m and speed in m/s.
func Launch(lon, lat, alt, speed, heading, flightPath float64) sim.State {
	lon, lat = lon*earth.RAD, lat*earth.RAD
	sbii := geodesy.InGeo84(lon, lat, alt, 0)

	vg, _ := matrix.Vec3(speed, heading*earth.RAD, flightPath*earth.RAD).CartFromPol()
	vbii := matrix.Must(geodesy.TDI84(lon, lat, alt, 0).T().Mul(vg))
	rot := matrix.Must(matrix.Must(matrix.Vec3(0, 0, earth.WEII3).SkewSym()).Mul(sbii))
	if err := vbii.AddAssign(rot); err != nil {
		panic(err)
	}

	return FromOrbit(orbit.State{Pos: sbii, Vel: vbii})
}
