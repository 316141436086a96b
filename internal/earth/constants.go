// Package earth holds the physical constants shared by the frame, gravity,
// orbit and atmosphere packages. Values are the WGS-84 set used throughout
// the flight-dynamics code; they are compile-time constants and never mutated.
package earth

import "math"

const (
	// REarth is the mean spherical Earth radius, m.
	REarth = 6370987.308
	// SMajorAxis is the WGS-84 semi-major axis, m.
	SMajorAxis = 6378137.0
	// Flattening is the WGS-84 flattening of the ellipsoid.
	Flattening = 3.35281066e-3
	// GM is Earth's gravitational parameter, m^3/s^2.
	GM = 3.986005e14
	// WEII3 is Earth's angular rate about the polar axis, rad/s.
	WEII3 = 7.292115e-5
	// GWCLong is the celestial longitude of Greenwich at t=0, rad.
	GWCLong = 0.0
	// C20 is the normalised second-degree zonal harmonic.
	C20 = -4.8416685e-4
	// AGrav is standard gravity at sea level, m/s^2.
	AGrav = 9.80675445

	// EPS is the absolute tolerance for equality and near-zero tests.
	EPS = 1e-10
	// SMALL is the convergence tolerance of the iterative solvers.
	SMALL = 1e-7

	RAD = math.Pi / 180
	DEG = 180 / math.Pi
)
