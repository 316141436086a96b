package geodesy

import (
	"math"

	"github.com/san-kum/sixdof/internal/matrix"
)

// TEI returns the Earth-fixed wrt inertial rotation after t seconds.
func TEI(t float64) *matrix.Matrix {
	s, c := math.Sincos(EarthAngle(t))
	return matrix.Mat33(
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	)
}

// TGE returns the geographic wrt Earth-fixed rotation at (lon, lat).
func TGE(lon, lat float64) *matrix.Matrix {
	slon, clon := math.Sincos(lon)
	slat, clat := math.Sincos(lat)
	return matrix.Mat33(
		-slat*clon, -slat*slon, clat,
		-slon, clon, 0,
		-clat*clon, -clat*slon, -slat,
	)
}

// TDI84 returns the geodetic wrt inertial rotation. The altitude argument
// is unused and kept so TDI84 and TGI84 share a signature.
func TDI84(lon, lat, alt, t float64) *matrix.Matrix {
	slon, clon := math.Sincos(lon + EarthAngle(t))
	slat, clat := math.Sincos(lat)
	return matrix.Mat33(
		-slat*clon, -slat*slon, clat,
		-slon, clon, 0,
		-clat*clon, -clat*slon, -slat,
	)
}

// TGI84 returns the geocentric wrt inertial rotation for a geodetic
// position, tilting TDI84 back by the ellipsoid normal deflection.
func TGI84(lon, lat, alt, t float64) *matrix.Matrix {
	_, dd := ellipsoid(lat, alt)
	sdd, cdd := math.Sincos(dd)
	tgd := matrix.Mat33(
		cdd, 0, -sdd,
		0, 1, 0,
		sdd, 0, cdd,
	)
	return matrix.Must(tgd.Mul(TDI84(lon, lat, alt, t)))
}

// Mat2Tr returns the transformation through heading psi then flight-path
// angle tht.
func Mat2Tr(psi, tht float64) *matrix.Matrix {
	spsi, cpsi := math.Sincos(psi)
	stht, ctht := math.Sincos(tht)
	return matrix.Mat33(
		ctht*cpsi, ctht*spsi, -stht,
		-spsi, cpsi, 0,
		stht*cpsi, stht*spsi, ctht,
	)
}

// Mat3Tr returns the yaw-pitch-roll (3-2-1) Euler transformation.
func Mat3Tr(psi, tht, phi float64) *matrix.Matrix {
	spsi, cpsi := math.Sincos(psi)
	stht, ctht := math.Sincos(tht)
	sphi, cphi := math.Sincos(phi)
	return matrix.Mat33(
		cpsi*ctht, spsi*ctht, -stht,
		cpsi*stht*sphi-spsi*cphi, spsi*stht*sphi+cpsi*cphi, ctht*sphi,
		cpsi*stht*cphi+spsi*sphi, spsi*stht*cphi-cpsi*sphi, ctht*cphi,
	)
}
