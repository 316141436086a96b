package geodesy

import (
	"math"

	"github.com/san-kum/sixdof/internal/earth"
	"github.com/san-kum/sixdof/internal/matrix"
)

// Grav84 returns the gravitational acceleration in geocentric (north, east,
// down) coordinates, including the second zonal harmonic C20.
func Grav84(sbii *matrix.Matrix, t float64) *matrix.Matrix {
	_, latc, _ := geocentric(sbii)
	dbi := sbii.Absolute()

	dum1 := earth.GM / (dbi * dbi)
	dum2 := 3 * math.Sqrt(5)
	dum3 := (earth.SMajorAxis / dbi) * (earth.SMajorAxis / dbi)
	slat, clat := math.Sincos(latc)

	return matrix.Vec3(
		-dum1*dum2*earth.C20*dum3*slat*clat,
		0,
		dum1*(1+dum2/2*earth.C20*dum3*(3*slat*slat-1)),
	)
}

// Grav84Inertial returns the Grav84 acceleration in inertial coordinates.
func Grav84Inertial(sbii *matrix.Matrix, t float64) *matrix.Matrix {
	lam, latc, _ := geocentric(sbii)
	tgi := TGE(lam, latc)
	return matrix.Must(tgi.T().Mul(Grav84(sbii, t)))
}
