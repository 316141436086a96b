package geodesy

import (
	"math"

	"github.com/san-kum/sixdof/internal/earth"
	"github.com/san-kum/sixdof/internal/matrix"
)

// Geocentric is a position over a spherical Earth of radius earth.REarth.
type Geocentric struct {
	Lon float64
	Lat float64
	Alt float64
}

func geocentric(v *matrix.Matrix) (lam, lat, alt float64) {
	x, y, z := v.Vec(0), v.Vec(1), v.Vec(2)
	dbi := v.Absolute()
	return celestialLongitude(x, y), math.Asin(z / dbi), dbi - earth.REarth
}

// GeocIn converts an inertial position to geocentric coordinates.
func GeocIn(sbii *matrix.Matrix, t float64) Geocentric {
	lam, lat, alt := geocentric(sbii)
	return Geocentric{Lon: wrapLongitude(lam - EarthAngle(t)), Lat: lat, Alt: alt}
}

// GeocInE converts an Earth-fixed position to geocentric coordinates.
func GeocInE(sbie *matrix.Matrix) Geocentric {
	lam, lat, alt := geocentric(sbie)
	return Geocentric{Lon: wrapLongitude(lam), Lat: lat, Alt: alt}
}

// InGeoc converts geocentric coordinates to an inertial position.
func InGeoc(lon, lat, alt, t float64) *matrix.Matrix {
	dbi := alt + earth.REarth
	slat, clat := math.Sincos(lat)
	slon, clon := math.Sincos(lon + EarthAngle(t))
	return matrix.Vec3(dbi*clat*clon, dbi*clat*slon, dbi*slat)
}
