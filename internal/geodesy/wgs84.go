package geodesy

import (
	"math"

	"github.com/san-kum/sixdof/internal/earth"
	"github.com/san-kum/sixdof/internal/matrix"
)

const maxLatitudeIterations = 100

// Geodetic is a position over the WGS-84 ellipsoid.
type Geodetic struct {
	Lon float64 // rad, east positive
	Lat float64 // rad, geodetic
	Alt float64 // m above the ellipsoid
}

// GroundVelocity is the geographic velocity of a vehicle wrt the Earth.
type GroundVelocity struct {
	Speed      float64 // m/s
	Heading    float64 // deg, from north
	FlightPath float64 // deg, positive up
}

// ellipsoid returns the ellipsoid radius at latitude lat and the deflection
// of the ellipsoid normal from the geocentric radial at altitude alt.
func ellipsoid(lat, alt float64) (r0, dd float64) {
	f := earth.Flattening
	r0 = earth.SMajorAxis * (1 - f*(1-math.Cos(2*lat))/2 + 5*f*f*(1-math.Cos(4*lat))/16)
	dd = f * math.Sin(2*lat) * (1 - f/2 - alt/r0)
	return r0, dd
}

// Geo84In converts an inertial position to WGS-84 geodetic coordinates.
//
// The geodetic latitude is found by successive substitution starting from
// the geocentric latitude and stops once two iterates differ by no more than
// earth.SMALL. If that takes more than 100 iterations the returned error is
// a *ConvergenceError and the returned position is the last iterate.
func Geo84In(sbii *matrix.Matrix, t float64) (Geodetic, error) {
	x, y, z := sbii.Vec(0), sbii.Vec(1), sbii.Vec(2)
	dbi := sbii.Absolute()
	latg := math.Asin(z / dbi)

	var pos Geodetic
	pos.Lon = wrapLongitude(celestialLongitude(x, y) - EarthAngle(t))

	lat := latg
	for count := 1; ; count++ {
		lat0 := lat
		r0, _ := ellipsoid(lat0, 0)
		pos.Alt = dbi - r0
		_, dd := ellipsoid(lat0, pos.Alt)
		lat = latg + dd
		pos.Lat = lat

		delta := math.Abs(lat - lat0)
		if delta <= earth.SMALL {
			break
		}
		if count > maxLatitudeIterations {
			return pos, &ConvergenceError{Iterations: count, Last: pos, Delta: delta}
		}
	}
	return pos, nil
}

// InGeo84 converts WGS-84 geodetic coordinates to an inertial position.
func InGeo84(lon, lat, alt, t float64) *matrix.Matrix {
	r0, dd := ellipsoid(lat, alt)
	dbi := r0 + alt
	sbid1 := -dbi * math.Sin(dd)
	sbid3 := -dbi * math.Cos(dd)

	slat, clat := math.Sincos(lat)
	slon, clon := math.Sincos(lon + EarthAngle(t))
	return matrix.Vec3(
		-slat*clon*sbid1-clat*clon*sbid3,
		-slat*slon*sbid1-clat*slon*sbid3,
		clat*sbid1-slat*sbid3,
	)
}

// Geo84VelIn returns the geographic speed, heading and flight-path angle of
// a vehicle given its inertial position and velocity.
func Geo84VelIn(sbii, vbii *matrix.Matrix, t float64) (GroundVelocity, error) {
	pos, err := Geo84In(sbii, t)
	if err != nil {
		return GroundVelocity{}, err
	}
	vbed, err := EarthRelativeVelocity(sbii, vbii)
	if err != nil {
		return GroundVelocity{}, err
	}
	vbed = matrix.Must(TDI84(pos.Lon, pos.Lat, pos.Alt, t).Mul(vbed))

	polar, err := vbed.PolFromCart()
	if err != nil {
		return GroundVelocity{}, err
	}
	return GroundVelocity{
		Speed:      polar.Vec(0),
		Heading:    polar.Vec(1) * earth.DEG,
		FlightPath: polar.Vec(2) * earth.DEG,
	}, nil
}

// EarthRelativeVelocity removes the Earth rotation from an inertial
// velocity: VBII - WEII x SBII, still in inertial coordinates.
func EarthRelativeVelocity(sbii, vbii *matrix.Matrix) (*matrix.Matrix, error) {
	weii, err := matrix.Vec3(0, 0, earth.WEII3).SkewSym()
	if err != nil {
		return nil, err
	}
	rot, err := weii.Mul(sbii)
	if err != nil {
		return nil, err
	}
	return vbii.Sub(rot)
}
