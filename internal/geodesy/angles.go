package geodesy

import (
	"math"

	"github.com/san-kum/sixdof/internal/earth"
	"github.com/san-kum/sixdof/internal/matrix"
)

// EarthAngle returns the celestial longitude of Greenwich after t seconds.
func EarthAngle(t float64) float64 {
	return earth.WEII3*t + earth.GWCLong
}

// celestialLongitude returns the right ascension of (x, y) in [0, 2pi).
func celestialLongitude(x, y float64) float64 {
	lam := math.Atan2(y, x)
	if lam < 0 {
		lam += 2 * math.Pi
	}
	return lam
}

// wrapLongitude maps lon into (-pi, pi], east positive.
func wrapLongitude(lon float64) float64 {
	for lon > math.Pi {
		lon -= 2 * math.Pi
	}
	for lon <= -math.Pi {
		lon += 2 * math.Pi
	}
	return lon
}

// Sign returns -1 for negative x and 1 otherwise, zero included.
func Sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// Angle returns the angle between two vectors in [0, pi]. If either vector
// is shorter than earth.EPS the angle is zero.
func Angle(v1, v2 *matrix.Matrix) (float64, error) {
	dot, err := v1.Dot(v2)
	if err != nil {
		return 0, err
	}
	mag := v1.Absolute() * v2.Absolute()
	arg := 1.0
	if mag > earth.EPS {
		arg = dot / mag
	}
	return math.Acos(clamp(arg)), nil
}

// Distance returns the great-circle distance in km between two points on a
// spherical Earth of radius earth.REarth.
func Distance(lon1, lat1, lon2, lat2 float64) float64 {
	dum := math.Sin(lat2)*math.Sin(lat1) + math.Cos(lat2)*math.Cos(lat1)*math.Cos(lon2-lon1)
	return earth.REarth * math.Acos(clamp(dum)) * 1e-3
}

func clamp(x float64) float64 {
	if math.Abs(x) > 1 {
		return Sign(x)
	}
	return x
}
