package orbit

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/sixdof/internal/earth"
	"github.com/san-kum/sixdof/internal/matrix"
)

const (
	maxKeplerIterations = 20
	// Kepler1 keeps iterating past the flag threshold; this bounds the
	// loop for states where Newton's method never settles.
	maxUniversalIterations = 100
)

var (
	// ErrHyperbolic reports a negative semi-major axis in Kepler.
	ErrHyperbolic = errors.New("orbit: negative semi-major axis")
	// ErrNotConverged reports an exhausted iteration budget.
	ErrNotConverged = errors.New("orbit: kepler iteration did not converge")
)

// KeplerError describes a failed propagation.
type KeplerError struct {
	Method     string
	Iterations int
	Err        error
}

func (e *KeplerError) Error() string {
	return fmt.Sprintf("%s: %v after %d iterations", e.Method, e.Err, e.Iterations)
}

func (e *KeplerError) Unwrap() error {
	return e.Err
}

// Kepler projects the state (sbii, vbii) through tgo seconds with Morth's
// eccentric anomaly iteration. On failure the returned State is the zero
// value; use KeplerInto to keep a previous projection.
func Kepler(sbii, vbii *matrix.Matrix, tgo float64) (State, error) {
	sqrtGM := math.Sqrt(earth.GM)
	ro := sbii.Absolute()
	vo := vbii.Absolute()
	rvo := dot(sbii, vbii)

	a1 := vo * vo / earth.GM
	sa := ro / (2 - ro*a1)
	if sa < 0 {
		return State{}, &KeplerError{Method: "kepler", Err: ErrHyperbolic}
	}
	smua := sqrtGM * math.Sqrt(sa)
	mdot := smua / (sa * sa)

	dm := mdot * tgo
	de := dm
	a11 := rvo / smua
	a21 := (sa - ro) / sa

	var cde, sde float64
	for n := 1; ; n++ {
		cde = 1 - math.Cos(de)
		sde = math.Sin(de)
		dmerr := dm - (de + a11*cde - a21*sde)
		adm := math.Abs(dmerr) / mdot
		de += dmerr / (1 + a11*sde - a21*(1-cde))
		if n > maxKeplerIterations {
			return State{}, &KeplerError{Method: "kepler", Iterations: n, Err: ErrNotConverged}
		}
		if adm <= earth.SMALL {
			break
		}
	}

	fk := (ro - sa*cde) / ro
	gk := (dm + sde - de) / mdot
	spii := combine(sbii, fk, vbii, gk)

	rp := spii.Absolute()
	fdk := -smua * sde / ro
	gdk := rp - sa*cde
	vpii := combine(sbii, fdk/rp, vbii, gdk/rp)
	return State{Pos: spii, Vel: vpii}, nil
}

// KeplerInto runs Kepler and stores the projection in dst. dst is left
// untouched when the propagation fails.
func KeplerInto(dst *State, sbii, vbii *matrix.Matrix, tgo float64) error {
	s, err := Kepler(sbii, vbii, tgo)
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

// Kepler1 projects the state through tgo seconds with the universal
// variable formulation. The returned State always holds the last iterate;
// the error is non-nil when more than 20 iterations were needed.
func Kepler1(sbii, vbii *matrix.Matrix, tgo float64) (State, error) {
	if tgo == 0 {
		return State{Pos: sbii.Clone(), Vel: vbii.Clone()}, nil
	}

	sqrtGM := math.Sqrt(earth.GM)
	ro := sbii.Absolute()
	vo := vbii.Absolute()
	al := (2*earth.GM/ro - vo*vo) / earth.GM
	dum := dot(sbii, vbii)

	var x, z, c, s, dt float64
	n := 0
	for n < maxUniversalIterations {
		n++
		z = x * x * al
		c, s = stumpff(z)
		dt = (x*x*x*s + dum*x*x*c/sqrtGM + ro*x*(1-z*s)) / sqrtGM
		dtx := (x*x*c + dum*x*(1-z*s)/sqrtGM + ro*(1-z*c)) / sqrtGM
		x += (tgo - dt) / dtx
		if math.Abs((tgo-dt)/tgo) <= earth.SMALL {
			break
		}
	}

	f := 1 - x*x*c/ro
	g := tgo - x*x*x*s/sqrtGM
	spii := combine(sbii, f, vbii, g)

	rx := spii.Absolute()
	fd := sqrtGM * x * (z*s - 1) / (ro * rx)
	gd := 1 - x*x*c/rx
	out := State{Pos: spii, Vel: combine(sbii, fd, vbii, gd)}

	if n > maxKeplerIterations {
		return out, &KeplerError{Method: "kepler1", Iterations: n, Err: ErrNotConverged}
	}
	return out, nil
}

// stumpff returns the universal variable functions c(z) and s(z). Near
// z = 0 the closed forms cancel badly and a seven-term series is used.
func stumpff(z float64) (c, s float64) {
	switch {
	case z > 0.1:
		sz := math.Sqrt(z)
		return (1 - math.Cos(sz)) / z, (sz - math.Sin(sz)) / (sz * sz * sz)
	case z < -0.1:
		sz := math.Sqrt(-z)
		return (1 - math.Cosh(sz)) / z, (math.Sinh(sz) - sz) / (sz * sz * sz)
	}
	dc, ds := 2.0, 6.0
	c, s = 1/dc, 1/ds
	for k := 1; k < 7; k++ {
		zk := math.Pow(-z, float64(k))
		n := float64(2*k + 1)
		dc *= n * (n + 1)
		c += zk / dc
		ds *= (n + 1) * (n + 2)
		s += zk / ds
	}
	return c, s
}

func combine(a *matrix.Matrix, fa float64, b *matrix.Matrix, fb float64) *matrix.Matrix {
	out := a.Scale(fa)
	if err := out.AddAssign(b.Scale(fb)); err != nil {
		panic(err)
	}
	return out
}
