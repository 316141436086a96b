package orbit

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sixdof/internal/earth"
	"github.com/san-kum/sixdof/internal/matrix"
)

var leo = Elements{Semi: 7.0e6, Ecc: 0.1, Incl: 51.6, LonAnode: 30, ArgPeri: 40, TrueAnom: 10}

// analytic advances el by t seconds through the mean anomaly.
func analytic(el Elements, t float64) State {
	e := el.Ecc
	nu := el.TrueAnom * earth.RAD
	ea := 2 * math.Atan(math.Sqrt((1-e)/(1+e))*math.Tan(nu/2))
	m := ea - e*math.Sin(ea) + math.Sqrt(earth.GM/math.Pow(el.Semi, 3))*t
	ea = m
	for i := 0; i < 50; i++ {
		ea -= (ea - e*math.Sin(ea) - m) / (1 - e*math.Cos(ea))
	}
	el.TrueAnom = 2 * math.Atan(math.Sqrt((1+e)/(1-e))*math.Tan(ea/2)) * earth.DEG
	s, _ := InOrb(el)
	return s
}

func distance(a, b *matrix.Matrix) float64 {
	return matrix.Must(a.Sub(b)).Absolute()
}

func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return math.Abs(d)
}

func TestTIPIsRotation(t *testing.T) {
	tip := TIP(0.3, 1.2, -0.7)
	prod := matrix.Must(tip.Mul(tip.T()))
	assert.True(t, prod.Equal(matrix.Identity(3)))
	det, err := tip.Determinant()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, det, 1e-12)
}

func TestElementsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		el := Elements{
			Semi:     7e6 + rng.Float64()*3.5e7,
			Ecc:      0.01 + rng.Float64()*0.89,
			Incl:     1 + rng.Float64()*178,
			LonAnode: 1 + rng.Float64()*358,
			ArgPeri:  1 + rng.Float64()*358,
			TrueAnom: 1 + rng.Float64()*358,
		}
		s, flags := InOrb(el)
		require.Zero(t, flags)

		got, flags := OrbIn(s.Pos, s.Vel)
		require.Zero(t, flags, "elements %+v", el)
		assert.InEpsilon(t, el.Semi, got.Semi, 1e-8)
		assert.InDelta(t, el.Ecc, got.Ecc, 1e-9)
		assert.InDelta(t, el.Incl, got.Incl, 1e-6)
		assert.Less(t, angleDiff(el.LonAnode, got.LonAnode), 1e-6)
		assert.Less(t, angleDiff(el.ArgPeri, got.ArgPeri), 1e-6)
		assert.Less(t, angleDiff(el.TrueAnom, got.TrueAnom), 1e-6)
	}
}

func TestInOrbParabolic(t *testing.T) {
	s, flags := InOrb(Elements{Semi: 7e6, Ecc: 1, Incl: 10})
	assert.True(t, flags.Has(Parabolic))
	assert.Zero(t, s.Vel.Absolute())
}

func TestOrbInDegenerate(t *testing.T) {
	t.Run("circular equatorial", func(t *testing.T) {
		r := 7.0e6
		v := math.Sqrt(earth.GM / r)
		el, flags := OrbIn(matrix.Vec3(r, 0, 0), matrix.Vec3(0, v, 0))
		assert.True(t, flags.Has(Circular))
		assert.True(t, flags.Has(Equatorial))
		assert.True(t, flags.Has(CircularOrEquatorial))
		assert.False(t, flags.Has(Parabolic))
		assert.InEpsilon(t, r, el.Semi, 1e-9)
		assert.InDelta(t, 0, el.Incl, 1e-9)
		assert.Zero(t, el.TrueAnom)
		assert.Zero(t, el.LonAnode)
	})

	t.Run("parabolic", func(t *testing.T) {
		r := 7.0e6
		v := math.Sqrt(2 * earth.GM / r)
		el, flags := OrbIn(matrix.Vec3(r, 0, 0), matrix.Vec3(0, v*math.Cos(0.5), v*math.Sin(0.5)))
		assert.True(t, flags.Has(Parabolic))
		assert.Zero(t, el.Semi)
		assert.InDelta(t, 1.0, el.Ecc, 1e-9)
	})

	assert.Equal(t, "none", Degeneracy(0).String())
	assert.Equal(t, "circular|equatorial", (Circular | Equatorial).String())
}

func TestKeplerMatchesAnalytic(t *testing.T) {
	s, _ := InOrb(leo)
	for _, tgo := range []float64{60, 600, 3000} {
		got, err := Kepler(s.Pos, s.Vel, tgo)
		require.NoError(t, err)
		want := analytic(leo, tgo)
		assert.Less(t, distance(got.Pos, want.Pos), 1e-3, "tgo=%v", tgo)
		assert.Less(t, distance(got.Vel, want.Vel), 1e-6, "tgo=%v", tgo)
	}
}

func TestKeplerAndKepler1Agree(t *testing.T) {
	s, _ := InOrb(leo)
	k, err := Kepler(s.Pos, s.Vel, 600)
	require.NoError(t, err)
	k1, err := Kepler1(s.Pos, s.Vel, 600)
	require.NoError(t, err)

	assert.Less(t, distance(k.Pos, k1.Pos), 1.0)
	assert.Less(t, distance(k.Vel, k1.Vel), 1e-3)
	assert.InEpsilon(t, s.Energy(), k1.Energy(), 1e-8)
}

func TestKepler1Hyperbolic(t *testing.T) {
	r := 7.0e6
	v := 1.2 * math.Sqrt(2*earth.GM/r)
	pos := matrix.Vec3(r, 0, 0)
	vel := matrix.Vec3(0, v, 0)

	_, err := Kepler(pos, vel, 600)
	assert.ErrorIs(t, err, ErrHyperbolic)

	got, err := Kepler1(pos, vel, 600)
	require.NoError(t, err)
	before := State{Pos: pos, Vel: vel}
	assert.InEpsilon(t, before.Energy(), got.Energy(), 1e-8)
	assert.Greater(t, got.Pos.Absolute(), r)
}

func TestKepler1ZeroTime(t *testing.T) {
	s, _ := InOrb(leo)
	got, err := Kepler1(s.Pos, s.Vel, 0)
	require.NoError(t, err)
	assert.True(t, got.Pos.Equal(s.Pos))
	assert.True(t, got.Vel.Equal(s.Vel))
}

func TestKeplerIntoLeavesDestinationOnFailure(t *testing.T) {
	s, _ := InOrb(leo)
	dst := s.Clone()
	prev := dst.Clone()

	r := 7.0e6
	err := KeplerInto(&dst, matrix.Vec3(r, 0, 0), matrix.Vec3(0, 2*math.Sqrt(earth.GM/r), 0), 100)
	require.Error(t, err)

	var kerr *KeplerError
	require.True(t, errors.As(err, &kerr))
	assert.Equal(t, "kepler", kerr.Method)
	assert.True(t, dst.Pos.Equal(prev.Pos))
	assert.True(t, dst.Vel.Equal(prev.Vel))

	require.NoError(t, KeplerInto(&dst, s.Pos, s.Vel, 100))
	assert.True(t, dst.Pos.NotEqual(prev.Pos))
}

func TestStumpffContinuity(t *testing.T) {
	for _, z := range []float64{0.1, -0.1} {
		below, sBelow := stumpff(z * (1 - 1e-9))
		above, sAbove := stumpff(z * (1 + 1e-9))
		assert.InDelta(t, below, above, 1e-9)
		assert.InDelta(t, sBelow, sAbove, 1e-9)
	}
	c, s := stumpff(0)
	assert.Equal(t, 0.5, c)
	assert.InDelta(t, 1.0/6, s, 1e-15)
}
