package matrix

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSubMatrix(t *testing.T) {
	a := Mat33(1, 2, 3, 4, 5, 6, 7, 8, 9)
	s, err := a.SubMatrix(1, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 8, 9}, s.RawData())

	_, err = a.SubMatrix(3, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDeterminantBaseCases(t *testing.T) {
	one, _ := NewFromSlice(1, 1, []float64{-4})
	d, err := one.Determinant()
	require.NoError(t, err)
	assert.Equal(t, -4.0, d)

	two, _ := NewFromSlice(2, 2, []float64{3, 8, 4, 6})
	d, err = two.Determinant()
	require.NoError(t, err)
	assert.Equal(t, -14.0, d)

	_, err = New(2, 3).Determinant()
	assert.ErrorIs(t, err, ErrNonSquare)
}

func TestDeterminantMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for n := 3; n <= 6; n++ {
		a := randomMatrix(rng, n, n)
		got, err := a.Determinant()
		require.NoError(t, err)
		want := mat.Det(a.ToDense())
		assert.InDelta(t, want, got, 1e-9, "n=%d", n)
	}
}

func TestInverseIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for n := 2; n <= 5; n++ {
		a := Must(randomMatrix(rng, n, n).Add(Identity(n).Scale(float64(n))))
		inv, err := a.Inverse()
		require.NoError(t, err)

		prod, err := a.Mul(inv)
		require.NoError(t, err)
		assert.Less(t, Must(prod.Sub(Identity(n))).Absolute(), 1e-9, "M*inv(M) != I for n=%d", n)

		var ref mat.Dense
		require.NoError(t, ref.Inverse(a.ToDense()))
		assert.Less(t, Must(FromDense(&ref).Sub(inv)).Absolute(), 1e-9)
	}
}

func TestInverseFailures(t *testing.T) {
	singular := Mat33(1, 2, 3, 2, 4, 6, 0, 1, 1)
	_, err := singular.Inverse()
	assert.ErrorIs(t, err, ErrSingular)

	_, err = New(2, 3).Inverse()
	assert.ErrorIs(t, err, ErrNonSquare)

	one, _ := NewFromSlice(1, 1, []float64{4})
	inv, err := one.Inverse()
	require.NoError(t, err)
	assert.Equal(t, 0.25, inv.Vec(0))
}

func TestAdjoint(t *testing.T) {
	a, _ := NewFromSlice(2, 2, []float64{1, 2, 3, 4})
	adj, err := a.Adjoint()
	require.NoError(t, err)
	assert.Equal(t, []float64{4, -2, -3, 1}, adj.RawData())

	_, err = New(1, 1).Adjoint()
	assert.ErrorIs(t, err, ErrTooSmall)
}

func TestRotationInverseIsTranspose(t *testing.T) {
	c, s := math.Cos(0.3), math.Sin(0.3)
	r := Mat33(c, s, 0, -s, c, 0, 0, 0, 1)
	inv, err := r.Inverse()
	require.NoError(t, err)
	assert.True(t, inv.Equal(r.T()))
}

func TestArithmeticMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	a := randomMatrix(rng, 3, 4)
	b := randomMatrix(rng, 4, 2)
	c := randomMatrix(rng, 3, 4)

	var want mat.Dense
	want.Mul(a.ToDense(), b.ToDense())
	assert.True(t, Must(a.Mul(b)).Equal(FromDense(&want)))

	want.Add(a.ToDense(), c.ToDense())
	assert.True(t, Must(a.Add(c)).Equal(FromDense(&want)))

	assert.True(t, a.T().Equal(FromDense(a.ToDense().T())))
	assert.Equal(t, 4, a.T().Rows())
}

func TestArithmeticOwnsResult(t *testing.T) {
	a := Vec3(1, 2, 3)
	sum := Must(a.Add(a))
	assert.True(t, sum.Equal(Vec3(2, 4, 6)))
	sum.SetVec(0, 99)
	assert.Equal(t, 1.0, a.Vec(0))

	require.NoError(t, a.AddAssign(a))
	assert.True(t, a.Equal(Vec3(2, 4, 6)))
	a.ScaleAssign(0.5)
	assert.True(t, a.Equal(Vec3(1, 2, 3)))
}

func TestInverseLarge(t *testing.T) {
	dup, _ := NewFromSlice(4, 4, []float64{
		1, 2, 3, 4,
		1, 2, 3, 4,
		0, 1, 0, 0,
		0, 0, 1, 1,
	})
	_, err := dup.Inverse()
	assert.ErrorIs(t, err, ErrSingular)

	d, _ := NewFromSlice(4, 4, []float64{
		2, 0, 0, 0,
		0, 4, 0, 0,
		0, 0, 5, 0,
		0, 0, 0, 8,
	})
	inv, err := d.Inverse()
	require.NoError(t, err)
	want, _ := NewFromSlice(4, 4, []float64{
		0.5, 0, 0, 0,
		0, 0.25, 0, 0,
		0, 0, 0.2, 0,
		0, 0, 0, 0.125,
	})
	assert.True(t, inv.Equal(want))
	det, err := d.Determinant()
	require.NoError(t, err)
	assert.InDelta(t, 320.0, det, 1e-9)
}
