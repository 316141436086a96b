package matrix

import "gonum.org/v1/gonum/mat"

func sameShape(a, b *Matrix) bool {
	return a.rows == b.rows && a.cols == b.cols
}

// Add returns m + b.
func (m *Matrix) Add(b *Matrix) (*Matrix, error) {
	if !sameShape(m, b) {
		return nil, binaryErr("Add", m, b, ErrDimensionMismatch)
	}
	var out mat.Dense
	out.Add(m.view(), b.view())
	return adopt(&out), nil
}

// Sub returns m - b.
func (m *Matrix) Sub(b *Matrix) (*Matrix, error) {
	if !sameShape(m, b) {
		return nil, binaryErr("Sub", m, b, ErrDimensionMismatch)
	}
	var out mat.Dense
	out.Sub(m.view(), b.view())
	return adopt(&out), nil
}

// Mul returns the matrix product m * b.
func (m *Matrix) Mul(b *Matrix) (*Matrix, error) {
	if m.cols != b.rows {
		return nil, binaryErr("Mul", m, b, ErrDimensionMismatch)
	}
	var out mat.Dense
	out.Mul(m.view(), b.view())
	return adopt(&out), nil
}

// Scale returns s * m.
func (m *Matrix) Scale(s float64) *Matrix {
	var out mat.Dense
	out.Scale(s, m.view())
	return adopt(&out)
}

// AddScalar returns m with s added to every element.
func (m *Matrix) AddScalar(s float64) *Matrix {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 { return v + s }, m.view())
	return adopt(&out)
}

// SubScalar returns m with s subtracted from every element.
func (m *Matrix) SubScalar(s float64) *Matrix {
	return m.AddScalar(-s)
}

// AddAssign adds b to m in place.
func (m *Matrix) AddAssign(b *Matrix) error {
	sum, err := m.Add(b)
	if err != nil {
		return binaryErr("AddAssign", m, b, ErrDimensionMismatch)
	}
	copy(m.data, sum.data)
	return nil
}

// SubAssign subtracts b from m in place.
func (m *Matrix) SubAssign(b *Matrix) error {
	diff, err := m.Sub(b)
	if err != nil {
		return binaryErr("SubAssign", m, b, ErrDimensionMismatch)
	}
	copy(m.data, diff.data)
	return nil
}

// MulAssign replaces m with m * b. b must be square so the shape of m is
// preserved.
func (m *Matrix) MulAssign(b *Matrix) error {
	if b.rows != b.cols || m.cols != b.rows {
		return binaryErr("MulAssign", m, b, ErrDimensionMismatch)
	}
	prod, err := m.Mul(b)
	if err != nil {
		return err
	}
	copy(m.data, prod.data)
	return nil
}

// ScaleAssign multiplies every element by s in place.
func (m *Matrix) ScaleAssign(s float64) {
	copy(m.data, m.Scale(s).data)
}

// AddScalarAssign adds s to every element in place.
func (m *Matrix) AddScalarAssign(s float64) {
	for i := range m.data {
		m.data[i] += s
	}
}

// SubScalarAssign subtracts s from every element in place.
func (m *Matrix) SubScalarAssign(s float64) {
	m.AddScalarAssign(-s)
}
