package matrix

import "gonum.org/v1/gonum/mat"

// ToDense copies m into a gonum dense matrix.
func (m *Matrix) ToDense() *mat.Dense {
	return mat.NewDense(m.rows, m.cols, m.RawData())
}

// FromDense copies a gonum matrix into a new Matrix.
func FromDense(d mat.Matrix) *Matrix {
	r, c := d.Dims()
	out := New(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.data[i*c+j] = d.At(i, j)
		}
	}
	return out
}

// view wraps the backing buffer of m without copying. It must only be
// used as an operand, never as a receiver.
func (m *Matrix) view() *mat.Dense {
	return mat.NewDense(m.rows, m.cols, m.data)
}

// adopt takes over the storage of a freshly allocated dense result.
func adopt(d *mat.Dense) *Matrix {
	r, c := d.Dims()
	raw := d.RawMatrix()
	if raw.Stride == c {
		return &Matrix{rows: r, cols: c, data: raw.Data[:r*c]}
	}
	return FromDense(d)
}
