package matrix

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SubMatrix returns m with the given zero-based row and column removed.
// Both dimensions of m must be at least two.
func (m *Matrix) SubMatrix(row, col int) (*Matrix, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols || m.rows < 2 || m.cols < 2 {
		return nil, unaryErr("SubMatrix", m, ErrOutOfRange)
	}
	out := New(m.rows-1, m.cols-1)
	k := 0
	for i := 0; i < m.rows; i++ {
		if i == row {
			continue
		}
		for j := 0; j < m.cols; j++ {
			if j == col {
				continue
			}
			out.data[k] = m.data[i*m.cols+j]
			k++
		}
	}
	return out, nil
}

// Determinant returns the determinant of a square matrix. 1x1 and 2x2
// matrices use the closed form; larger ones are LU-factorised by gonum.
func (m *Matrix) Determinant() (float64, error) {
	if m.rows != m.cols {
		return 0, unaryErr("Determinant", m, ErrNonSquare)
	}
	return m.det(), nil
}

func (m *Matrix) det() float64 {
	switch m.rows {
	case 1:
		return m.data[0]
	case 2:
		return m.data[0]*m.data[3] - m.data[1]*m.data[2]
	}
	return mat.Det(m.view())
}

func (m *Matrix) cofactor(row, col int) float64 {
	minor, _ := m.SubMatrix(row, col)
	c := minor.det()
	if (row+col)%2 != 0 {
		c = -c
	}
	return c
}

// Adjoint returns the transpose of the cofactor matrix.
func (m *Matrix) Adjoint() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, unaryErr("Adjoint", m, ErrNonSquare)
	}
	if m.rows == 1 {
		return nil, unaryErr("Adjoint", m, ErrTooSmall)
	}
	n := m.rows
	out := New(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.data[j*n+i] = m.cofactor(i, j)
		}
	}
	return out, nil
}

// Inverse returns the inverse of a square matrix. A 1x1 matrix inverts to
// its reciprocal. A zero determinant, or a matrix gonum finds exactly
// singular, yields ErrSingular. Ill-conditioned matrices are still inverted.
func (m *Matrix) Inverse() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, unaryErr("Inverse", m, ErrNonSquare)
	}
	d := m.det()
	if d == 0 {
		return nil, unaryErr("Inverse", m, ErrSingular)
	}
	if m.rows == 1 {
		return &Matrix{rows: 1, cols: 1, data: []float64{1 / d}}, nil
	}

	var inv mat.Dense
	if err := inv.Inverse(m.view()); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, unaryErr("Inverse", m, ErrSingular)
		}
	}
	return adopt(&inv), nil
}
