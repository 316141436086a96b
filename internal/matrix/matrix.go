package matrix

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/sixdof/internal/earth"
)

// Matrix is a dense row-major matrix.
type Matrix struct {
	rows, cols int
	data       []float64
}

// New returns a zero rows x cols matrix. It panics if either dimension is
// less than one.
func New(rows, cols int) *Matrix {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("matrix: invalid shape %dx%d", rows, cols))
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// NewFromSlice returns a rows x cols matrix holding a copy of data in
// row-major order.
func NewFromSlice(rows, cols int, data []float64) (*Matrix, error) {
	m := New(rows, cols)
	if len(data) != rows*cols {
		return nil, &OpError{Op: "NewFromSlice", Rows: rows, Cols: cols, Err: ErrDimensionMismatch}
	}
	copy(m.data, data)
	return m, nil
}

// Vec3 builds a 3x1 column vector.
func Vec3(v1, v2, v3 float64) *Matrix {
	return &Matrix{rows: 3, cols: 1, data: []float64{v1, v2, v3}}
}

// Mat33 builds a 3x3 matrix from its elements in row order.
func Mat33(a11, a12, a13, a21, a22, a23, a31, a32, a33 float64) *Matrix {
	return &Matrix{rows: 3, cols: 3, data: []float64{a11, a12, a13, a21, a22, a23, a31, a32, a33}}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Ones returns a rows x cols matrix filled with ones.
func Ones(rows, cols int) *Matrix {
	m := New(rows, cols)
	for i := range m.data {
		m.data[i] = 1
	}
	return m
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// Dims returns the row and column counts.
func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }

// Len returns rows*cols.
func (m *Matrix) Len() int { return len(m.data) }

// At returns the element at zero-based (row, col).
func (m *Matrix) At(row, col int) (float64, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, unaryErr("At", m, ErrOutOfRange)
	}
	return m.data[row*m.cols+col], nil
}

// Set assigns the element at zero-based (row, col).
func (m *Matrix) Set(row, col int, v float64) error {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return unaryErr("Set", m, ErrOutOfRange)
	}
	m.data[row*m.cols+col] = v
	return nil
}

// Vec returns the i-th element in storage order. For column vectors this is
// the i-th component. It panics when i is out of range.
func (m *Matrix) Vec(i int) float64 {
	return m.data[i]
}

// SetVec assigns the i-th element in storage order.
func (m *Matrix) SetVec(i int, v float64) {
	m.data[i] = v
}

// RawData returns a copy of the backing buffer in row-major order.
func (m *Matrix) RawData() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// Resize discards the contents and re-allocates m as a zero rows x cols
// matrix. It is meant for deferred initialisation of variable-length fields.
func (m *Matrix) Resize(rows, cols int) {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("matrix: invalid shape %dx%d", rows, cols))
	}
	m.rows, m.cols = rows, cols
	m.data = make([]float64, rows*cols)
}

// Zero sets every element to zero in place.
func (m *Matrix) Zero() {
	for i := range m.data {
		m.data[i] = 0
	}
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(c.data, m.data)
	return c
}

// Copy overwrites m with the contents of src. The shapes must match.
func (m *Matrix) Copy(src *Matrix) error {
	if m.rows != src.rows || m.cols != src.cols {
		return binaryErr("Copy", m, src, ErrDimensionMismatch)
	}
	copy(m.data, src.data)
	return nil
}

// Equal reports whether m and b have the same shape and every pair of
// elements differs by no more than earth.EPS.
func (m *Matrix) Equal(b *Matrix) bool {
	if m.rows != b.rows || m.cols != b.cols {
		return false
	}
	for i, v := range m.data {
		if math.Abs(v-b.data[i]) > earth.EPS {
			return false
		}
	}
	return true
}

// NotEqual is the negation of Equal.
func (m *Matrix) NotEqual(b *Matrix) bool { return !m.Equal(b) }

// T returns the transpose.
func (m *Matrix) T() *Matrix {
	return adopt(mat.DenseCopyOf(m.view().T()))
}

// Col returns column j as a rows x 1 vector.
func (m *Matrix) Col(j int) (*Matrix, error) {
	if j < 0 || j >= m.cols {
		return nil, unaryErr("Col", m, ErrOutOfRange)
	}
	out := New(m.rows, 1)
	for i := 0; i < m.rows; i++ {
		out.data[i] = m.data[i*m.cols+j]
	}
	return out, nil
}

// Row returns row i as a 1 x cols vector.
func (m *Matrix) Row(i int) (*Matrix, error) {
	if i < 0 || i >= m.rows {
		return nil, unaryErr("Row", m, ErrOutOfRange)
	}
	out := New(1, m.cols)
	copy(out.data, m.data[i*m.cols:(i+1)*m.cols])
	return out, nil
}

// DiagFromVec returns the n x n diagonal matrix of an n x 1 vector.
func (m *Matrix) DiagFromVec() (*Matrix, error) {
	if m.cols != 1 {
		return nil, unaryErr("DiagFromVec", m, ErrNotVector)
	}
	out := New(m.rows, m.rows)
	for i := 0; i < m.rows; i++ {
		out.data[i*m.rows+i] = m.data[i]
	}
	return out, nil
}

// DiagToVec returns the diagonal of a square matrix as an n x 1 vector.
func (m *Matrix) DiagToVec() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, unaryErr("DiagToVec", m, ErrNonSquare)
	}
	out := New(m.rows, 1)
	for i := 0; i < m.rows; i++ {
		out.data[i] = m.data[i*m.rows+i]
	}
	return out, nil
}

// Mat33ToVec9 flattens a 3x3 matrix row-wise into a 9x1 vector.
func (m *Matrix) Mat33ToVec9() (*Matrix, error) {
	if m.rows != 3 || m.cols != 3 {
		return nil, unaryErr("Mat33ToVec9", m, ErrDimensionMismatch)
	}
	out := New(9, 1)
	copy(out.data, m.data)
	return out, nil
}

// Vec9ToMat33 reshapes a 9x1 vector row-wise into a 3x3 matrix.
func (m *Matrix) Vec9ToMat33() (*Matrix, error) {
	if m.rows != 9 || m.cols != 1 {
		return nil, unaryErr("Vec9ToMat33", m, ErrDimensionMismatch)
	}
	out := New(3, 3)
	copy(out.data, m.data)
	return out, nil
}

// String formats the matrix one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%.6g", m.data[i*m.cols+j])
		}
		if i < m.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
