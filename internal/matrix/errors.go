package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates operands with incompatible shapes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrOutOfRange indicates a row or column offset outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNonSquare indicates an operation that needs a square matrix.
	ErrNonSquare = errors.New("matrix: matrix not square")

	// ErrTooSmall indicates a 1x1 matrix passed to the adjoint.
	ErrTooSmall = errors.New("matrix: adjoint needs at least 2x2")

	// ErrSingular indicates a zero determinant.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNotVec3 indicates an operation that needs a 3x1 column vector.
	ErrNotVec3 = errors.New("matrix: not a 3x1 column vector")

	// ErrNotVector indicates an operation that needs a single row or column.
	ErrNotVector = errors.New("matrix: not a vector")

	// ErrZeroVector indicates a normalisation of a zero-length result.
	ErrZeroVector = errors.New("matrix: zero magnitude")
)

// OpError records the operation and operand shapes of a failed call.
type OpError struct {
	Op         string
	Rows, Cols int
	// OtherRows and OtherCols describe the second operand, zero for unary ops.
	OtherRows, OtherCols int
	Err                  error
}

func (e *OpError) Error() string {
	if e.OtherRows == 0 {
		return fmt.Sprintf("%s (%dx%d): %v", e.Op, e.Rows, e.Cols, e.Err)
	}
	return fmt.Sprintf("%s (%dx%d, %dx%d): %v", e.Op, e.Rows, e.Cols, e.OtherRows, e.OtherCols, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func unaryErr(op string, m *Matrix, err error) error {
	return &OpError{Op: op, Rows: m.rows, Cols: m.cols, Err: err}
}

func binaryErr(op string, a, b *Matrix, err error) error {
	return &OpError{Op: op, Rows: a.rows, Cols: a.cols, OtherRows: b.rows, OtherCols: b.cols, Err: err}
}

// Must panics if err is non-nil and returns m otherwise.
func Must(m *Matrix, err error) *Matrix {
	if err != nil {
		panic(err)
	}
	return m
}

// MustScalar is Must for operations that yield a scalar.
func MustScalar(v float64, err error) float64 {
	if err != nil {
		panic(err)
	}
	return v
}
