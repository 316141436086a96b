// Package matrix provides the dense matrix and vector type used by every
// numerical package in sixdof.
//
// A [Matrix] is a row-major buffer of rows*cols float64 values. All
// arithmetic allocates a new result; copies are deep and two matrices never
// share storage. Indices are zero-based everywhere, including [Matrix.SubMatrix].
//
// Operations that depend on operand shapes return an error wrapping one of the
// package sentinels, so callers can test with errors.Is:
//
//	c, err := a.Mul(b)
//	if errors.Is(err, matrix.ErrDimensionMismatch) {
//		...
//	}
//
// Call sites whose shapes are fixed by construction (3x3 rotations applied to
// 3x1 vectors) wrap the call in [Must], which panics on a shape violation.
//
// # Vectors
//
// Column vectors are n x 1 matrices. The 3x1 helpers ([Matrix.Univec3],
// [Matrix.SkewSym], [Matrix.UnitCross], [Matrix.PolFromCart]) return
// [ErrNotVec3] for any other shape.
//
// # Thread Safety
//
// Matrix values are not safe for concurrent mutation. Read-only sharing is fine.
package matrix
