package linalg

import "errors"

var (
	// ErrDimensionMismatch is returned when operand sizes are incompatible.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrNotSquare is returned by operations only defined on square matrices.
	ErrNotSquare = errors.New("linalg: matrix is not square")

	// ErrSingular is returned by Invert when the determinant is zero.
	ErrSingular = errors.New("linalg: matrix is singular")

	// ErrIndexOutOfRange is returned by element accessors.
	ErrIndexOutOfRange = errors.New("linalg: index out of range")
)
