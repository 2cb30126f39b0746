package linalg

import (
	"fmt"
	"math"
	"strings"
)

// Matrix is a dense rows x cols grid of reals stored row-major.
// The zero Matrix has no rows and no columns.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix returns a rows x cols matrix of zeros. Negative sizes are
// clamped to zero.
func NewMatrix(rows, cols int) Matrix {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// FromRows builds a matrix from a slice of equally long rows.
func FromRows(rows [][]float64) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, nil
	}
	cols := len(rows[0])
	m := NewMatrix(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return Matrix{}, fmt.Errorf("row %d has %d columns, want %d: %w", r, len(row), cols, ErrDimensionMismatch)
		}
		copy(m.data[r*cols:(r+1)*cols], row)
	}
	return m, nil
}

// Must unwraps a (Matrix, error) pair, panicking on error. It is meant for
// literal construction where the shape is known to be valid.
func Must(m Matrix, err error) Matrix {
	if err != nil {
		panic(err)
	}
	return m
}

// Identity returns the n x n identity matrix.
func Identity(n int) Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < m.rows; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m Matrix) Cols() int { return m.cols }

// IsSquare reports whether the matrix has as many rows as columns.
func (m Matrix) IsSquare() bool { return m.rows == m.cols }

// At returns the element at (row, col).
func (m Matrix) At(row, col int) (float64, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, fmt.Errorf("matrix index (%d,%d) of %dx%d: %w", row, col, m.rows, m.cols, ErrIndexOutOfRange)
	}
	return m.data[row*m.cols+col], nil
}

// Set stores value at (row, col). Matrices built by this package are
// never shared, so Set mutates in place.
func (m Matrix) Set(row, col int, value float64) error {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return fmt.Errorf("matrix index (%d,%d) of %dx%d: %w", row, col, m.rows, m.cols, ErrIndexOutOfRange)
	}
	m.data[row*m.cols+col] = value
	return nil
}

func (m Matrix) at(row, col int) float64 {
	return m.data[row*m.cols+col]
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	out := NewMatrix(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// Add returns m + o.
func (m Matrix) Add(o Matrix) (Matrix, error) {
	if m.rows != o.rows || m.cols != o.cols {
		return Matrix{}, fmt.Errorf("add %dx%d + %dx%d: %w", m.rows, m.cols, o.rows, o.cols, ErrDimensionMismatch)
	}
	out := NewMatrix(m.rows, m.cols)
	for i := range m.data {
		out.data[i] = m.data[i] + o.data[i]
	}
	return out, nil
}

// Sub returns m - o.
func (m Matrix) Sub(o Matrix) (Matrix, error) {
	if m.rows != o.rows || m.cols != o.cols {
		return Matrix{}, fmt.Errorf("sub %dx%d - %dx%d: %w", m.rows, m.cols, o.rows, o.cols, ErrDimensionMismatch)
	}
	out := NewMatrix(m.rows, m.cols)
	for i := range m.data {
		out.data[i] = m.data[i] - o.data[i]
	}
	return out, nil
}

// Scale returns k*m.
func (m Matrix) Scale(k float64) Matrix {
	out := NewMatrix(m.rows, m.cols)
	for i := range m.data {
		out.data[i] = m.data[i] * k
	}
	return out
}

// Mul returns the product m*o, an m.Rows() x o.Cols() matrix.
func (m Matrix) Mul(o Matrix) (Matrix, error) {
	if m.cols != o.rows {
		return Matrix{}, fmt.Errorf("mul %dx%d * %dx%d: %w", m.rows, m.cols, o.rows, o.cols, ErrDimensionMismatch)
	}
	out := NewMatrix(m.rows, o.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < o.cols; c++ {
			var sum float64
			for k := 0; k < m.cols; k++ {
				sum += m.at(r, k) * o.at(k, c)
			}
			out.data[r*o.cols+c] = sum
		}
	}
	return out, nil
}

// MulVec returns the product m*v.
func (m Matrix) MulVec(v Vector) (Vector, error) {
	if m.cols != v.Len() {
		return Vector{}, fmt.Errorf("mulvec %dx%d * %d: %w", m.rows, m.cols, v.Len(), ErrDimensionMismatch)
	}
	out := Zero(m.rows)
	for r := 0; r < m.rows; r++ {
		var sum float64
		for k := 0; k < m.cols; k++ {
			sum += m.at(r, k) * v.elems[k]
		}
		out.elems[r] = sum
	}
	return out, nil
}

// Transpose returns the cols x rows transpose of m.
func (m Matrix) Transpose() Matrix {
	out := NewMatrix(m.cols, m.rows)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			out.data[c*m.rows+r] = m.at(r, c)
		}
	}
	return out
}

// Adjoint returns the (n-1) x (n-1) minor obtained by deleting row and col
// from the square matrix m.
func (m Matrix) Adjoint(row, col int) (Matrix, error) {
	if !m.IsSquare() {
		return Matrix{}, fmt.Errorf("adjoint of %dx%d: %w", m.rows, m.cols, ErrNotSquare)
	}
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return Matrix{}, fmt.Errorf("adjoint (%d,%d) of %dx%d: %w", row, col, m.rows, m.cols, ErrIndexOutOfRange)
	}
	out := NewMatrix(m.rows-1, m.cols-1)
	i := 0
	for r := 0; r < m.rows; r++ {
		if r == row {
			continue
		}
		for c := 0; c < m.cols; c++ {
			if c == col {
				continue
			}
			out.data[i] = m.at(r, c)
			i++
		}
	}
	return out, nil
}

// Determinant returns det(m) by cofactor expansion along the first row.
func (m Matrix) Determinant() (float64, error) {
	if !m.IsSquare() {
		return 0, fmt.Errorf("determinant of %dx%d: %w", m.rows, m.cols, ErrNotSquare)
	}
	if m.rows == 0 {
		return 0, fmt.Errorf("determinant of empty matrix: %w", ErrDimensionMismatch)
	}
	return m.det(), nil
}

// det assumes m is square and non-empty.
func (m Matrix) det() float64 {
	switch m.rows {
	case 1:
		return m.data[0]
	case 2:
		return m.data[0]*m.data[3] - m.data[1]*m.data[2]
	}
	var sum float64
	sign := 1.0
	for c := 0; c < m.cols; c++ {
		if v := m.at(0, c); v != 0 {
			minor, _ := m.Adjoint(0, c)
			sum += sign * v * minor.det()
		}
		sign = -sign
	}
	return sum
}

// Cofactors returns the matrix of signed minors C[i][j] = (-1)^(i+j) det(Adjoint(i,j)).
func (m Matrix) Cofactors() (Matrix, error) {
	if !m.IsSquare() {
		return Matrix{}, fmt.Errorf("cofactors of %dx%d: %w", m.rows, m.cols, ErrNotSquare)
	}
	out := NewMatrix(m.rows, m.cols)
	if m.rows == 1 {
		out.data[0] = 1
		return out, nil
	}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			minor, _ := m.Adjoint(r, c)
			v := minor.det()
			if (r+c)%2 == 1 {
				v = -v
			}
			out.data[r*m.cols+c] = v
		}
	}
	return out, nil
}

// Invert returns the inverse of m as transpose(cofactors) / det.
// A zero determinant yields ErrSingular; check it before trusting the
// result of any solve built on top.
func (m Matrix) Invert() (Matrix, error) {
	det, err := m.Determinant()
	if err != nil {
		return Matrix{}, fmt.Errorf("invert: %w", err)
	}
	if det == 0 {
		return Matrix{}, fmt.Errorf("invert %dx%d: %w", m.rows, m.cols, ErrSingular)
	}
	cof, err := m.Cofactors()
	if err != nil {
		return Matrix{}, fmt.Errorf("invert: %w", err)
	}
	return cof.Transpose().Scale(1 / det), nil
}

// Equal reports whether m and o have the same shape and every element
// differs by at most eps.
func (m Matrix) Equal(o Matrix, eps float64) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.data {
		if math.Abs(m.data[i]-o.data[i]) > eps {
			return false
		}
	}
	return true
}

func (m Matrix) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d", m.rows, m.cols)
	for r := 0; r < m.rows; r++ {
		b.WriteString("\n")
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%-4.4f", m.at(r, c))
		}
	}
	return b.String()
}
