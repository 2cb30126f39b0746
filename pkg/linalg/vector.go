package linalg

import (
	"fmt"
	"math"
	"strings"
)

// Vector is an ordered, fixed-length sequence of reals. The length is set
// at construction; every operation returns a new Vector.
type Vector struct {
	elems []float64
}

// NewVector returns a vector holding a copy of vals.
func NewVector(vals ...float64) Vector {
	elems := make([]float64, len(vals))
	copy(elems, vals)
	return Vector{elems: elems}
}

// Zero returns a vector of n zeros.
func Zero(n int) Vector {
	if n < 0 {
		n = 0
	}
	return Vector{elems: make([]float64, n)}
}

// Len returns the number of components.
func (v Vector) Len() int {
	return len(v.elems)
}

// At returns component i.
func (v Vector) At(i int) (float64, error) {
	if i < 0 || i >= len(v.elems) {
		return 0, fmt.Errorf("vector index %d of %d: %w", i, len(v.elems), ErrIndexOutOfRange)
	}
	return v.elems[i], nil
}

// With returns a copy of v with component i set to value.
func (v Vector) With(i int, value float64) (Vector, error) {
	if i < 0 || i >= len(v.elems) {
		return Vector{}, fmt.Errorf("vector index %d of %d: %w", i, len(v.elems), ErrIndexOutOfRange)
	}
	out := NewVector(v.elems...)
	out.elems[i] = value
	return out, nil
}

// Values returns a copy of the components.
func (v Vector) Values() []float64 {
	out := make([]float64, len(v.elems))
	copy(out, v.elems)
	return out
}

// Dot returns the scalar product of v and w.
func Dot(v, w Vector) (float64, error) {
	if len(v.elems) != len(w.elems) {
		return 0, fmt.Errorf("dot %d·%d: %w", len(v.elems), len(w.elems), ErrDimensionMismatch)
	}
	var sum float64
	for i := range v.elems {
		sum += v.elems[i] * w.elems[i]
	}
	return sum, nil
}

// Add returns v + w.
func Add(v, w Vector) (Vector, error) {
	if len(v.elems) != len(w.elems) {
		return Vector{}, fmt.Errorf("add %d+%d: %w", len(v.elems), len(w.elems), ErrDimensionMismatch)
	}
	out := Zero(len(v.elems))
	for i := range v.elems {
		out.elems[i] = v.elems[i] + w.elems[i]
	}
	return out, nil
}

// Sub returns v - w.
func Sub(v, w Vector) (Vector, error) {
	if len(v.elems) != len(w.elems) {
		return Vector{}, fmt.Errorf("sub %d-%d: %w", len(v.elems), len(w.elems), ErrDimensionMismatch)
	}
	out := Zero(len(v.elems))
	for i := range v.elems {
		out.elems[i] = v.elems[i] - w.elems[i]
	}
	return out, nil
}

// Scale returns k*v.
func Scale(v Vector, k float64) Vector {
	out := Zero(len(v.elems))
	for i := range v.elems {
		out.elems[i] = v.elems[i] * k
	}
	return out
}

// Norm returns the Euclidean length over all components.
func (v Vector) Norm() float64 {
	var sum float64
	for _, e := range v.elems {
		sum += e * e
	}
	return math.Sqrt(sum)
}

// Normalize returns v scaled to unit length. A zero vector cannot be
// normalised and yields ErrSingular.
func (v Vector) Normalize() (Vector, error) {
	n := v.Norm()
	if n == 0 {
		return Vector{}, fmt.Errorf("normalize zero vector: %w", ErrSingular)
	}
	return Scale(v, 1/n), nil
}

// Equal reports whether v and w have the same length and every component
// differs by at most eps.
func (v Vector) Equal(w Vector, eps float64) bool {
	if len(v.elems) != len(w.elems) {
		return false
	}
	for i := range v.elems {
		if math.Abs(v.elems[i]-w.elems[i]) > eps {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	parts := make([]string, len(v.elems))
	for i, e := range v.elems {
		parts[i] = fmt.Sprintf("%.4f", e)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
