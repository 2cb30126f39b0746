// Package linalg provides the dense vectors and matrices used by the
// geometry pipeline. Matrices never exceed 4x4 in practice (homogeneous
// transforms), so determinants and inverses use plain cofactor expansion.
//
// Operations never panic on bad input. Size mismatches, non-square
// matrices and singular inversions are reported through the sentinel
// errors below; callers test them with errors.Is.
package linalg
