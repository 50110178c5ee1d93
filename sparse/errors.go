// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// All kernels return these sentinels (possibly wrapped with a call-site tag)
// and tests match them via errors.Is. Public kernels never panic on
// user-triggered conditions; the only exception is CSR.At, which follows the
// gonum mat.Matrix contract.

package sparse

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("sparse: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("sparse: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf value at ingestion.
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")

	// ErrNegative signals a negative weight where a transition weight was expected.
	ErrNegative = errors.New("sparse: negative weight")

	// ErrNilMatrix indicates that a nil matrix was passed.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrAliased indicates that destination and source share storage.
	ErrAliased = errors.New("sparse: destination aliases operand")
)

// Canonical call-site tags used when wrapping sentinels.
const (
	opBuilderAdd    = "Builder.Add"
	opBuilderAddRow = "Builder.AddRow"
	opNewBuilder    = "NewBuilder"
	opFromDense     = "FromDense"
	opGet           = "CSR.Get"
	opNormalizeRows = "NormalizeRows"
	opMulDense      = "MulDense"
	opOutNeighbors  = "OutNeighbors"
	opNonNegative   = "ValidateNonNegative"
	opSquare        = "ValidateSquare"
)

// sparseErrorf wraps err with a call-site tag; the sentinel stays matchable.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// cellErrorf wraps err with a tag and the offending coordinates.
func cellErrorf(tag string, row, col int, err error) error {
	return fmt.Errorf("%s(%d,%d): %w", tag, row, col, err)
}
