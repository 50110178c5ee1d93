// SPDX-License-Identifier: MIT
package propagate

import (
	"errors"
	"fmt"
)

// Sentinel errors for propagation input validation.
var (
	// ErrInvalidClasses is returned when numClasses < 1.
	ErrInvalidClasses = errors.New("propagate: number of classes must be >= 1")

	// ErrNilGraph is returned when the adjacency matrix is nil.
	ErrNilGraph = errors.New("propagate: graph is nil")

	// ErrNonSquare is returned when the adjacency matrix is not n×n.
	ErrNonSquare = errors.New("propagate: graph is not square")

	// ErrInvalidWeight is returned for negative or non-finite edge weights.
	ErrInvalidWeight = errors.New("propagate: invalid edge weight")

	// ErrIndexOutOfRange is returned when a train/test index is outside [0, n).
	ErrIndexOutOfRange = errors.New("propagate: node index out of range")

	// ErrLabelOutOfRange is returned when an observed label is outside [0, numClasses).
	ErrLabelOutOfRange = errors.New("propagate: label out of range")

	// ErrLengthMismatch is returned when trainInd and observedLabels differ in length.
	ErrLengthMismatch = errors.New("propagate: train indices and labels differ in length")

	// ErrInvalidOption is returned when an Options field is outside its domain.
	ErrInvalidOption = errors.New("propagate: invalid option")

	// ErrZeroRow is returned for a zero-weight row when Options.RejectZeroRows is set.
	ErrZeroRow = errors.New("propagate: graph has a zero-weight row")
)

// Call-site tags.
const (
	opPropagate = "Propagate"
	opRun       = "Run"
	opPrior     = "Prior"
	opAugment   = "Augment"
	opEngine    = "Engine.Propagate"
	opLoad      = "LoadOptions"
)

// propagateErrorf wraps err with a call-site tag.
func propagateErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
