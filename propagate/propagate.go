// SPDX-License-Identifier: MIT
// Package propagate - the propagation engine.
//
// Stages of a call (no stage runs unless every earlier one succeeded):
//   1. validate      — shapes, indices, labels, options, weights.
//   2. normalize     — row-stochastic copy of A (sparse.NormalizeRows).
//   3. prior         — uniform or Dirichlet-smoothed empirical.
//   4. augment       — Â with absorbing pseudo-nodes.
//   5. seed beliefs  — prior everywhere, votes on labeled rows, I_C on pseudo rows.
//   6. iterate       — B ← Â·B, NumIterations times (optional early stop).
//   7. extract       — rows at testInd.

package propagate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/labelprop/sparse"
)

// Result holds the full outcome of a propagation run.
type Result struct {
	// Beliefs is the (n+C)×C belief matrix; rows n..n+C-1 belong to pseudo-nodes.
	Beliefs *mat.Dense

	// Prior is the class prior that seeded unlabeled rows.
	Prior []float64

	// Iterations is the number of steps actually performed.
	Iterations int

	// Converged is true only when Options.Tolerance > 0 stopped the loop early.
	Converged bool

	// Nodes and Classes are n and C.
	Nodes, Classes int
}

// Probabilities returns the belief rows at testInd as a |testInd|×C matrix.
// An empty testInd yields an empty (zero-value) *mat.Dense.
//
// Errors: ErrIndexOutOfRange for an index outside [0, Nodes).
func (r *Result) Probabilities(testInd []int) (*mat.Dense, error) {
	if err := checkIndices("testInd", testInd, r.Nodes); err != nil {
		return nil, err
	}

	return r.extract(testInd), nil
}

// extract copies rows at already validated indices.
func (r *Result) extract(testInd []int) *mat.Dense {
	if len(testInd) == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(len(testInd), r.Classes, nil)
	for row, idx := range testInd {
		out.SetRow(row, r.Beliefs.RawRowView(idx))
	}

	return out
}

// Propagate estimates class probabilities at testInd.
//
// Inputs:
//   - numClasses: C >= 1; labels are 0..C-1.
//   - trainInd, observedLabels: positional pairs; nodes in [0,n). Repeats are votes.
//   - testInd: nodes in [0,n); output row i belongs to testInd[i].
//   - A: square non-negative n×n weights; rows need not be normalized.
//   - opts: see Options; DefaultOptions() reproduces the reference behavior.
//
// Returns a |testInd|×C matrix whose rows are non-negative and sum to 1
// (rows reached from a zero-weight row of A are NaN instead).
//
// Errors: ErrInvalidClasses, ErrInvalidOption, ErrNilGraph, ErrNonSquare,
// ErrInvalidWeight, ErrLengthMismatch, ErrIndexOutOfRange, ErrLabelOutOfRange,
// ErrZeroRow. All are reported before any computation.
//
// Complexity: O(NumIterations · nnz(A) · C).
func Propagate(numClasses int, trainInd, observedLabels, testInd []int, A *sparse.CSR, opts Options) (*mat.Dense, error) {
	if err := validate(numClasses, trainInd, observedLabels, testInd, A, opts); err != nil {
		return nil, propagateErrorf(opPropagate, err)
	}
	P, _, err := sparse.NormalizeRows(A, sparse.WithEpsilon(opts.Epsilon))
	if err != nil {
		return nil, propagateErrorf(opPropagate, err)
	}
	res, err := run(P, numClasses, trainInd, observedLabels, opts)
	if err != nil {
		return nil, propagateErrorf(opPropagate, err)
	}

	return res.extract(testInd), nil
}

// Run performs a full propagation and returns beliefs for every node and
// pseudo-node together with loop diagnostics.
func Run(numClasses int, trainInd, observedLabels []int, A *sparse.CSR, opts Options) (*Result, error) {
	if err := validate(numClasses, trainInd, observedLabels, nil, A, opts); err != nil {
		return nil, propagateErrorf(opRun, err)
	}
	P, _, err := sparse.NormalizeRows(A, sparse.WithEpsilon(opts.Epsilon))
	if err != nil {
		return nil, propagateErrorf(opRun, err)
	}

	return run(P, numClasses, trainInd, observedLabels, opts)
}

// run executes stages 3..6 on a row-normalized P and validated input.
func run(P *sparse.CSR, numClasses int, trainInd, observedLabels []int, opts Options) (*Result, error) {
	n := P.Rows()
	v := tally(numClasses, trainInd, observedLabels)
	pr := prior(numClasses, observedLabels, opts.UsePrior, opts.Pseudocount)

	aug, err := augment(P, numClasses, v, opts.Alpha)
	if err != nil {
		return nil, err
	}

	cur := seed(n, numClasses, pr, v)
	res := &Result{Prior: pr, Nodes: n, Classes: numClasses}

	next := mat.NewDense(n+numClasses, numClasses, nil)
	for res.Iterations < opts.NumIterations {
		if err = sparse.MulDense(next, aug, cur); err != nil {
			return nil, err
		}
		cur, next = next, cur
		res.Iterations++
		if opts.Tolerance > 0 && maxChange(cur, next) <= opts.Tolerance {
			res.Converged = true
			break
		}
	}
	res.Beliefs = cur

	return res, nil
}

// seed builds the initial (n+C)×C belief matrix.
func seed(n, numClasses int, pr []float64, v votes) *mat.Dense {
	b := mat.NewDense(n+numClasses, numClasses, nil)
	for i := 0; i < n; i++ {
		b.SetRow(i, pr)
	}
	for _, node := range v.order {
		b.SetRow(node, v.share(node))
	}
	for k := 0; k < numClasses; k++ {
		b.Set(n+k, k, 1)
	}

	return b
}

// maxChange returns the largest absolute element difference between a and b.
// Both are freshly allocated dense matrices, so their raw data is contiguous.
func maxChange(a, b *mat.Dense) float64 {
	return floats.Distance(a.RawMatrix().Data, b.RawMatrix().Data, math.Inf(1))
}

// validate runs every input check in a fixed order. testInd may be nil.
func validate(numClasses int, trainInd, observedLabels, testInd []int, A *sparse.CSR, opts Options) error {
	if numClasses < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidClasses, numClasses)
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	if A == nil {
		return ErrNilGraph
	}
	if r, c := A.Dims(); r != c {
		return fmt.Errorf("%w: %dx%d", ErrNonSquare, r, c)
	}
	if err := sparse.ValidateNonNegative(A); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWeight, err)
	}
	if len(trainInd) != len(observedLabels) {
		return fmt.Errorf("%w: %d indices, %d labels", ErrLengthMismatch, len(trainInd), len(observedLabels))
	}
	n := A.Rows()
	if err := checkIndices("trainInd", trainInd, n); err != nil {
		return err
	}
	if err := checkIndices("testInd", testInd, n); err != nil {
		return err
	}
	if err := checkLabels(observedLabels, numClasses); err != nil {
		return err
	}
	if opts.RejectZeroRows {
		if zero := sparse.ZeroRows(A); len(zero) > 0 {
			return fmt.Errorf("%w: row %d (%d total)", ErrZeroRow, zero[0], len(zero))
		}
	}

	return nil
}

// checkIndices verifies every index lies in [0, n).
func checkIndices(name string, ind []int, n int) error {
	for i, idx := range ind {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: %s[%d]=%d, nodes=%d", ErrIndexOutOfRange, name, i, idx, n)
		}
	}

	return nil
}
