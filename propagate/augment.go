// SPDX-License-Identifier: MIT
// Package propagate - label augmentation of the transition graph.
//
// Layout of the augmented (n+C)×(n+C) matrix Â:
//
//	      nodes      pseudo
//	    ┌──────────┬────────┐
//	    │ P (1-α)  │ α·vote │  labeled rows
//	    │ P        │   0    │  unlabeled rows
//	    ├──────────┼────────┤
//	    │    0     │   I_C  │  pseudo rows (absorbing)
//	    └──────────┴────────┘
//
// P is the row-normalized input graph. Every row of Â sums to 1.

package propagate

import (
	"fmt"

	"github.com/katalvlaran/labelprop/sparse"
)

// votes groups repeated training entries per node.
// order keeps first-appearance order so the build is deterministic.
type votes struct {
	order  []int             // distinct labeled nodes
	counts map[int][]float64 // node -> per-class count
	total  map[int]float64   // node -> number of entries
}

// tally groups (trainInd[i], observedLabels[i]) pairs by node.
func tally(numClasses int, trainInd, labels []int) votes {
	v := votes{
		counts: make(map[int][]float64, len(trainInd)),
		total:  make(map[int]float64, len(trainInd)),
	}
	for i, node := range trainInd {
		c, ok := v.counts[node]
		if !ok {
			c = make([]float64, numClasses)
			v.counts[node] = c
			v.order = append(v.order, node)
		}
		c[labels[i]]++
		v.total[node]++
	}

	return v
}

// share returns the normalized label distribution of a labeled node.
func (v votes) share(node int) []float64 {
	c, m := v.counts[node], v.total[node]
	out := make([]float64, len(c))
	for k := range c {
		out[k] = c[k] / m
	}

	return out
}

// Augment builds the label-augmented transition matrix for A.
// A is row-normalized first (see sparse.NormalizeRows); the caller's matrix is
// not modified. Pseudo-node for class k has index n+k.
//
// Errors: same input errors as Propagate, minus test-index checks.
func Augment(A *sparse.CSR, numClasses int, trainInd, observedLabels []int, alpha float64) (*sparse.CSR, error) {
	opts := DefaultOptions()
	opts.Alpha = alpha
	if err := validate(numClasses, trainInd, observedLabels, nil, A, opts); err != nil {
		return nil, propagateErrorf(opAugment, err)
	}
	P, _, err := sparse.NormalizeRows(A, sparse.WithEpsilon(opts.Epsilon))
	if err != nil {
		return nil, propagateErrorf(opAugment, err)
	}

	return augment(P, numClasses, tally(numClasses, trainInd, observedLabels), alpha)
}

// augment assembles Â from a row-normalized P.
// Implementation:
//   - Stage 1: copy P row by row, scaling labeled rows by (1-α); rows scaled
//     to zero are dropped entirely.
//   - Stage 2: add α·share_k on (v, n+k) for each labeled v. Entries accumulate
//     in the builder, so a self-contribution never overwrites another one.
//   - Stage 3: identity block for pseudo-nodes.
//
// Complexity: O(nnz(P) log nnz(P) + |labeled|·C).
func augment(P *sparse.CSR, numClasses int, v votes, alpha float64) (*sparse.CSR, error) {
	n := P.Rows()
	size := n + numClasses
	// P may carry NaN markers for zero rows; they must survive into Â.
	b, err := sparse.NewBuilder(size, size, sparse.WithValidateNaNInf(false))
	if err != nil {
		return nil, propagateErrorf(opAugment, err)
	}
	b.Grow(P.NNZ() + len(v.order)*numClasses + numClasses)

	var (
		cols  []int
		vals  []float64
		scale float64
	)
	for i := 0; i < n; i++ {
		scale = 1
		if _, labeled := v.counts[i]; labeled {
			scale = 1 - alpha
		}
		if scale == 0 {
			continue
		}
		cols, vals = P.Row(i)
		for p := range cols {
			if err = b.Add(i, cols[p], scale*vals[p]); err != nil {
				return nil, propagateErrorf(opAugment, err)
			}
		}
	}

	if alpha > 0 {
		for _, node := range v.order {
			for k, s := range v.share(node) {
				if s == 0 {
					continue
				}
				if err = b.Add(node, n+k, alpha*s); err != nil {
					return nil, propagateErrorf(opAugment, err)
				}
			}
		}
	}

	for k := 0; k < numClasses; k++ {
		if err = b.Add(n+k, n+k, 1); err != nil {
			return nil, propagateErrorf(opAugment, fmt.Errorf("pseudo-node %d: %w", k, err))
		}
	}

	return b.Build(), nil
}
