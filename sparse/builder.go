// SPDX-License-Identifier: MIT
// Package sparse - triplet builder for CSR matrices.
//
// Purpose:
//   - Accumulate (row, col, value) triplets in any order and finalize them into
//     an immutable CSR in one pass.
//   - Entries at the same coordinate ACCUMULATE (they are summed), never overwrite.
//     Graph augmentation relies on this to stack several contributions on one edge.
//
// Determinism:
//   - Build sorts by (row, col) with a stable sort, so summation order for
//     duplicates equals insertion order.

package sparse

import (
	"math"
	"slices"
)

// triplet is one pending coordinate entry.
type triplet struct {
	i, j int
	v    float64
}

// Builder accumulates coordinate entries for a rows×cols matrix.
// The zero value is not usable; construct with NewBuilder.
type Builder struct {
	r, c    int
	entries []triplet
	opts    Options
}

// NewBuilder returns an empty rows×cols builder.
//
// Errors:
//   - ErrInvalidDimensions if rows <= 0 or cols <= 0.
//
// Complexity: O(1).
func NewBuilder(rows, cols int, opts ...Option) (*Builder, error) {
	if rows <= 0 || cols <= 0 {
		return nil, sparseErrorf(opNewBuilder, ErrInvalidDimensions)
	}

	return &Builder{r: rows, c: cols, opts: gatherOptions(opts...)}, nil
}

// Grow reserves capacity for n further entries.
func (b *Builder) Grow(n int) {
	b.entries = slices.Grow(b.entries, n)
}

// Dims returns the shape the builder will produce.
func (b *Builder) Dims() (rows, cols int) { return b.r, b.c }

// Len returns the number of triplets accumulated so far (duplicates included).
func (b *Builder) Len() int { return len(b.entries) }

// Add accumulates v at (i, j). Repeated coordinates are summed on Build.
//
// Errors:
//   - ErrOutOfRange for an index outside the builder shape.
//   - ErrNaNInf for a non-finite v while NaN/Inf validation is on.
//   - ErrNegative for v < 0 while non-negative validation is on (the default).
//
// Complexity: amortized O(1).
func (b *Builder) Add(i, j int, v float64) error {
	if i < 0 || i >= b.r || j < 0 || j >= b.c {
		return cellErrorf(opBuilderAdd, i, j, ErrOutOfRange)
	}
	if b.opts.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return cellErrorf(opBuilderAdd, i, j, ErrNaNInf)
	}
	if b.opts.validateNonNegative && v < 0 {
		return cellErrorf(opBuilderAdd, i, j, ErrNegative)
	}
	b.entries = append(b.entries, triplet{i: i, j: j, v: v})

	return nil
}

// AddRow accumulates vals[k] at (i, cols[k]) for every k.
// Nothing is appended unless every entry is valid.
//
// Errors:
//   - ErrDimensionMismatch if len(cols) != len(vals).
//   - Same conditions as Add.
func (b *Builder) AddRow(i int, cols []int, vals []float64) error {
	if len(cols) != len(vals) {
		return sparseErrorf(opBuilderAddRow, ErrDimensionMismatch)
	}
	mark := len(b.entries)
	for k := range cols {
		if err := b.Add(i, cols[k], vals[k]); err != nil {
			b.entries = b.entries[:mark] // roll back the partial row
			return sparseErrorf(opBuilderAddRow, err)
		}
	}

	return nil
}

// Build finalizes the accumulated triplets into a CSR matrix.
// Implementation:
//   - Stage 1: stable sort by (row, col).
//   - Stage 2: sweep once, summing runs of equal coordinates.
//   - Stage 3: prefix-sum row counts into indptr.
//
// Explicit zeros (including duplicates summing to zero) are kept as stored
// entries so the sparsity structure mirrors what the caller inserted.
// The builder stays usable; later Adds do not affect the returned matrix.
//
// Complexity: O(k log k) for k triplets; Space O(k + rows).
func (b *Builder) Build() *CSR {
	sorted := slices.Clone(b.entries)
	slices.SortStableFunc(sorted, func(x, y triplet) int {
		if x.i != y.i {
			return x.i - y.i
		}
		return x.j - y.j
	})

	m := &CSR{
		r:       b.r,
		c:       b.c,
		indptr:  make([]int, b.r+1),
		indices: make([]int, 0, len(sorted)),
		data:    make([]float64, 0, len(sorted)),
	}

	last := -1
	for k, t := range sorted {
		if k > 0 && t.i == sorted[k-1].i && t.j == sorted[k-1].j {
			m.data[last] += t.v
			continue
		}
		m.indices = append(m.indices, t.j)
		m.data = append(m.data, t.v)
		last++
		m.indptr[t.i+1]++
	}
	for i := 0; i < b.r; i++ {
		m.indptr[i+1] += m.indptr[i]
	}

	return m
}
