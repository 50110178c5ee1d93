// SPDX-License-Identifier: MIT

// Package sparse - CSR storage & safe accessors.
//
// Purpose:
//   - Compact row-major sparse storage: row i occupies indices/data in
//     [indptr[i], indptr[i+1]), column indices ascending within a row.
//   - Safe public accessors (Get returns errors) next to the gonum mat.Matrix
//     contract (At panics out of range) so a *CSR can be handed to gonum helpers.
//
// Complexity quicksheet:
//   - Dims/NNZ: O(1); Row: O(1) (shares storage); Get/At: O(log deg(i));
//     Clone: O(nnz + rows).

package sparse

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// CSR is an immutable compressed-sparse-row matrix.
type CSR struct {
	r, c    int
	indptr  []int     // len r+1, indptr[0] == 0, non-decreasing
	indices []int     // column of each stored entry, ascending within a row
	data    []float64 // value of each stored entry
}

// Compile-time conformance checks.
var (
	_ mat.Matrix   = (*CSR)(nil)
	_ fmt.Stringer = (*CSR)(nil)
)

// Dims returns the number of rows and columns (gonum mat.Matrix).
func (m *CSR) Dims() (rows, cols int) { return m.r, m.c }

// Rows returns the row count.
func (m *CSR) Rows() int { return m.r }

// Cols returns the column count.
func (m *CSR) Cols() int { return m.c }

// NNZ returns the number of stored entries, explicit zeros included.
func (m *CSR) NNZ() int { return len(m.data) }

// Row returns the stored columns and values of row i.
// The slices alias internal storage and must not be modified.
// Panics like At when i is out of range.
func (m *CSR) Row(i int) (cols []int, vals []float64) {
	if i < 0 || i >= m.r {
		panic(mat.ErrRowAccess)
	}
	lo, hi := m.indptr[i], m.indptr[i+1]

	return m.indices[lo:hi:hi], m.data[lo:hi:hi]
}

// lookup returns the value stored at (i, j), or 0 for a structural zero.
// Indices are assumed valid.
func (m *CSR) lookup(i, j int) float64 {
	lo, hi := m.indptr[i], m.indptr[i+1]
	cols := m.indices[lo:hi]
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return m.data[lo+k]
	}

	return 0
}

// At returns the element at (i, j) (gonum mat.Matrix).
// It panics with mat.ErrRowAccess / mat.ErrColAccess on invalid indices;
// use Get for an error-returning accessor.
func (m *CSR) At(i, j int) float64 {
	if i < 0 || i >= m.r {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= m.c {
		panic(mat.ErrColAccess)
	}

	return m.lookup(i, j)
}

// Get returns the element at (i, j) or ErrOutOfRange.
func (m *CSR) Get(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, cellErrorf(opGet, i, j, ErrOutOfRange)
	}

	return m.lookup(i, j), nil
}

// T returns the implicit transpose (gonum mat.Matrix).
func (m *CSR) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// Clone returns a deep copy that shares no storage with m.
func (m *CSR) Clone() *CSR {
	return &CSR{
		r:       m.r,
		c:       m.c,
		indptr:  append([]int(nil), m.indptr...),
		indices: append([]int(nil), m.indices...),
		data:    append([]float64(nil), m.data...),
	}
}

// String renders the stored entries, one "(i,j) v" per line, in row order.
func (m *CSR) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			fmt.Fprintf(&sb, "(%d,%d) %g\n", i, m.indices[p], m.data[p])
		}
	}

	return sb.String()
}

// FromDense copies the non-zero entries of a gonum matrix into a CSR.
//
// Errors:
//   - ErrNilMatrix for a nil input.
//   - ErrInvalidDimensions for an empty matrix.
//   - ErrNaNInf for a non-finite entry while validation is on.
//
// Complexity: O(rows*cols).
func FromDense(a mat.Matrix, opts ...Option) (*CSR, error) {
	if a == nil {
		return nil, sparseErrorf(opFromDense, ErrNilMatrix)
	}
	r, c := a.Dims()
	b, err := NewBuilder(r, c, opts...)
	if err != nil {
		return nil, sparseErrorf(opFromDense, err)
	}
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v = a.At(i, j); v == 0 {
				continue
			}
			if err = b.Add(i, j, v); err != nil {
				return nil, sparseErrorf(opFromDense, err)
			}
		}
	}

	return b.Build(), nil
}
