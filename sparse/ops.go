// SPDX-License-Identifier: MIT
// Package sparse - row statistics, normalization and products.
//
// Purpose:
//   - Turn arbitrary non-negative weights into a row-stochastic transition
//     matrix (NormalizeRows) without touching the caller's matrix.
//   - Provide the sparse×dense kernel (MulDense) that drives iterative
//     propagation, writing straight into gonum's flat row-major buffers.
//
// Determinism & Policy:
//   - Fixed i→p loop orders; no map iteration; results are bitwise reproducible.
//   - Zero-sum rows are NOT repaired. NormalizeRows marks them with NaN so that
//     anything reachable from them surfaces as NaN instead of a silent value.

package sparse

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ValidateSquare checks that m is non-nil and square.
func ValidateSquare(m *CSR) error {
	if m == nil {
		return sparseErrorf(opSquare, ErrNilMatrix)
	}
	if m.r != m.c {
		return sparseErrorf(opSquare, ErrNonSquare)
	}

	return nil
}

// ValidateNonNegative checks that every stored entry is finite and >= 0.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf, ErrNegative (wrapped with the first offending cell).
//
// Complexity: O(nnz).
func ValidateNonNegative(m *CSR) error {
	if m == nil {
		return sparseErrorf(opNonNegative, ErrNilMatrix)
	}
	var v float64
	for i := 0; i < m.r; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			v = m.data[p]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return cellErrorf(opNonNegative, i, m.indices[p], ErrNaNInf)
			}
			if v < 0 {
				return cellErrorf(opNonNegative, i, m.indices[p], ErrNegative)
			}
		}
	}

	return nil
}

// RowSums returns s where s[i] = Σ_j m[i,j].
// Complexity: O(nnz + rows).
func RowSums(m *CSR) []float64 {
	sums := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		sums[i] = floats.Sum(m.data[m.indptr[i]:m.indptr[i+1]])
	}

	return sums
}

// ZeroRows returns the ascending indices of rows whose sum is exactly 0.
func ZeroRows(m *CSR) []int {
	var out []int
	for i, s := range RowSums(m) {
		if s == 0 {
			out = append(out, i)
		}
	}

	return out
}

// IsRowStochastic reports whether every row sums to 1 within the configured
// epsilon. Non-negativity is not checked here; see ValidateNonNegative.
func IsRowStochastic(m *CSR, opts ...Option) bool {
	eps := gatherOptions(opts...).eps
	for _, s := range RowSums(m) {
		if math.IsNaN(s) || math.Abs(s-1) > eps {
			return false
		}
	}

	return true
}

// NormalizeRows returns a row-stochastic copy of m and the original row sums.
// Implementation:
//   - Stage 1: compute row sums once.
//   - Stage 2: rows with |sum-1| <= eps are copied verbatim (idempotence).
//   - Stage 3: other rows are divided by their sum.
//   - Stage 4: zero-sum rows become undefined: stored values turn into NaN,
//     and a row with no stored entries receives a NaN self-loop
//     (or a NaN in column 0 for a non-square matrix).
//
// Errors:
//   - ErrNilMatrix for a nil input.
//
// Complexity: O(nnz + rows).
func NormalizeRows(m *CSR, opts ...Option) (*CSR, []float64, error) {
	if m == nil {
		return nil, nil, sparseErrorf(opNormalizeRows, ErrNilMatrix)
	}
	eps := gatherOptions(opts...).eps
	sums := RowSums(m)

	out := &CSR{
		r:       m.r,
		c:       m.c,
		indptr:  make([]int, m.r+1),
		indices: make([]int, 0, len(m.indices)),
		data:    make([]float64, 0, len(m.data)),
	}

	var lo, hi int
	for i := 0; i < m.r; i++ {
		lo, hi = m.indptr[i], m.indptr[i+1]
		switch s := sums[i]; {
		case s == 0 && lo == hi:
			col := 0
			if i < m.c {
				col = i
			}
			out.indices = append(out.indices, col)
			out.data = append(out.data, math.NaN())
		case s == 0:
			out.indices = append(out.indices, m.indices[lo:hi]...)
			for p := lo; p < hi; p++ {
				out.data = append(out.data, math.NaN())
			}
		case math.Abs(s-1) <= eps:
			out.indices = append(out.indices, m.indices[lo:hi]...)
			out.data = append(out.data, m.data[lo:hi]...)
		default:
			out.indices = append(out.indices, m.indices[lo:hi]...)
			start := len(out.data)
			out.data = append(out.data, m.data[lo:hi]...)
			floats.Scale(1/s, out.data[start:])
		}
		out.indptr[i+1] = len(out.data)
	}

	return out, sums, nil
}

// MulDense computes dst = a·b, overwriting dst.
// Implementation:
//   - Stage 1: validate shapes (a.Cols == b.Rows, dst is a.Rows×b.Cols) and aliasing.
//   - Stage 2: for each row i, zero dst[i,:] then axpy b[j,:] scaled by a[i,j]
//     for every stored (i,j). Structural and explicit zeros are skipped.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//   - ErrAliased when dst and b share a backing array, including views
//     obtained from Slice. Disjoint views of one array are rejected too.
//
// Complexity: O(nnz(a) · cols(b)).
func MulDense(dst *mat.Dense, a *CSR, b *mat.Dense) error {
	if dst == nil || a == nil || b == nil {
		return sparseErrorf(opMulDense, ErrNilMatrix)
	}
	if dst == b || sharesStorage(dst.RawMatrix().Data, b.RawMatrix().Data) {
		return sparseErrorf(opMulDense, ErrAliased)
	}
	br, bc := b.Dims()
	dr, dc := dst.Dims()
	if a.c != br || dr != a.r || dc != bc {
		return sparseErrorf(opMulDense, ErrDimensionMismatch)
	}

	braw, draw := b.RawMatrix(), dst.RawMatrix()
	var (
		out, src []float64
		v        float64
		j        int
	)
	for i := 0; i < a.r; i++ {
		out = draw.Data[i*draw.Stride : i*draw.Stride+bc]
		for k := range out {
			out[k] = 0
		}
		for p := a.indptr[i]; p < a.indptr[i+1]; p++ {
			if v = a.data[p]; v == 0 {
				continue
			}
			j = a.indices[p]
			src = braw.Data[j*braw.Stride : j*braw.Stride+bc]
			floats.AddScaled(out, v, src)
		}
	}

	return nil
}

// OutNeighbors returns the ascending columns j with m[i,j] != 0.
// Explicit zeros are not neighbours.
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange.
func OutNeighbors(m *CSR, i int) ([]int, error) {
	if m == nil {
		return nil, sparseErrorf(opOutNeighbors, ErrNilMatrix)
	}
	if i < 0 || i >= m.r {
		return nil, cellErrorf(opOutNeighbors, i, 0, ErrOutOfRange)
	}
	out := make([]int, 0, m.indptr[i+1]-m.indptr[i])
	for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
		if m.data[p] != 0 {
			out = append(out, m.indices[p])
		}
	}

	return out, nil
}

// sharesStorage reports whether x and y are windows on the same array.
// Re-slicing keeps the end of capacity, so the last addressable elements coincide.
func sharesStorage(x, y []float64) bool {
	if cap(x) == 0 || cap(y) == 0 {
		return false
	}

	return &x[:cap(x)][cap(x)-1] == &y[:cap(y)][cap(y)-1]
}
