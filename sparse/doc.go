// Package sparse provides a compressed-sparse-row (CSR) matrix tailored to
// transition graphs, together with the few kernels random-walk models need.
//
// The sparse package provides:
//
//   - Builder, a triplet (coordinate) accumulator that sums duplicate
//     coordinates and finalizes into an immutable *CSR. Negative and
//     non-finite weights are rejected unless switched off via Options.
//   - CSR, a row-major sparse matrix that satisfies gonum's mat.Matrix, so it
//     can be printed, compared and transposed with gonum helpers.
//   - Row statistics and normalization (RowSums, IsRowStochastic,
//     NormalizeRows, ZeroRows) for building row-stochastic transition matrices.
//   - MulDense, the sparse×dense product used by iterative propagation.
//   - OutNeighbors for neighbourhood queries on directed graphs.
//
// A CSR is never mutated after Build; every transforming kernel returns a
// fresh copy. That makes a single *CSR safe to share between goroutines.
//
// Indices are 0-based throughout.
package sparse
