// SPDX-License-Identifier: MIT

// Package graphgen builds canonical weighted graphs as sparse.CSR adjacency
// matrices: paths, cycles, stars, complete graphs, clustered graphs and
// Erdős–Rényi style random graphs.
//
// Every generator is a Constructor. Build allocates an n×n sparse.Builder,
// runs the constructors over it in order (their edges accumulate) and
// returns the compressed matrix.
//
//	g, err := graphgen.Build(5, []graphgen.Option{graphgen.WithDirected(false)},
//		graphgen.Path(5))
//
// Determinism:
//   - Edges are emitted in increasing (i, j) order.
//   - Weights come from the configured WeightFn; with a fixed seed the
//     output is reproducible.
//   - Undirected graphs store both (i, j) and (j, i) with the same weight.
package graphgen
