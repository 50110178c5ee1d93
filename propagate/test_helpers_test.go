// SPDX-License-Identifier: MIT
// Package propagate_test contains shared fixtures.
//
// Purpose:
//   • Small deterministic graphs (paths, random sparse) built via sparse.Builder.
//   • Row-stochasticity assertions reused across tests.

package propagate_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/labelprop/sparse"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// stochasticTol is the tolerance for "row sums to 1" assertions.
const stochasticTol = 1e-9

// mustGraph builds an n×n CSR from (i, j, w) triples or fails the test.
func mustGraph(t *testing.T, n int, edges [][3]float64) *sparse.CSR {
	t.Helper()
	b, err := sparse.NewBuilder(n, n)
	require.NoError(t, err)
	for _, e := range edges {
		require.NoError(t, b.Add(int(e[0]), int(e[1]), e[2]))
	}

	return b.Build()
}

// forwardPath returns 0→1→…→n-1 with a self-loop on n-1.
func forwardPath(t *testing.T, n int) *sparse.CSR {
	t.Helper()
	edges := make([][3]float64, 0, n)
	for i := 0; i < n-1; i++ {
		edges = append(edges, [3]float64{float64(i), float64(i + 1), 1})
	}
	edges = append(edges, [3]float64{float64(n - 1), float64(n - 1), 1})

	return mustGraph(t, n, edges)
}

// backwardPath returns n-1→…→1→0 with a self-loop on 0.
func backwardPath(t *testing.T, n int) *sparse.CSR {
	t.Helper()
	edges := [][3]float64{{0, 0, 1}}
	for i := 1; i < n; i++ {
		edges = append(edges, [3]float64{float64(i), float64(i - 1), 1})
	}

	return mustGraph(t, n, edges)
}

// undirectedPath returns the symmetric path 0–1–…–n-1 with unit weights.
func undirectedPath(t *testing.T, n int) *sparse.CSR {
	t.Helper()
	var edges [][3]float64
	for i := 0; i < n-1; i++ {
		edges = append(edges,
			[3]float64{float64(i), float64(i + 1), 1},
			[3]float64{float64(i + 1), float64(i), 1},
		)
	}

	return mustGraph(t, n, edges)
}

// randomGraph returns a seeded random non-negative graph where every row has
// at least one outgoing edge and weights are NOT normalized.
func randomGraph(t *testing.T, n int, seed int64) *sparse.CSR {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	b, err := sparse.NewBuilder(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, b.Add(i, rng.Intn(n), 0.1+rng.Float64()*5))
		for k := 0; k < 3; k++ {
			if rng.Float64() < 0.5 {
				require.NoError(t, b.Add(i, rng.Intn(n), rng.Float64()*5))
			}
		}
	}

	return b.Build()
}

// requireStochasticRows asserts every row of m is non-negative and sums to 1.
func requireStochasticRows(t *testing.T, m *mat.Dense) {
	t.Helper()
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		sum := 0.0
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			require.False(t, math.IsNaN(v), "row %d col %d is NaN", i, j)
			require.GreaterOrEqual(t, v, 0.0, "row %d col %d negative", i, j)
			sum += v
		}
		require.InDelta(t, 1.0, sum, stochasticTol, "row %d sums to %v", i, sum)
	}
}

// seq returns [lo, lo+1, …, hi-1].
func seq(lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}

	return out
}
