// SPDX-License-Identifier: MIT
package propagate_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/labelprop/propagate"
	"github.com/katalvlaran/labelprop/sparse"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestPrior covers the uniform prior and the Dirichlet-smoothed empirical prior.
func TestPrior(t *testing.T) {
	p, err := propagate.Prior(4, []int{0, 0, 3}, false, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, p)

	p, err = propagate.Prior(2, []int{0, 0, 1}, true, 0.1)
	require.NoError(t, err)
	require.InDelta(t, 2.1/3.2, p[0], 1e-12)
	require.InDelta(t, 1.1/3.2, p[1], 1e-12)

	// No observations at all: smoothing alone gives the uniform distribution.
	p, err = propagate.Prior(3, nil, true, 0.5)
	require.NoError(t, err)
	for _, v := range p {
		require.InDelta(t, 1.0/3, v, 1e-15)
	}
}

// TestPriorErrors covers invalid classes, labels and pseudocounts.
func TestPriorErrors(t *testing.T) {
	_, err := propagate.Prior(0, nil, false, 0)
	require.ErrorIs(t, err, propagate.ErrInvalidClasses)

	_, err = propagate.Prior(2, []int{2}, false, 0)
	require.ErrorIs(t, err, propagate.ErrLabelOutOfRange)

	_, err = propagate.Prior(2, []int{1}, true, 0)
	require.ErrorIs(t, err, propagate.ErrInvalidOption)

	// Pseudocount is irrelevant for the uniform prior.
	_, err = propagate.Prior(2, []int{1}, false, -1)
	require.NoError(t, err)
}

// TestPropagateValidation checks every caller-input error is reported up front.
func TestPropagateValidation(t *testing.T) {
	g := forwardPath(t, 4)
	nonSquare, err := sparse.FromDense(mat.NewDense(2, 3, []float64{1, 0, 0, 0, 1, 0}))
	require.NoError(t, err)
	negative, err := sparse.FromDense(mat.NewDense(2, 2, []float64{0, -1, 1, 0}), sparse.WithValidateNonNegative(false))
	require.NoError(t, err)

	def := propagate.DefaultOptions()
	with := func(mut func(*propagate.Options)) propagate.Options {
		o := propagate.DefaultOptions()
		mut(&o)
		return o
	}

	cases := []struct {
		name    string
		classes int
		train   []int
		labels  []int
		test    []int
		graph   *sparse.CSR
		opts    propagate.Options
		want    error
	}{
		{"zero classes", 0, nil, nil, []int{0}, g, def, propagate.ErrInvalidClasses},
		{"nil graph", 2, nil, nil, []int{0}, nil, def, propagate.ErrNilGraph},
		{"non-square", 2, nil, nil, []int{0}, nonSquare, def, propagate.ErrNonSquare},
		{"negative weight", 2, nil, nil, []int{0}, negative, def, propagate.ErrInvalidWeight},
		{"length mismatch", 2, []int{0, 1}, []int{0}, []int{2}, g, def, propagate.ErrLengthMismatch},
		{"train index high", 2, []int{4}, []int{0}, []int{2}, g, def, propagate.ErrIndexOutOfRange},
		{"train index negative", 2, []int{-1}, []int{0}, []int{2}, g, def, propagate.ErrIndexOutOfRange},
		{"test index high", 2, []int{0}, []int{0}, []int{9}, g, def, propagate.ErrIndexOutOfRange},
		{"label high", 2, []int{0}, []int{2}, []int{1}, g, def, propagate.ErrLabelOutOfRange},
		{"label negative", 2, []int{0}, []int{-1}, []int{1}, g, def, propagate.ErrLabelOutOfRange},
		{"negative iterations", 2, nil, nil, []int{0}, g, with(func(o *propagate.Options) { o.NumIterations = -1 }), propagate.ErrInvalidOption},
		{"alpha above one", 2, nil, nil, []int{0}, g, with(func(o *propagate.Options) { o.Alpha = 1.5 }), propagate.ErrInvalidOption},
		{"alpha NaN", 2, nil, nil, []int{0}, g, with(func(o *propagate.Options) { o.Alpha = math.NaN() }), propagate.ErrInvalidOption},
		{"zero pseudocount", 2, nil, nil, []int{0}, g, with(func(o *propagate.Options) { o.UsePrior = true; o.Pseudocount = 0 }), propagate.ErrInvalidOption},
		{"negative tolerance", 2, nil, nil, []int{0}, g, with(func(o *propagate.Options) { o.Tolerance = -1 }), propagate.ErrInvalidOption},
		{"negative epsilon", 2, nil, nil, []int{0}, g, with(func(o *propagate.Options) { o.Epsilon = -1 }), propagate.ErrInvalidOption},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := propagate.Propagate(tc.classes, tc.train, tc.labels, tc.test, tc.graph, tc.opts)
			require.ErrorIs(t, err, tc.want)
			require.Nil(t, out)
		})
	}
}

// TestRowStochasticity checks the central invariant over alphas, priors and iteration counts.
func TestRowStochasticity(t *testing.T) {
	const n = 30
	g := randomGraph(t, n, 7)
	train := []int{3, 11, 17, 25}
	labels := []int{0, 2, 1, 2}
	test := seq(0, n)

	for _, alpha := range []float64{0, 0.3, 1} {
		for _, usePrior := range []bool{false, true} {
			for _, iters := range []int{0, 1, 5, 200} {
				opts := propagate.DefaultOptions()
				opts.Alpha = alpha
				opts.UsePrior = usePrior
				opts.NumIterations = iters

				out, err := propagate.Propagate(3, train, labels, test, g, opts)
				require.NoError(t, err)
				r, c := out.Dims()
				require.Equal(t, n, r)
				require.Equal(t, 3, c)
				requireStochasticRows(t, out)
			}
		}
	}
}

// TestZeroIterations verifies the initial beliefs are returned unchanged.
func TestZeroIterations(t *testing.T) {
	g := randomGraph(t, 6, 3)
	opts := propagate.DefaultOptions()
	opts.NumIterations = 0
	opts.UsePrior = true

	train, labels := []int{1, 4}, []int{1, 0}
	out, err := propagate.Propagate(2, train, labels, []int{0, 1, 4, 5}, g, opts)
	require.NoError(t, err)

	pr, err := propagate.Prior(2, labels, true, opts.Pseudocount)
	require.NoError(t, err)

	require.Equal(t, pr, out.RawRowView(0))
	require.Equal(t, []float64{0, 1}, out.RawRowView(1))
	require.Equal(t, []float64{1, 0}, out.RawRowView(2))
	require.Equal(t, pr, out.RawRowView(3))
}

// TestDuplicateTrainingEntriesAreVotes verifies repeats are averaged and keep rows stochastic.
func TestDuplicateTrainingEntriesAreVotes(t *testing.T) {
	g := randomGraph(t, 5, 11)
	train, labels := []int{2, 2, 2}, []int{0, 0, 1}

	opts := propagate.DefaultOptions()
	opts.NumIterations = 0
	out, err := propagate.Propagate(2, train, labels, []int{2}, g, opts)
	require.NoError(t, err)
	require.InDelta(t, 2.0/3, out.At(0, 0), 1e-15)
	require.InDelta(t, 1.0/3, out.At(0, 1), 1e-15)

	aug, err := propagate.Augment(g, 2, train, labels, 0.6)
	require.NoError(t, err)
	require.True(t, sparse.IsRowStochastic(aug))
	require.InDelta(t, 0.6*2/3, aug.At(2, 5), 1e-15)
	require.InDelta(t, 0.6/3, aug.At(2, 6), 1e-15)

	opts.NumIterations = 50
	opts.Alpha = 0.6
	out, err = propagate.Propagate(2, train, labels, seq(0, 5), g, opts)
	require.NoError(t, err)
	requireStochasticRows(t, out)
}

// TestAugmentLayout checks scaling, label edges and the absorbing identity block.
func TestAugmentLayout(t *testing.T) {
	g := mustGraph(t, 3, [][3]float64{{0, 1, 2}, {0, 2, 2}, {1, 0, 1}, {2, 2, 5}})
	before := g.Clone()

	aug, err := propagate.Augment(g, 2, []int{0}, []int{1}, 0.25)
	require.NoError(t, err)

	r, c := aug.Dims()
	require.Equal(t, 5, r)
	require.Equal(t, 5, c)
	require.InDelta(t, 0.375, aug.At(0, 1), 1e-15) // 0.5·(1-α)
	require.InDelta(t, 0.375, aug.At(0, 2), 1e-15)
	require.InDelta(t, 0.25, aug.At(0, 4), 1e-15) // α to pseudo-node of class 1
	require.Equal(t, 0.0, aug.At(0, 3))
	require.Equal(t, 1.0, aug.At(1, 0))
	require.Equal(t, 1.0, aug.At(2, 2))
	require.Equal(t, 1.0, aug.At(3, 3))
	require.Equal(t, 1.0, aug.At(4, 4))
	require.True(t, sparse.IsRowStochastic(aug))
	require.True(t, mat.Equal(before, g))

	// Full absorption drops the labeled node's original edges.
	full, err := propagate.Augment(g, 2, []int{0}, []int{1}, 1)
	require.NoError(t, err)
	cols, _ := full.Row(0)
	require.Equal(t, []int{4}, cols)
}

// TestPseudoNodesStayAbsorbing verifies pseudo-node rows remain the exact identity.
func TestPseudoNodesStayAbsorbing(t *testing.T) {
	const n = 12
	g := randomGraph(t, n, 5)
	for _, iters := range []int{0, 1, 37, 500} {
		opts := propagate.DefaultOptions()
		opts.NumIterations = iters
		opts.Alpha = 0.5
		res, err := propagate.Run(3, []int{0, 1, 2}, []int{0, 1, 2}, g, opts)
		require.NoError(t, err)
		require.Equal(t, iters, res.Iterations)
		require.False(t, res.Converged)
		for k := 0; k < 3; k++ {
			for j := 0; j < 3; j++ {
				want := 0.0
				if j == k {
					want = 1
				}
				require.Equal(t, want, res.Beliefs.At(n+k, j))
			}
		}
	}
}

// TestFullAbsorptionConverges checks the gambler's-ruin limit on an undirected path.
func TestFullAbsorptionConverges(t *testing.T) {
	g := undirectedPath(t, 5)
	opts := propagate.DefaultOptions()
	opts.NumIterations = 2000

	out, err := propagate.Propagate(2, []int{0, 4}, []int{0, 1}, []int{1, 2, 3}, g, opts)
	require.NoError(t, err)
	require.InDelta(t, 0.75, out.At(0, 0), 1e-9)
	require.InDelta(t, 0.5, out.At(1, 0), 1e-9)
	require.InDelta(t, 0.25, out.At(2, 0), 1e-9)
	requireStochasticRows(t, out)
}

// TestNormalizationIdempotence compares a normalized graph with a row-scaled copy.
func TestNormalizationIdempotence(t *testing.T) {
	const n = 20
	raw := randomGraph(t, n, 42)
	normalized, _, err := sparse.NormalizeRows(raw)
	require.NoError(t, err)

	b, err := sparse.NewBuilder(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		cols, vals := normalized.Row(i)
		for p := range cols {
			require.NoError(t, b.Add(i, cols[p], vals[p]*float64(i+1)*3.5))
		}
	}
	scaled := b.Build()

	opts := propagate.DefaultOptions()
	opts.Alpha = 0.7
	opts.NumIterations = 60
	train, labels, test := []int{0, 5, 9}, []int{1, 0, 1}, seq(0, n)

	a, err := propagate.Propagate(2, train, labels, test, normalized, opts)
	require.NoError(t, err)
	s, err := propagate.Propagate(2, train, labels, test, scaled, opts)
	require.NoError(t, err)
	require.True(t, mat.EqualApprox(a, s, 1e-12))
}

// TestPathGraphScenario runs the 4-node path end to end in both orientations.
func TestPathGraphScenario(t *testing.T) {
	opts := propagate.DefaultOptions()
	opts.NumIterations = 50

	// 0→1→2→3, sink at 3. Walks from 3 never meet the labeled node, so 3 keeps
	// the prior. The labeled node itself absorbs only when alpha > 0.
	fwd := forwardPath(t, 4)
	opts.Alpha = 1
	out, err := propagate.Propagate(2, []int{0}, []int{0}, []int{0, 3}, fwd, opts)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0}, out.RawRowView(0))
	require.Equal(t, []float64{0.5, 0.5}, out.RawRowView(1))

	opts.Alpha = 0
	out, err = propagate.Propagate(2, []int{0}, []int{0}, []int{0, 3}, fwd, opts)
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 0.5}, out.RawRowView(0))
	require.Equal(t, []float64{0.5, 0.5}, out.RawRowView(1))

	// 3→2→1→0: the only path from 3 ends in the labeled node, which fully absorbs.
	bwd := backwardPath(t, 4)
	opts.Alpha = 1
	out, err = propagate.Propagate(2, []int{0}, []int{0}, []int{3}, bwd, opts)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0}, out.RawRowView(0))
}

// TestToleranceStopsEarly verifies the additive early-stop option.
func TestToleranceStopsEarly(t *testing.T) {
	g := backwardPath(t, 4)
	opts := propagate.DefaultOptions()
	opts.NumIterations = 1000
	opts.Tolerance = 1e-12

	res, err := propagate.Run(2, []int{0}, []int{0}, g, opts)
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Less(t, res.Iterations, 10)

	opts.Tolerance = 0
	res, err = propagate.Run(2, []int{0}, []int{0}, g, opts)
	require.NoError(t, err)
	require.False(t, res.Converged)
	require.Equal(t, 1000, res.Iterations)
}

// TestZeroRowSurfacesNaN verifies degenerate rows yield NaN rather than a silent value.
func TestZeroRowSurfacesNaN(t *testing.T) {
	// Node 2 has no outgoing edges; node 1 walks into it.
	g := mustGraph(t, 4, [][3]float64{{0, 0, 1}, {1, 2, 1}, {3, 0, 1}})
	opts := propagate.DefaultOptions()
	opts.NumIterations = 10

	out, err := propagate.Propagate(2, []int{0}, []int{1}, []int{1, 2, 3}, g, opts)
	require.NoError(t, err)
	require.True(t, math.IsNaN(out.At(0, 0)))
	require.True(t, math.IsNaN(out.At(1, 0)))
	require.Equal(t, []float64{0, 1}, out.RawRowView(2))

	opts.RejectZeroRows = true
	_, err = propagate.Propagate(2, []int{0}, []int{1}, []int{3}, g, opts)
	require.ErrorIs(t, err, propagate.ErrZeroRow)
}

// TestInputNotMutated ensures the caller's graph is left untouched.
func TestInputNotMutated(t *testing.T) {
	g := randomGraph(t, 10, 9)
	before := g.Clone()

	_, err := propagate.Propagate(2, []int{1, 2}, []int{0, 1}, seq(0, 10), g, propagate.DefaultOptions())
	require.NoError(t, err)
	require.True(t, mat.Equal(before, g))
}

// TestEmptyTestSet returns an empty matrix rather than an error.
func TestEmptyTestSet(t *testing.T) {
	out, err := propagate.Propagate(2, []int{0}, []int{0}, nil, forwardPath(t, 3), propagate.DefaultOptions())
	require.NoError(t, err)
	require.True(t, out.IsEmpty())
}

// TestResultProbabilities checks row extraction bounds.
func TestResultProbabilities(t *testing.T) {
	res, err := propagate.Run(2, []int{0}, []int{1}, backwardPath(t, 3), propagate.DefaultOptions())
	require.NoError(t, err)

	p, err := res.Probabilities([]int{2, 0})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1}, p.RawRowView(0))
	require.Equal(t, []float64{0, 1}, p.RawRowView(1))

	_, err = res.Probabilities([]int{3}) // pseudo-nodes are not addressable
	require.ErrorIs(t, err, propagate.ErrIndexOutOfRange)
}
