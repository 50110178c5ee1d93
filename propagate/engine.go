// SPDX-License-Identifier: MIT
package propagate

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/labelprop/sparse"
)

// DefaultCacheSize is the number of normalized graphs an Engine keeps.
const DefaultCacheSize = 8

// cacheKey identifies a normalized graph. A *sparse.CSR is immutable, so its
// address is a stable identity for as long as the caller holds it.
type cacheKey struct {
	graph *sparse.CSR
	eps   float64
}

// Engine runs propagation calls and caches the row-normalized copy of each
// graph it sees. Active-learning loops call Propagate many times on the same
// graph with a growing labeled set; the cache removes the per-call
// normalization pass. Engine is safe for concurrent use.
type Engine struct {
	normalized *lru.Cache[cacheKey, *sparse.CSR]
}

// NewEngine returns an Engine whose cache holds up to size graphs.
func NewEngine(size int) (*Engine, error) {
	c, err := lru.New[cacheKey, *sparse.CSR](size)
	if err != nil {
		return nil, fmt.Errorf("NewEngine: %w", err)
	}

	return &Engine{normalized: c}, nil
}

// Propagate has the same contract as the package-level Propagate.
func (e *Engine) Propagate(numClasses int, trainInd, observedLabels, testInd []int, A *sparse.CSR, opts Options) (*mat.Dense, error) {
	res, err := e.run(numClasses, trainInd, observedLabels, testInd, A, opts)
	if err != nil {
		return nil, propagateErrorf(opEngine, err)
	}

	return res.extract(testInd), nil
}

// Run has the same contract as the package-level Run.
func (e *Engine) Run(numClasses int, trainInd, observedLabels []int, A *sparse.CSR, opts Options) (*Result, error) {
	res, err := e.run(numClasses, trainInd, observedLabels, nil, A, opts)
	if err != nil {
		return nil, propagateErrorf(opEngine, err)
	}

	return res, nil
}

func (e *Engine) run(numClasses int, trainInd, observedLabels, testInd []int, A *sparse.CSR, opts Options) (*Result, error) {
	if err := validate(numClasses, trainInd, observedLabels, testInd, A, opts); err != nil {
		return nil, err
	}
	P, err := e.normalize(A, opts.Epsilon)
	if err != nil {
		return nil, err
	}

	return run(P, numClasses, trainInd, observedLabels, opts)
}

// normalize returns the cached normalized copy of A, computing it on a miss.
func (e *Engine) normalize(A *sparse.CSR, eps float64) (*sparse.CSR, error) {
	key := cacheKey{graph: A, eps: eps}
	if P, ok := e.normalized.Get(key); ok {
		return P, nil
	}
	P, _, err := sparse.NormalizeRows(A, sparse.WithEpsilon(eps))
	if err != nil {
		return nil, err
	}
	e.normalized.Add(key, P)

	return P, nil
}

// Cached reports how many normalized graphs are currently held.
func (e *Engine) Cached() int { return e.normalized.Len() }

// Purge drops every cached graph.
func (e *Engine) Purge() { e.normalized.Purge() }
