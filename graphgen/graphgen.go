// SPDX-License-Identifier: MIT
package graphgen

import (
	"fmt"

	"github.com/katalvlaran/labelprop/sparse"
)

// Method tags used in error messages.
const (
	methodBuild        = "Build"
	methodPath         = "Path"
	methodCycle        = "Cycle"
	methodStar         = "Star"
	methodComplete     = "Complete"
	methodClusters     = "Clusters"
	methodRandomSparse = "RandomSparse"
)

// Constructor adds edges to an n×n Builder.
type Constructor func(b *sparse.Builder, cfg config) error

// Build runs cons over a fresh n×n Builder and returns the resulting CSR.
// Edges added by several constructors to the same cell are summed.
func Build(n int, opts []Option, cons ...Constructor) (*sparse.CSR, error) {
	b, err := sparse.NewBuilder(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodBuild, err)
	}
	cfg := newConfig(opts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("%s: nil constructor at index %d: %w", methodBuild, i, ErrConstructFailed)
		}
		if err = fn(b, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", methodBuild, err)
		}
	}

	return b.Build(), nil
}

// edge adds i→j and, for undirected configs, j→i with one drawn weight.
func edge(method string, b *sparse.Builder, cfg config, i, j int) error {
	w := cfg.weightFn(cfg.rng)
	if err := b.Add(i, j, w); err != nil {
		return fmt.Errorf("%s: edge (%d,%d): %w: %w", method, i, j, ErrConstructFailed, err)
	}
	if cfg.directed || i == j {
		return nil
	}
	if err := b.Add(j, i, w); err != nil {
		return fmt.Errorf("%s: edge (%d,%d): %w: %w", method, j, i, ErrConstructFailed, err)
	}

	return nil
}

func atLeast(method string, n, min int) error {
	if n < min {
		return fmt.Errorf("%s: n=%d < min=%d: %w", method, n, min, ErrTooFewNodes)
	}
	return nil
}

// Path emits (i-1)→i for i in [1, n).
func Path(n int) Constructor {
	return func(b *sparse.Builder, cfg config) error {
		if err := atLeast(methodPath, n, 2); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err := edge(methodPath, b, cfg, i-1, i); err != nil {
				return err
			}
		}

		return nil
	}
}

// Cycle is Path plus the closing edge (n-1)→0.
func Cycle(n int) Constructor {
	return func(b *sparse.Builder, cfg config) error {
		if err := atLeast(methodCycle, n, 3); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := edge(methodCycle, b, cfg, i, (i+1)%n); err != nil {
				return err
			}
		}

		return nil
	}
}

// Star links hub 0 to every other node among the first n.
func Star(n int) Constructor {
	return func(b *sparse.Builder, cfg config) error {
		if err := atLeast(methodStar, n, 2); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err := edge(methodStar, b, cfg, 0, i); err != nil {
				return err
			}
		}

		return nil
	}
}

// Complete links every pair among the first n nodes (no self-loops).
func Complete(n int) Constructor {
	return func(b *sparse.Builder, cfg config) error {
		if err := atLeast(methodComplete, n, 1); err != nil {
			return err
		}
		return clique(methodComplete, b, cfg, 0, n)
	}
}

// clique links every pair in [lo, hi).
func clique(method string, b *sparse.Builder, cfg config, lo, hi int) error {
	for i := lo; i < hi; i++ {
		start := lo
		if !cfg.directed {
			start = i + 1
		}
		for j := start; j < hi; j++ {
			if i == j {
				continue
			}
			if err := edge(method, b, cfg, i, j); err != nil {
				return err
			}
		}
	}

	return nil
}

// Clusters lays out consecutive cliques of the given sizes and joins the last
// node of each clique to the first node of the next with weight bridge
// (0 leaves the cliques disconnected; a negative bridge is rejected).
// Node k belongs to cluster c when it lies in the c-th block, which makes
// Membership a ready ground truth.
func Clusters(sizes []int, bridge float64) Constructor {
	return func(b *sparse.Builder, cfg config) error {
		if err := atLeast(methodClusters, len(sizes), 1); err != nil {
			return err
		}
		lo := 0
		for c, size := range sizes {
			if size < 1 {
				return fmt.Errorf("%s: cluster %d has size %d: %w", methodClusters, c, size, ErrTooFewNodes)
			}
			if err := clique(methodClusters, b, cfg, lo, lo+size); err != nil {
				return err
			}
			if c > 0 && bridge != 0 {
				if err := b.Add(lo-1, lo, bridge); err != nil {
					return fmt.Errorf("%s: bridge: %w: %w", methodClusters, ErrConstructFailed, err)
				}
				if !cfg.directed {
					if err := b.Add(lo, lo-1, bridge); err != nil {
						return fmt.Errorf("%s: bridge: %w: %w", methodClusters, ErrConstructFailed, err)
					}
				}
			}
			lo += size
		}

		return nil
	}
}

// Membership returns the cluster index of every node laid out by Clusters(sizes, ·).
func Membership(sizes []int) []int {
	var out []int
	for c, size := range sizes {
		for k := 0; k < size; k++ {
			out = append(out, c)
		}
	}

	return out
}

// RandomSparse adds each candidate edge among the first n nodes independently
// with probability p. Needs WithSeed or WithRand unless p is 0 or 1.
func RandomSparse(n int, p float64) Constructor {
	return func(b *sparse.Builder, cfg config) error {
		if err := atLeast(methodRandomSparse, n, 1); err != nil {
			return err
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("%s: p=%.6f not in [0,1]: %w", methodRandomSparse, p, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}
		for i := 0; i < n; i++ {
			start := 0
			if !cfg.directed {
				start = i + 1
			}
			for j := start; j < n; j++ {
				if i == j {
					continue
				}
				keep := p == 1 || (p > 0 && cfg.rng.Float64() < p)
				if !keep {
					continue
				}
				if err := edge(methodRandomSparse, b, cfg, i, j); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
