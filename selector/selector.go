// SPDX-License-Identifier: MIT

// Package selector provides candidate-set functions for active-learning loops.
//
// A selector looks at the current iteration State and returns the node
// indices eligible for the next query. Selectors hold no state of their own.
//
//   - Exhaustive: every node not yet labeled.
//   - Walk: the out-neighbours of the most recently labeled node.
package selector

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/labelprop/sparse"
)

// ErrNoLabeled is returned by Walk when no node has been labeled yet.
var ErrNoLabeled = errors.New("selector: no labeled node to walk from")

// State is the view of an active-learning iteration a selector may use.
type State struct {
	// Labeled lists labeled nodes in labeling order (repeats allowed).
	Labeled []int

	// N is the number of nodes in the graph.
	N int

	// Graph is the base (unaugmented) graph.
	Graph *sparse.CSR
}

// Func returns the candidate node set for a State.
type Func func(State) ([]int, error)

// Exhaustive returns every index in [0, n) that is not in labeled, ascending.
// Labeled indices outside [0, n) are ignored.
func Exhaustive(labeled []int, n int) []int {
	if n <= 0 {
		return nil
	}
	seen := make([]bool, n)
	for _, i := range labeled {
		if i >= 0 && i < n {
			seen[i] = true
		}
	}
	out := make([]int, 0, n)
	for i, s := range seen {
		if !s {
			out = append(out, i)
		}
	}

	return out
}

// Walk returns the out-neighbours of last in A, i.e. every j with A[last, j] != 0, ascending.
func Walk(last int, A *sparse.CSR) ([]int, error) {
	nbrs, err := sparse.OutNeighbors(A, last)
	if err != nil {
		return nil, fmt.Errorf("selector: walk from %d: %w", last, err)
	}

	return nbrs, nil
}

// ExhaustiveFunc adapts Exhaustive to Func.
func ExhaustiveFunc() Func {
	return func(s State) ([]int, error) {
		return Exhaustive(s.Labeled, s.N), nil
	}
}

// WalkFunc adapts Walk to Func, walking from the last element of State.Labeled.
func WalkFunc() Func {
	return func(s State) ([]int, error) {
		if len(s.Labeled) == 0 {
			return nil, ErrNoLabeled
		}

		return Walk(s.Labeled[len(s.Labeled)-1], s.Graph)
	}
}
