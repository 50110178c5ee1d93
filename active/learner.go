// SPDX-License-Identifier: MIT
package active

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/labelprop/propagate"
	"github.com/katalvlaran/labelprop/selector"
	"github.com/katalvlaran/labelprop/sparse"
)

// Query records one round of the loop.
type Query struct {
	Round      int
	Node       int
	Label      int
	Score      float64
	Candidates int
}

// Trace is the outcome of Run: the final training set plus per-round records.
type Trace struct {
	TrainInd       []int
	ObservedLabels []int
	Queries        []Query
}

// Learner runs the active-learning loop on one graph.
type Learner struct {
	graph    *sparse.CSR
	classes  int
	selector selector.Func
	strategy Strategy
	oracle   Oracle
	cfg      Config
	engine   *propagate.Engine
	logger   *slog.Logger
}

// Option configures a Learner.
type Option func(*Learner)

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(lr *Learner) {
		if l != nil {
			lr.logger = l
		}
	}
}

// WithEngine shares a propagation Engine (and its cache) between learners.
func WithEngine(e *propagate.Engine) Option {
	return func(lr *Learner) {
		if e != nil {
			lr.engine = e
		}
	}
}

// New returns a Learner. numClasses must be >= 1 and cfg must validate.
func New(graph *sparse.CSR, numClasses int, sel selector.Func, strat Strategy, oracle Oracle, cfg Config, opts ...Option) (*Learner, error) {
	if graph == nil || sel == nil || strat == nil || oracle == nil {
		return nil, ErrNilComponent
	}
	if numClasses < 1 {
		return nil, fmt.Errorf("%w: %d classes", ErrInvalidConfig, numClasses)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lr := &Learner{
		graph:    graph,
		classes:  numClasses,
		selector: sel,
		strategy: strat,
		oracle:   oracle,
		cfg:      cfg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(lr)
	}
	if lr.engine == nil {
		e, err := propagate.NewEngine(1)
		if err != nil {
			return nil, err
		}
		lr.engine = e
	}

	return lr, nil
}

// Run executes up to Config.Queries rounds starting from the given labeled set.
// The input slices are not modified. On error or cancellation the Trace built
// so far is returned alongside the error.
func (lr *Learner) Run(ctx context.Context, trainInd, observedLabels []int) (*Trace, error) {
	tr := &Trace{
		TrainInd:       slices.Clone(trainInd),
		ObservedLabels: slices.Clone(observedLabels),
	}
	n := lr.graph.Rows()

	for round := 0; round < lr.cfg.Queries; round++ {
		if err := ctx.Err(); err != nil {
			return tr, err
		}

		candidates, err := lr.selector(selector.State{Labeled: tr.TrainInd, N: n, Graph: lr.graph})
		if err != nil {
			return tr, fmt.Errorf("round %d: select: %w", round, err)
		}
		if !lr.cfg.AllowRepeats {
			candidates = slices.DeleteFunc(slices.Clone(candidates), func(c int) bool {
				return slices.Contains(tr.TrainInd, c)
			})
		}
		if len(candidates) == 0 {
			lr.logger.Info("active: no candidates left", "round", round, "labeled", len(tr.TrainInd))
			break
		}

		probs, err := lr.engine.Propagate(lr.classes, tr.TrainInd, tr.ObservedLabels, candidates, lr.graph, lr.cfg.Propagation)
		if err != nil {
			return tr, fmt.Errorf("round %d: propagate: %w", round, err)
		}
		node, score, err := lr.strategy(probs, candidates)
		if err != nil {
			return tr, fmt.Errorf("round %d: strategy: %w", round, err)
		}
		if !slices.Contains(candidates, node) {
			return tr, fmt.Errorf("round %d: %w: %d", round, ErrNotCandidate, node)
		}
		label, err := lr.oracle.Label(ctx, node)
		if err != nil {
			return tr, fmt.Errorf("round %d: oracle: %w", round, err)
		}
		if label < 0 || label >= lr.classes {
			return tr, fmt.Errorf("round %d: %w: node %d label %d", round, ErrBadLabel, node, label)
		}

		tr.TrainInd = append(tr.TrainInd, node)
		tr.ObservedLabels = append(tr.ObservedLabels, label)
		tr.Queries = append(tr.Queries, Query{
			Round:      round,
			Node:       node,
			Label:      label,
			Score:      score,
			Candidates: len(candidates),
		})
		lr.logger.Debug("active: query",
			"round", round,
			"node", node,
			"label", label,
			"score", score,
			"candidates", len(candidates),
		)
	}

	lr.logger.Info("active: run finished", "queries", len(tr.Queries), "labeled", len(tr.TrainInd))

	return tr, nil
}

// Predict propagates the given labeled set and returns probabilities at
// testInd using the Learner's configuration and Engine.
func (lr *Learner) Predict(trainInd, observedLabels, testInd []int) (*mat.Dense, error) {
	return lr.engine.Propagate(lr.classes, trainInd, observedLabels, testInd, lr.graph, lr.cfg.Propagation)
}
