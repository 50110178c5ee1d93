// SPDX-License-Identifier: MIT
package graphgen

import "math/rand"

// config carries the knobs shared by every Constructor.
type config struct {
	rng      *rand.Rand
	weightFn WeightFn
	directed bool
}

func newConfig(opts ...Option) config {
	cfg := config{weightFn: DefaultWeightFn}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Option customizes Build.
type Option func(*config)

// WithRand sets the random source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("graphgen: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithWeightFn sets the edge-weight policy. Panics on nil.
func WithWeightFn(fn WeightFn) Option {
	if fn == nil {
		panic("graphgen: WithWeightFn(nil)")
	}
	return func(c *config) { c.weightFn = fn }
}

// WithDirected emits only i→j edges when true; the default mirrors every edge.
func WithDirected(directed bool) Option {
	return func(c *config) { c.directed = directed }
}
