// SPDX-License-Identifier: MIT
package graphgen

import "errors"

// ErrTooFewNodes is returned when a size parameter is below the generator's minimum.
var ErrTooFewNodes = errors.New("graphgen: parameter too small")

// ErrInvalidProbability is returned when an edge probability is outside [0,1].
var ErrInvalidProbability = errors.New("graphgen: probability out of range")

// ErrNeedRandSource is returned when a stochastic generator runs without WithSeed/WithRand.
var ErrNeedRandSource = errors.New("graphgen: rng is required")

// ErrConstructFailed is returned for a nil constructor or a rejected edge.
var ErrConstructFailed = errors.New("graphgen: construction failed")
