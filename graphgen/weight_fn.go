// SPDX-License-Identifier: MIT
package graphgen

import (
	"fmt"
	"math/rand"
)

// DefaultEdgeWeight is the weight used when no WeightFn is configured.
const DefaultEdgeWeight float64 = 1

// WeightFn draws one edge weight. rng may be nil for deterministic policies.
type WeightFn func(rng *rand.Rand) float64

// DefaultWeightFn always returns DefaultEdgeWeight.
func DefaultWeightFn(_ *rand.Rand) float64 { return DefaultEdgeWeight }

// ConstantWeightFn always returns value. Panics if value < 0.
func ConstantWeightFn(value float64) WeightFn {
	if value < 0 {
		panic(fmt.Sprintf("ConstantWeightFn: value must be ≥ 0, got %g", value))
	}

	return func(_ *rand.Rand) float64 { return value }
}

// UniformWeightFn draws from [min, max). A nil rng yields DefaultEdgeWeight.
// Panics unless 0 ≤ min ≤ max.
func UniformWeightFn(min, max float64) WeightFn {
	if min < 0 || max < min {
		panic(fmt.Sprintf("UniformWeightFn: require 0 ≤ min ≤ max, got min=%g, max=%g", min, max))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultEdgeWeight
		}
		if max == min {
			return min
		}

		return min + rng.Float64()*(max-min)
	}
}
