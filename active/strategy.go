// SPDX-License-Identifier: MIT
package active

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Strategy picks the next node to query.
// probs row i holds the class distribution of candidates[i]. It returns the
// chosen node (an element of candidates) and the score that won.
type Strategy func(probs *mat.Dense, candidates []int) (node int, score float64, err error)

// Uncertainty picks the candidate whose distribution has the highest Shannon
// entropy. Ties go to the earliest candidate; NaN rows are skipped.
func Uncertainty() Strategy {
	return func(probs *mat.Dense, candidates []int) (int, float64, error) {
		if err := checkProbs(probs, candidates); err != nil {
			return 0, 0, err
		}

		return argmax(candidates, func(i int) float64 {
			return stat.Entropy(probs.RawRowView(i))
		})
	}
}

// Greedy picks the candidate most likely to belong to class.
// Ties go to the earliest candidate; NaN rows are skipped.
func Greedy(class int) Strategy {
	return func(probs *mat.Dense, candidates []int) (int, float64, error) {
		if err := checkProbs(probs, candidates); err != nil {
			return 0, 0, err
		}
		if _, c := probs.Dims(); class < 0 || class >= c {
			return 0, 0, fmt.Errorf("%w: class %d of %d", ErrBadClass, class, c)
		}

		return argmax(candidates, func(i int) float64 { return probs.At(i, class) })
	}
}

// checkProbs verifies there is one probability row per candidate.
func checkProbs(probs *mat.Dense, candidates []int) error {
	if len(candidates) == 0 {
		return ErrNoCandidates
	}
	if probs == nil {
		return fmt.Errorf("%w: nil probabilities", ErrShape)
	}
	if r, _ := probs.Dims(); r != len(candidates) {
		return fmt.Errorf("%w: %d rows for %d candidates", ErrShape, r, len(candidates))
	}

	return nil
}

// argmax returns the candidate with the largest finite score.
func argmax(candidates []int, score func(i int) float64) (int, float64, error) {
	best, bestScore := -1, math.Inf(-1)
	for i := range candidates {
		s := score(i)
		if math.IsNaN(s) {
			continue
		}
		if best < 0 || s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return 0, 0, fmt.Errorf("%w: every candidate scored NaN", ErrNoChoice)
	}

	return candidates[best], bestScore, nil
}
