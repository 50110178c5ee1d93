// SPDX-License-Identifier: MIT
package propagate

import "fmt"

// Prior returns the class prior used to seed unlabeled beliefs.
//
// With usePrior == false it is uniform (1/C each). Otherwise it is the
// Dirichlet-smoothed empirical distribution of observedLabels:
//
//	p_k = (pseudocount + count_k) / Σ_j (pseudocount + count_j)
//
// Errors: ErrInvalidClasses, ErrLabelOutOfRange, ErrInvalidOption (pseudocount).
func Prior(numClasses int, observedLabels []int, usePrior bool, pseudocount float64) ([]float64, error) {
	if numClasses < 1 {
		return nil, propagateErrorf(opPrior, ErrInvalidClasses)
	}
	if err := checkLabels(observedLabels, numClasses); err != nil {
		return nil, propagateErrorf(opPrior, err)
	}
	if usePrior && !(pseudocount > 0 && finite(pseudocount)) {
		return nil, propagateErrorf(opPrior,
			fmt.Errorf("%w: pseudocount must be finite and > 0 (%v)", ErrInvalidOption, pseudocount))
	}

	return prior(numClasses, observedLabels, usePrior, pseudocount), nil
}

// prior computes the prior for already validated input.
func prior(numClasses int, labels []int, usePrior bool, pseudocount float64) []float64 {
	p := make([]float64, numClasses)
	if !usePrior {
		for k := range p {
			p[k] = 1 / float64(numClasses)
		}
		return p
	}

	for k := range p {
		p[k] = pseudocount
	}
	for _, l := range labels {
		p[l]++
	}
	total := pseudocount*float64(numClasses) + float64(len(labels))
	for k := range p {
		p[k] /= total
	}

	return p
}

// checkLabels verifies every label lies in [0, numClasses).
func checkLabels(labels []int, numClasses int) error {
	for i, l := range labels {
		if l < 0 || l >= numClasses {
			return fmt.Errorf("%w: observedLabels[%d]=%d, classes=%d", ErrLabelOutOfRange, i, l, numClasses)
		}
	}

	return nil
}
