// SPDX-License-Identifier: MIT
package active

import (
	"context"
	"fmt"
)

// Oracle reveals the true label of a node.
type Oracle interface {
	Label(ctx context.Context, node int) (int, error)
}

// OracleFunc adapts a function to Oracle.
type OracleFunc func(ctx context.Context, node int) (int, error)

// Label calls f.
func (f OracleFunc) Label(ctx context.Context, node int) (int, error) { return f(ctx, node) }

// TruthOracle answers from a fixed ground-truth vector, as in simulations.
func TruthOracle(truth []int) Oracle {
	labels := append([]int(nil), truth...)

	return OracleFunc(func(_ context.Context, node int) (int, error) {
		if node < 0 || node >= len(labels) {
			return 0, fmt.Errorf("%w: node %d, truth covers %d", ErrUnknownNode, node, len(labels))
		}
		return labels[node], nil
	})
}
