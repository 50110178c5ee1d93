// Package propagate implements semi-supervised label propagation with a
// partially absorbing random walk.
//
// What & Why:
//
//	Given a weighted graph A (n nodes), C classes and a handful of labeled
//	nodes, the engine estimates a class distribution for every other node.
//	It adds one absorbing pseudo-node per class (indices n..n+C-1, each with a
//	self-loop of weight 1). A labeled node v with label k keeps (1-α) of its
//	outgoing transition mass and sends α to pseudo-node k. Beliefs start at a
//	prior (uniform or Dirichlet-smoothed empirical), labeled rows are set to
//	their observed label and pseudo-node rows to the identity. Beliefs are then
//	pushed through the chain:
//
//	    B ← Â·B   (repeated NumIterations times)
//
//	Row i of B reads "where does a walk started at i end up, and what does it
//	believe there". α = 1 reproduces classical label propagation.
//
// Guarantees:
//   - Every output row is non-negative and sums to 1 for any iteration count,
//     because Â and the initial B are both row-stochastic.
//   - The caller's graph is never mutated.
//   - Invalid input is reported before any computation.
//
// Indices and labels are 0-based. Repeated entries in trainInd are votes:
// a node labeled m times gets label mass count_k/m, which keeps all rows
// stochastic.
//
// Complexity:
//
//	Each iteration costs O(nnz(A)·C); memory is O(nnz(A) + (n+C)·C).
//
// See Engine for repeated calls on the same graph (active-learning loops).
package propagate
