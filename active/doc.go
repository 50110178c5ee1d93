// Package active drives an active-learning loop around label propagation.
//
// Each round:
//
//  1. the selector proposes candidate nodes from the current labeled set;
//  2. propagation estimates class probabilities at the candidates;
//  3. the strategy picks one candidate;
//  4. the oracle labels it, and the pair is appended to the training set.
//
// The loop stops after Config.Queries rounds, when the selector runs out of
// candidates, or when the context is cancelled. Every round is logged with
// log/slog and recorded in the returned Trace.
package active
