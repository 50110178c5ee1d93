// SPDX-License-Identifier: MIT

// Package sparse: functional configuration for builders and row kernels.
// This file defines:
//   - Option / Options (functional options with unexported state),
//   - documented defaults (constants),
//   - WithX constructors (panic on nonsensical values, i.e. programmer error),
//   - gatherOptions helper that resolves a variadic option list.
//
// Design goals:
//   - No global state; each call resolves its own Options.
//   - No dead switches: each flag changes observable behavior and is tested.
package sparse

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the absolute tolerance used when deciding whether a
	// row already sums to 1.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf rejects NaN/±Inf values at ingestion when true.
	DefaultValidateNaNInf = true

	// DefaultValidateNonNegative rejects negative weights at ingestion when true.
	DefaultValidateNonNegative = true
)

const panicEpsilonInvalid = "sparse: WithEpsilon: eps must be finite, non-negative"

// Option mutates internal options. Applying the same Option twice is harmless.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	eps                 float64
	validateNaNInf      bool
	validateNonNegative bool
}

// NewOptions returns Options with documented defaults and opts applied in order.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Epsilon reports the resolved row-sum tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether non-finite ingestion is rejected.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// ValidateNonNegative reports whether negative ingestion is rejected.
func (o Options) ValidateNonNegative() bool { return o.validateNonNegative }

// WithEpsilon sets the row-sum tolerance. Panics if eps is negative, NaN or Inf.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf toggles rejection of non-finite values by Builder.Add.
func WithValidateNaNInf(on bool) Option {
	return func(o *Options) { o.validateNaNInf = on }
}

// WithValidateNonNegative toggles rejection of negative values by Builder.Add.
// Turn it off to stage signed matrices or cancelling duplicates.
func WithValidateNonNegative(on bool) Option {
	return func(o *Options) { o.validateNonNegative = on }
}

// gatherOptions resolves opts over the defaults; last writer wins.
func gatherOptions(opts ...Option) Options {
	o := Options{
		eps:                 DefaultEpsilon,
		validateNaNInf:      DefaultValidateNaNInf,
		validateNonNegative: DefaultValidateNonNegative,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
