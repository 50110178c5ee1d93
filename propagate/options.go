// SPDX-License-Identifier: MIT

// Package propagate: configuration record.
//
// Options is a plain value with documented defaults. It is validated once at
// call entry (Validate) and the first invalid field is reported as
// ErrInvalidOption. Options can be decoded from YAML with LoadOptions; keys
// that are absent keep their defaults, unknown keys are rejected.
package propagate

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/labelprop/sparse"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultNumIterations is the number of chain steps.
	DefaultNumIterations = 200

	// DefaultAlpha is the absorption strength; 1 is classical label propagation.
	DefaultAlpha = 1.0

	// DefaultUsePrior selects the uniform prior.
	DefaultUsePrior = false

	// DefaultPseudocount is the Dirichlet smoothing strength for the empirical prior.
	DefaultPseudocount = 0.1

	// DefaultTolerance disables early stopping; only NumIterations bounds the loop.
	DefaultTolerance = 0.0

	// DefaultRejectZeroRows lets zero-weight rows through as NaN beliefs.
	DefaultRejectZeroRows = false

	// DefaultEpsilon is the row-sum tolerance used to decide whether a row needs normalizing.
	DefaultEpsilon = sparse.DefaultEpsilon
)

// Options configures a propagation call.
type Options struct {
	// NumIterations is the number of steps B ← Â·B. Zero returns the initial beliefs.
	NumIterations int `yaml:"num_iterations"`

	// Alpha in [0,1] is the share of a labeled node's transition mass sent to
	// its label's pseudo-node.
	Alpha float64 `yaml:"alpha"`

	// UsePrior selects the Dirichlet-smoothed empirical prior instead of the uniform one.
	UsePrior bool `yaml:"use_prior"`

	// Pseudocount (> 0) smooths the empirical prior. Ignored unless UsePrior.
	Pseudocount float64 `yaml:"pseudocount"`

	// Tolerance > 0 stops early once the largest absolute belief change of a
	// step is <= Tolerance. Zero disables the check.
	Tolerance float64 `yaml:"tolerance"`

	// RejectZeroRows turns a zero-weight row of A into ErrZeroRow instead of
	// NaN-bearing beliefs.
	RejectZeroRows bool `yaml:"reject_zero_rows"`

	// Epsilon is the absolute tolerance on row sums of A.
	Epsilon float64 `yaml:"epsilon"`
}

// DefaultOptions returns Options with every documented default.
func DefaultOptions() Options {
	return Options{
		NumIterations:  DefaultNumIterations,
		Alpha:          DefaultAlpha,
		UsePrior:       DefaultUsePrior,
		Pseudocount:    DefaultPseudocount,
		Tolerance:      DefaultTolerance,
		RejectZeroRows: DefaultRejectZeroRows,
		Epsilon:        DefaultEpsilon,
	}
}

// finite reports whether v is neither NaN nor ±Inf.
func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Validate checks every field and returns the first violation wrapped around ErrInvalidOption.
func (o Options) Validate() error {
	switch {
	case o.NumIterations < 0:
		return fmt.Errorf("%w: num_iterations cannot be negative (%d)", ErrInvalidOption, o.NumIterations)
	case !(o.Alpha >= 0 && o.Alpha <= 1): // also rejects NaN
		return fmt.Errorf("%w: alpha must lie in [0,1] (%v)", ErrInvalidOption, o.Alpha)
	case o.UsePrior && !(o.Pseudocount > 0 && finite(o.Pseudocount)):
		return fmt.Errorf("%w: pseudocount must be finite and > 0 (%v)", ErrInvalidOption, o.Pseudocount)
	case !(o.Tolerance >= 0 && finite(o.Tolerance)):
		return fmt.Errorf("%w: tolerance must be finite and >= 0 (%v)", ErrInvalidOption, o.Tolerance)
	case !(o.Epsilon >= 0 && finite(o.Epsilon)):
		return fmt.Errorf("%w: epsilon must be finite and >= 0 (%v)", ErrInvalidOption, o.Epsilon)
	}

	return nil
}

// LoadOptions decodes YAML from r on top of DefaultOptions and validates the result.
// An empty document yields the defaults.
func LoadOptions(r io.Reader) (Options, error) {
	o := DefaultOptions()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, propagateErrorf(opLoad, err)
	}
	if err := o.Validate(); err != nil {
		return Options{}, propagateErrorf(opLoad, err)
	}

	return o, nil
}
