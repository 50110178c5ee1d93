// SPDX-License-Identifier: MIT
package active

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/labelprop/propagate"
)

// Sentinel errors for the driver.
var (
	ErrNilComponent  = errors.New("active: nil graph, selector, strategy or oracle")
	ErrInvalidConfig = errors.New("active: invalid config")
	ErrNoCandidates  = errors.New("active: no candidates")
	ErrNoChoice      = errors.New("active: strategy could not choose")
	ErrShape         = errors.New("active: probabilities do not match candidates")
	ErrBadClass      = errors.New("active: class out of range")
	ErrBadLabel      = errors.New("active: oracle returned label out of range")
	ErrUnknownNode   = errors.New("active: oracle has no label for node")
	ErrNotCandidate  = errors.New("active: strategy picked a node outside the candidates")
)

// DefaultQueries is the default number of oracle queries per Run.
const DefaultQueries = 10

// Config configures a Learner.
type Config struct {
	// Queries is the maximum number of oracle calls in one Run.
	Queries int `yaml:"queries"`

	// AllowRepeats keeps already labeled nodes among the candidates.
	// By default they are filtered out before the strategy runs.
	AllowRepeats bool `yaml:"allow_repeats"`

	// Propagation configures every propagation call of the loop.
	Propagation propagate.Options `yaml:"propagation"`
}

// DefaultConfig returns a Config with documented defaults.
func DefaultConfig() Config {
	return Config{
		Queries:     DefaultQueries,
		Propagation: propagate.DefaultOptions(),
	}
}

// Validate checks Queries and the nested propagation options.
func (c Config) Validate() error {
	if c.Queries < 0 {
		return fmt.Errorf("%w: queries cannot be negative (%d)", ErrInvalidConfig, c.Queries)
	}
	if err := c.Propagation.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// LoadConfig decodes YAML from r on top of DefaultConfig and validates it.
//
//	queries: 20
//	propagation:
//	  alpha: 0.9
//	  num_iterations: 100
func LoadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("LoadConfig: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("LoadConfig: %w", err)
	}

	return c, nil
}
