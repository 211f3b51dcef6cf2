// Package dataset assembles verified problems into persisted datasets: it
// wires generation, masking, verification and rendering into a parallel
// pipeline whose acceptance policy only emits problems with a provably
// unique answer.
package dataset

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wordprob/wordprob/scenario"
)

// MaskingMix weighs the mask kinds applied by the pipeline. Weights are
// relative; a zero-sum mix masks nothing.
type MaskingMix struct {
	Initial  float64 `yaml:"initial"`
	Transfer float64 `yaml:"transfer"`
	None     float64 `yaml:"none"`
}

// VerificationConfig tunes both verifiers.
type VerificationConfig struct {
	// Tolerance is the numerical rank cutoff; zero selects the verify
	// package default.
	Tolerance float64 `yaml:"tolerance"`
	// SMT enables the formal cross-check on every candidate.
	SMT bool `yaml:"smt"`
	// SMTTimeout limits each satisfiability check.
	SMTTimeout time.Duration `yaml:"smtTimeout"`
	// Bound is the inventory ceiling for the solver encoding.
	Bound int64 `yaml:"bound"`
}

// OutputConfig selects where and how problems are written.
type OutputConfig struct {
	Path string `yaml:"path"`
	// Format is "jsonl" or "cbor".
	Format string `yaml:"format"`
}

// Config drives one dataset generation run.
type Config struct {
	Seed  int64 `yaml:"seed"`
	Count int   `yaml:"count"`
	// Workers bounds pipeline parallelism; zero means GOMAXPROCS.
	Workers int `yaml:"workers"`
	// MaxAttempts bounds regeneration per emitted problem when candidates
	// fail verification.
	MaxAttempts int `yaml:"maxAttempts"`

	Scenario     scenario.Config    `yaml:"scenario"`
	Masking      MaskingMix         `yaml:"masking"`
	Verification VerificationConfig `yaml:"verification"`
	Output       OutputConfig       `yaml:"output"`
}

// DefaultConfig returns the run parameters used when no file overrides
// them.
func DefaultConfig() Config {
	return Config{
		Seed:        1,
		Count:       100,
		MaxAttempts: 10,
		Scenario:    scenario.DefaultConfig(),
		Masking:     MaskingMix{Initial: 0.5, Transfer: 0.3, None: 0.2},
		Verification: VerificationConfig{
			SMT: false,
		},
		Output: OutputConfig{Path: "problems.jsonl", Format: "jsonl"},
	}
}

// LoadConfig reads a YAML file over the defaults; absent keys keep their
// default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("dataset: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("dataset: parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("dataset: count must be positive, got %d", c.Count)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("dataset: maxAttempts must be positive, got %d", c.MaxAttempts)
	}
	switch c.Output.Format {
	case "jsonl", "cbor":
	default:
		return fmt.Errorf("dataset: unknown output format %q", c.Output.Format)
	}
	return nil
}
