package smt

import (
	"time"

	"github.com/wordprob/wordprob/constraint"
)

// Config holds the solver parameters. It is immutable once passed to New.
type Config struct {
	// Bound is the upper inventory limit asserted on every variable;
	// zero selects DefaultBound. The effective bound is raised to cover
	// every value deducible from the ground truth, masked or known, so
	// the bound assertions never exclude the true model.
	Bound int64
	// Timeout limits each satisfiability check; zero selects
	// DefaultTimeout. Expiry yields StatusUnknown, never StatusUnsat.
	Timeout time.Duration
}

// Verifier is the capability-checked strategy: the solver-backed
// implementation from New, or the stub from Unavailable.
//
// A Verifier is safe for concurrent use; each Verify call owns a private
// solver instance.
type Verifier interface {
	// Available reports whether a solver backend is usable.
	Available() bool
	// Verify checks satisfiability and uniqueness of the masked
	// variables of s.
	Verify(s *constraint.System) Result
}

// New returns the solver-backed Verifier.
func New(cfg Config) Verifier {
	if cfg.Bound <= 0 {
		cfg.Bound = DefaultBound
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &giniVerifier{cfg: cfg}
}

// Unavailable returns the stub Verifier for environments without a solver;
// its results carry Available == false and the given reason, letting callers
// fall back to the numerical verifier alone.
func Unavailable(reason string) Verifier {
	return unavailable{reason: reason}
}

type unavailable struct {
	reason string
}

func (unavailable) Available() bool { return false }

func (u unavailable) Verify(*constraint.System) Result {
	return Result{Available: false, Diagnostic: u.reason}
}
