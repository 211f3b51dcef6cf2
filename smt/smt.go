// Package smt formally cross-checks a constraint system with a SAT solver.
//
// Every variable becomes a bounded non-negative integer encoded as a bit
// vector; the conservation rows of the FULL system become circuit equalities
// over ripple-carry adders. A first check establishes satisfiability and
// extracts a witness; a second, scoped check asserts that at least one
// masked variable differs from its witness value. If that is unsatisfiable
// the witness is the unique solution.
//
// Availability of a solver backend is a runtime capability: callers obtain a
// Verifier once at startup, either the solver-backed implementation from New
// or the stub from Unavailable, and inject it.
package smt

import (
	"time"
)

// Status is the three-valued outcome of a satisfiability check. Unknown is
// never coerced into either of the other two.
type Status uint8

const (
	// StatusUnknown means the check was inconclusive (timeout or
	// backend indeterminacy).
	StatusUnknown Status = iota
	// StatusSat means a satisfying assignment exists.
	StatusSat
	// StatusUnsat means the system is inconsistent. For a correctly
	// simulated scenario this is a generation bug, not an expected state.
	StatusUnsat
)

func (s Status) String() string {
	switch s {
	case StatusSat:
		return "sat"
	case StatusUnsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Result reports one formal verification.
type Result struct {
	// Available is false when no solver backend is usable; all other
	// fields are then meaningless except Diagnostic.
	Available bool   `json:"available"`
	Status    Status `json:"status"`
	// Unique is meaningful only when Status is StatusSat.
	Unique bool `json:"unique"`
	// Witness assigns every variable its value in the found model.
	Witness map[string]int64 `json:"witness,omitempty"`
	Elapsed time.Duration    `json:"elapsed"`
	// Diagnostic carries failure details: the unavailability reason, the
	// assertion groups involved in an unsat core, or a negation-check
	// timeout note.
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Satisfiable is the boolean view of Status used for agreement checks.
func (r Result) Satisfiable() bool { return r.Status == StatusSat }

// DefaultBound is the inventory ceiling asserted on every variable when
// Config.Bound is zero.
const DefaultBound = 1000

// DefaultTimeout bounds each satisfiability check when Config.Timeout is
// zero.
const DefaultTimeout = 10 * time.Second
