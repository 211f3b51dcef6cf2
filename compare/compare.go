// Package compare cross-checks the numerical verifier against the formal
// one. It exists for validation and fuzzing: the SAT check is orders of
// magnitude slower than the rank analysis, so generation hot paths use the
// numerical verifier alone and this package confirms, offline, that the
// cheap analysis can be trusted.
package compare

import (
	"github.com/wordprob/wordprob/constraint"
	"github.com/wordprob/wordprob/logger"
	"github.com/wordprob/wordprob/smt"
	"github.com/wordprob/wordprob/verify"
)

// Agreement records whether the two verifiers reached the same conclusions.
type Agreement struct {
	// Solvability is true when smt satisfiability matches numerical
	// solvability.
	Solvability bool `json:"solvability"`
	// Uniqueness is true when the uniqueness verdicts match; only
	// meaningful when both sides found the system solvable.
	Uniqueness bool `json:"uniqueness"`
}

// Ok is true when no divergence was observed.
func (a Agreement) Ok() bool { return a.Solvability && a.Uniqueness }

// Report pairs both verifier results. Agreement is nil when the SMT side is
// unavailable or inconclusive; a non-nil disagreeing Agreement is a defect
// in one of the verifiers and is reported, never silently resolved.
type Report struct {
	LinearAlgebra verify.Result `json:"linearAlgebra"`
	SMT           smt.Result    `json:"smt"`
	Agreement     *Agreement    `json:"agreement,omitempty"`
}

// Comparator runs both verifiers over the same system.
type Comparator struct {
	la  *verify.Verifier
	smt smt.Verifier
}

// New returns a Comparator over the two injected verifiers.
func New(la *verify.Verifier, smtVerifier smt.Verifier) *Comparator {
	return &Comparator{la: la, smt: smtVerifier}
}

// Compare verifies s both ways and reports agreement on solvability and
// uniqueness.
func (c *Comparator) Compare(s *constraint.System) Report {
	r := Report{
		LinearAlgebra: c.la.Verify(s),
		SMT:           c.smt.Verify(s),
	}
	if !r.SMT.Available || r.SMT.Status == smt.StatusUnknown {
		return r
	}

	agreement := &Agreement{
		Solvability: r.SMT.Satisfiable() == r.LinearAlgebra.Solvable,
		Uniqueness:  true,
	}
	if r.SMT.Satisfiable() && r.LinearAlgebra.Solvable {
		agreement.Uniqueness = r.SMT.Unique == r.LinearAlgebra.Unique
	}
	r.Agreement = agreement

	if !agreement.Ok() {
		log := logger.Logger()
		log.Warn().
			Bool("laSolvable", r.LinearAlgebra.Solvable).
			Bool("laUnique", r.LinearAlgebra.Unique).
			Stringer("smtStatus", r.SMT.Status).
			Bool("smtUnique", r.SMT.Unique).
			Msg("verifier divergence")
	}
	return r
}
