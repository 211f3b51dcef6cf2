package smt

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/wordprob/wordprob/constraint"
	"github.com/wordprob/wordprob/logger"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
	indeterminate = 0
)

// giniVerifier implements Verifier over the gini SAT solver. Each Verify
// call builds a private circuit and solver; the struct itself holds only
// configuration.
type giniVerifier struct {
	cfg Config
}

func (v *giniVerifier) Available() bool { return true }

func (v *giniVerifier) Verify(s *constraint.System) (res Result) {
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	res.Available = true

	enc := v.encode(s)
	g := gini.New()
	enc.cc.c.ToCnf(g)

	groups := []z.Lit{enc.bounds, enc.knowns, enc.rows}
	outcome, witness, why := enc.solve(g, groups, v.cfg.Timeout)

	log := logger.Logger()
	switch outcome {
	case unsatisfiable:
		// A correctly simulated scenario can never reach this; treat it
		// as a generation bug to investigate, not a rejection.
		res.Status = StatusUnsat
		res.Diagnostic = fmt.Sprintf("inconsistent system (failed assertion groups: %s)", enc.groupNames(why))
		log.Error().Str("groups", enc.groupNames(why)).Msg("smt: system unsatisfiable")
		return res
	case indeterminate:
		res.Status = StatusUnknown
		res.Diagnostic = "satisfiability check timed out"
		return res
	}

	res.Status = StatusSat
	res.Witness = witness
	if len(s.Masked) == 0 {
		res.Unique = true
		return res
	}

	// Uniqueness: inside a fresh scope, assert that at least one masked
	// variable differs from its witness value. No alternative model means
	// the witness is the unique solution.
	act := enc.negationClause(g, s.Masked, witness)
	alt, _, _ := enc.solve(g, append(groups, act), v.cfg.Timeout)
	switch alt {
	case unsatisfiable:
		res.Unique = true
	case satisfiable:
		res.Unique = false
	default:
		res.Unique = false
		res.Diagnostic = "uniqueness check timed out; treating solution as non-unique"
	}

	log.Debug().
		Stringer("status", res.Status).
		Bool("unique", res.Unique).
		Dur("took", time.Since(start)).
		Msg("smt: verified system")
	return res
}

// encoder holds the circuit encoding of one system: a bit vector per
// variable and one activation literal per assertion group, assumed at check
// time so the taught formula itself stays unconditional.
type encoder struct {
	cc      *circuit
	sys     *constraint.System
	varBits []bv
	byName  map[string]bv

	bounds, knowns, rows z.Lit
	groupOf              map[z.Lit]string
}

func (v *giniVerifier) encode(s *constraint.System) *encoder {
	enc := &encoder{
		cc:      newCircuit(64 * len(s.Variables)),
		sys:     s,
		varBits: make([]bv, len(s.Variables)),
		byName:  make(map[string]bv, len(s.Variables)),
		groupOf: make(map[z.Lit]string, 3),
	}

	// The configured ceiling may sit below the ground truth. Every masked
	// value is a ±1 combination of known values and row constants, so the
	// sum of all known values plus Σ|rhs| bounds every variable of the
	// true model; widen to that so the bounds group can never exclude it.
	bound := v.cfg.Bound
	var reach int64
	for _, val := range s.Known {
		if val > 0 {
			reach += val
		}
	}
	for _, rhs := range s.RHS {
		if rhs > 0 {
			reach += rhs
		} else {
			reach -= rhs
		}
	}
	if reach > bound {
		bound = reach
	}
	width := bits.Len64(uint64(bound))

	boundLits := make([]z.Lit, len(s.Variables))
	for i := range s.Variables {
		enc.varBits[i] = enc.cc.fresh(width)
		enc.byName[s.Variables[i].Name] = enc.varBits[i]
		boundLits[i] = enc.cc.leqConst(enc.varBits[i], bound)
	}
	enc.bounds = enc.cc.conj(boundLits)

	var knownLits []z.Lit
	for i, v := range s.Variables {
		if v.Masked {
			continue
		}
		knownLits = append(knownLits, enc.cc.equalConst(enc.varBits[i], s.Known[v.Name]))
	}
	enc.knowns = enc.cc.conj(knownLits)

	rowLits := make([]z.Lit, len(s.Coeffs))
	for i, row := range s.Coeffs {
		rowLits[i] = enc.encodeRow(row, s.RHS[i])
	}
	enc.rows = enc.cc.conj(rowLits)

	enc.groupOf[enc.bounds] = "bounds"
	enc.groupOf[enc.knowns] = "knowns"
	enc.groupOf[enc.rows] = "rows"
	return enc
}

// encodeRow translates Σ coeffⱼ·xⱼ = rhs into positives + max(0,−rhs) ==
// negatives + max(0,rhs). Coefficients are integral by construction, so no
// scaling factor is needed.
func (e *encoder) encodeRow(row []int8, rhs int64) z.Lit {
	var pos, neg []bv
	for j, coeff := range row {
		for k := coeff; k > 0; k-- {
			pos = append(pos, e.varBits[j])
		}
		for k := coeff; k < 0; k++ {
			neg = append(neg, e.varBits[j])
		}
	}
	if rhs > 0 {
		neg = append(neg, e.cc.konst(rhs, bits.Len64(uint64(rhs))))
	} else if rhs < 0 {
		pos = append(pos, e.cc.konst(-rhs, bits.Len64(uint64(-rhs))))
	}
	return e.cc.equal(e.cc.sum(pos), e.cc.sum(neg))
}

// solve runs one satisfiability check under the given assumptions inside a
// test scope. The scope is always closed before returning, so g stays
// reusable for the next check. On SAT the witness is extracted while the
// model is still live; on UNSAT the failed assumptions are collected.
func (e *encoder) solve(g *gini.Gini, assumptions []z.Lit, timeout time.Duration) (outcome int, witness map[string]int64, why []z.Lit) {
	g.Assume(assumptions...)
	outcome, _ = g.Test(nil)
	defer g.Untest()

	if outcome == indeterminate {
		outcome = g.Try(timeout)
	}
	switch outcome {
	case satisfiable:
		witness = e.readWitness(g)
	case unsatisfiable:
		why = g.Why(nil)
	}
	return outcome, witness, why
}

func (e *encoder) readWitness(g *gini.Gini) map[string]int64 {
	out := make(map[string]int64, len(e.sys.Variables))
	for i, v := range e.sys.Variables {
		var val int64
		for j, b := range e.varBits[i] {
			if g.Value(b) {
				val |= 1 << uint(j)
			}
		}
		out[v.Name] = val
	}
	return out
}

// negationClause teaches the clause "act → some masked variable differs
// from its witness value" and returns act. The clause is added outside any
// test scope and is vacuous unless act is assumed, so it does not pollute
// later checks.
func (e *encoder) negationClause(g *gini.Gini, masked []string, witness map[string]int64) z.Lit {
	act := e.cc.c.Lit()
	g.Add(act.Not())
	for _, name := range masked {
		val := witness[name]
		for i, b := range e.byName[name] {
			if val&(1<<uint(i)) != 0 {
				g.Add(b.Not())
			} else {
				g.Add(b)
			}
		}
	}
	g.Add(z.LitNull)
	return act
}

func (e *encoder) groupNames(why []z.Lit) string {
	names := make([]string, 0, len(why))
	for _, m := range why {
		if name, ok := e.groupOf[m]; ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "unattributed"
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
