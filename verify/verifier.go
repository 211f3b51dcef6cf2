// Package verify performs the numerical uniqueness analysis of a masked
// constraint system.
//
// The masked sub-system A·x = b (unknowns only, known values folded into b)
// is analyzed by rank: it is solvable iff rank(A) == rank([A|b]), and the
// solution is unique iff additionally rank(A) equals the number of unknowns.
// All rank decisions share one configurable tolerance so results are
// reproducible.
package verify

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/wordprob/wordprob/constraint"
	"github.com/wordprob/wordprob/logger"
)

// DefaultTolerance is the singular-value cutoff used when Config.Tolerance
// is zero.
const DefaultTolerance = 1e-10

// Config holds the verifier parameters. It is immutable once passed to New.
type Config struct {
	// Tolerance is the threshold under which a singular value is treated
	// as zero, shared by every rank and redundancy decision.
	Tolerance float64
}

// Result reports the solvability and uniqueness analysis of one system.
type Result struct {
	// Solvable is true when the masked sub-system is consistent.
	Solvable bool `json:"solvable"`
	// Unique is true when the masked variables are fully determined.
	Unique bool `json:"unique"`
	// RankDeficiency is nbUnknowns − rank(A) for solvable systems, and
	// rank(A) − min(m, n) for inconsistent ones.
	RankDeficiency int `json:"rankDeficiency"`
	// ConditionNumber is σmax/σmin, computed only when the reduced matrix
	// is square and full rank; nil means "not computed", never "1".
	ConditionNumber *float64 `json:"conditionNumber,omitempty"`
	// RedundantRows lists rows linearly dependent on others, detected only
	// when the system has more rows than unknowns.
	RedundantRows []int  `json:"redundantRows,omitempty"`
	Message       string `json:"message"`
}

// Verifier analyzes masked constraint systems. It is stateless and safe for
// concurrent use.
type Verifier struct {
	tolerance float64
}

// New returns a Verifier using cfg; a zero tolerance selects
// DefaultTolerance.
func New(cfg Config) *Verifier {
	tol := cfg.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	return &Verifier{tolerance: tol}
}

// Verify analyzes the masked sub-system of s. Degenerate inputs (no masked
// variables, empty reduction, zero rows) have defined results and never
// panic.
func (v *Verifier) Verify(s *constraint.System) Result {
	if len(s.Masked) == 0 {
		return Result{Solvable: true, Unique: true, Message: "unique"}
	}

	a, b, names := s.ExtractMasked()
	if len(names) == 0 {
		return Result{Solvable: true, Unique: true, Message: "unique"}
	}
	if a == nil {
		// Unknowns but no constraining rows.
		return Result{
			Solvable:       true,
			RankDeficiency: len(names),
			Message:        fmt.Sprintf("under-determined: %d degrees of freedom", len(names)),
		}
	}

	res := v.analyze(a, b)
	log := logger.Logger()
	log.Debug().
		Bool("solvable", res.Solvable).
		Bool("unique", res.Unique).
		Int("rankDeficiency", res.RankDeficiency).
		Strs("masked", names).
		Msg("verified masked system")
	return res
}

func (v *Verifier) analyze(a *mat.Dense, b *mat.VecDense) Result {
	m, n := a.Dims()

	kind := mat.SVDNone
	if m > n {
		// U spans the left null space, needed for redundancy detection.
		kind = mat.SVDFullU
	}
	var svd mat.SVD
	if !svd.Factorize(a, kind) {
		return Result{Message: "singular value decomposition did not converge"}
	}
	values := svd.Values(nil)
	rank := v.countAbove(values)

	// Consistency: rank(A) == rank([A|b]).
	aug := mat.NewDense(m, n+1, nil)
	aug.Slice(0, m, 0, n).(*mat.Dense).Copy(a)
	for i := 0; i < m; i++ {
		aug.Set(i, n, b.AtVec(i))
	}
	var svdAug mat.SVD
	if !svdAug.Factorize(aug, mat.SVDNone) {
		return Result{Message: "singular value decomposition did not converge"}
	}
	rankAug := v.countAbove(svdAug.Values(nil))

	if rank != rankAug {
		return Result{
			Solvable:       false,
			Unique:         false,
			RankDeficiency: rank - min(m, n),
			Message:        "inconsistent",
		}
	}

	res := Result{
		Solvable:       true,
		RankDeficiency: n - rank,
	}
	res.Unique = res.RankDeficiency == 0

	if m == n && rank == n {
		cond := values[0] / values[n-1]
		res.ConditionNumber = &cond
	}
	if m > n {
		res.RedundantRows = v.redundantRows(&svd, rank, m)
	}

	switch {
	case res.RankDeficiency > 0:
		res.Message = fmt.Sprintf("under-determined: %d degrees of freedom", res.RankDeficiency)
	case len(res.RedundantRows) > 0:
		res.Message = fmt.Sprintf("over-determined: %d redundant constraints", m-rank)
	default:
		res.Message = "unique"
	}
	return res
}

func (v *Verifier) countAbove(values []float64) int {
	rank := 0
	for _, sv := range values {
		if sv > v.tolerance {
			rank++
		}
	}
	return rank
}

// redundantRows maps each left-null-space direction (columns of U beyond the
// rank) to the row with the largest weight in it.
func (v *Verifier) redundantRows(svd *mat.SVD, rank, m int) []int {
	var u mat.Dense
	svd.UTo(&u)

	seen := make(map[int]bool)
	for col := rank; col < m; col++ {
		best, bestAbs := -1, 0.0
		for row := 0; row < m; row++ {
			if abs := math.Abs(u.At(row, col)); abs > bestAbs {
				best, bestAbs = row, abs
			}
		}
		if best >= 0 && bestAbs > v.tolerance {
			seen[best] = true
		}
	}

	if len(seen) == 0 {
		return nil
	}
	rows := make([]int, 0, len(seen))
	for r := range seen {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}
