package smt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/wordprob/wordprob/constraint"
)

// WriteProblem emits the system as an SMT-LIB2 problem over bounded
// integers, suitable for external solvers: declarations, non-negativity and
// bound assertions, known-value equalities, one equality per conservation
// row, then (check-sat)/(get-model).
func WriteProblem(w io.Writer, s *constraint.System, bound int64) error {
	if bound <= 0 {
		bound = DefaultBound
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "(set-logic QF_LIA)")
	for _, v := range s.Variables {
		fmt.Fprintf(bw, "(declare-const %s Int)\n", v.Name)
	}
	for _, v := range s.Variables {
		fmt.Fprintf(bw, "(assert (>= %s 0))\n", v.Name)
		fmt.Fprintf(bw, "(assert (<= %s %d))\n", v.Name, bound)
	}
	for _, v := range s.Variables {
		if v.Masked {
			continue
		}
		fmt.Fprintf(bw, "(assert (= %s %d))\n", v.Name, s.Known[v.Name])
	}

	for i, row := range s.Coeffs {
		fmt.Fprint(bw, "(assert (= (+")
		terms := 0
		for j, coeff := range row {
			name := s.Variables[j].Name
			switch {
			case coeff > 0:
				fmt.Fprintf(bw, " %s", name)
				terms++
			case coeff < 0:
				fmt.Fprintf(bw, " (- %s)", name)
				terms++
			}
		}
		if terms == 0 {
			fmt.Fprint(bw, " 0")
		}
		fmt.Fprintf(bw, ") %d))\n", s.RHS[i])
	}

	fmt.Fprintln(bw, "(check-sat)")
	fmt.Fprintln(bw, "(get-model)")
	return bw.Flush()
}
