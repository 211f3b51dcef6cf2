package constraint

import (
	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/mat"
)

// System is the full conservation system of one candidate question.
// It is built fresh per question and never mutated afterwards.
//
// Invariants: column i of Coeffs corresponds to Variables[i]; the key set of
// Known and the entries of Masked partition the variable names.
type System struct {
	// Coeffs is the m×n coefficient matrix; entries are restricted to
	// {−1, 0, +1} by construction.
	Coeffs [][]int8 `cbor:"coeffs"`
	// RHS is the m right-hand side entries of the full system.
	RHS []int64 `cbor:"rhs"`
	// Variables orders the columns.
	Variables []Variable `cbor:"variables"`
	// Known maps every non-masked variable name to its ground-truth value.
	Known map[string]int64 `cbor:"known"`
	// Masked lists the hidden variable names, in column order.
	Masked []string `cbor:"masked"`

	index map[string]int
}

// NbConstraints returns the number of rows of the full system.
func (s *System) NbConstraints() int { return len(s.Coeffs) }

// NbVariables returns the number of columns of the full system.
func (s *System) NbVariables() int { return len(s.Variables) }

// VariableIndex returns the column of the named variable, or -1.
func (s *System) VariableIndex(name string) int {
	if s.index == nil {
		s.index = make(map[string]int, len(s.Variables))
		for i, v := range s.Variables {
			s.index[v.Name] = i
		}
	}
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// maskedColumns marks the columns whose variable is masked.
func (s *System) maskedColumns() *bitset.BitSet {
	cols := bitset.New(uint(len(s.Variables)))
	for _, name := range s.Masked {
		if i := s.VariableIndex(name); i >= 0 {
			cols.Set(uint(i))
		}
	}
	return cols
}

// ExtractMasked reduces the system to the masked unknowns: it selects the
// masked columns of Coeffs and folds every known column into the right-hand
// side (bᵢ −= coeff·known). The returned names order the columns of the
// reduced matrix. With no masked variables it returns (nil, nil, nil).
func (s *System) ExtractMasked() (*mat.Dense, *mat.VecDense, []string) {
	cols := s.maskedColumns()
	k := int(cols.Count())
	if k == 0 {
		return nil, nil, nil
	}

	names := make([]string, 0, k)
	colOf := make([]int, 0, k)
	for i, v := range s.Variables {
		if cols.Test(uint(i)) {
			names = append(names, v.Name)
			colOf = append(colOf, i)
		}
	}

	m := len(s.Coeffs)
	if m == 0 {
		return nil, nil, names
	}

	a := mat.NewDense(m, k, nil)
	b := mat.NewVecDense(m, nil)
	for i, row := range s.Coeffs {
		rhs := float64(s.RHS[i])
		for j, coeff := range row {
			if coeff == 0 {
				continue
			}
			if cols.Test(uint(j)) {
				continue
			}
			rhs -= float64(coeff) * float64(s.Known[s.Variables[j].Name])
		}
		b.SetVec(i, rhs)
		for j, col := range colOf {
			a.Set(i, j, float64(s.Coeffs[i][col]))
		}
	}
	return a, b, names
}
