package smt

import (
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// bv is an unsigned little-endian bit vector of circuit literals.
type bv []z.Lit

// circuit wraps a combinational logic circuit with the bit-vector
// arithmetic the encoder needs. Non-negativity is implicit in the unsigned
// encoding.
type circuit struct {
	c *logic.C
}

func newCircuit(capHint int) *circuit {
	return &circuit{c: logic.NewCCap(capHint)}
}

// fresh allocates a bit vector of w free literals.
func (cc *circuit) fresh(w int) bv {
	out := make(bv, w)
	for i := range out {
		out[i] = cc.c.Lit()
	}
	return out
}

// konst encodes a non-negative constant, w bits wide.
func (cc *circuit) konst(val int64, w int) bv {
	out := make(bv, w)
	for i := range out {
		if val&(1<<uint(i)) != 0 {
			out[i] = cc.c.T
		} else {
			out[i] = cc.c.F
		}
	}
	return out
}

// bit returns a[i], or constant false beyond a's width.
func (cc *circuit) bit(a bv, i int) z.Lit {
	if i < len(a) {
		return a[i]
	}
	return cc.c.F
}

// add returns a+b as a ripple-carry sum, one bit wider than its widest
// operand so it never overflows.
func (cc *circuit) add(a, b bv) bv {
	w := max(len(a), len(b)) + 1
	out := make(bv, w)
	carry := cc.c.F
	for i := 0; i < w; i++ {
		ai, bi := cc.bit(a, i), cc.bit(b, i)
		axb := cc.c.Xor(ai, bi)
		out[i] = cc.c.Xor(axb, carry)
		carry = cc.c.Or(cc.c.And(ai, bi), cc.c.And(carry, axb))
	}
	return out
}

// sum folds add over vs; an empty sum is the zero constant.
func (cc *circuit) sum(vs []bv) bv {
	if len(vs) == 0 {
		return bv{cc.c.F}
	}
	acc := vs[0]
	for _, v := range vs[1:] {
		acc = cc.add(acc, v)
	}
	return acc
}

// conj is Ands with a defined empty case.
func (cc *circuit) conj(lits []z.Lit) z.Lit {
	if len(lits) == 0 {
		return cc.c.T
	}
	return cc.c.Ands(lits...)
}

// equal returns a literal asserting a == b, padding the shorter operand
// with zero bits.
func (cc *circuit) equal(a, b bv) z.Lit {
	w := max(len(a), len(b))
	eqs := make([]z.Lit, w)
	for i := 0; i < w; i++ {
		eqs[i] = cc.c.Xor(cc.bit(a, i), cc.bit(b, i)).Not()
	}
	return cc.conj(eqs)
}

// equalConst returns a literal asserting a == val.
func (cc *circuit) equalConst(a bv, val int64) z.Lit {
	eqs := make([]z.Lit, 0, len(a)+1)
	for i := range a {
		if val&(1<<uint(i)) != 0 {
			eqs = append(eqs, a[i])
		} else {
			eqs = append(eqs, a[i].Not())
		}
	}
	// Constant bits beyond a's width must all be zero.
	if val>>uint(len(a)) != 0 {
		eqs = append(eqs, cc.c.F)
	}
	return cc.conj(eqs)
}

// leqConst returns a literal asserting a <= val, scanning from the least
// significant bit: a position where a has 0 and val has 1 forces "less"
// whatever the lower bits say; equal positions defer downward.
func (cc *circuit) leqConst(a bv, val int64) z.Lit {
	le := cc.c.T
	for i := 0; i < len(a); i++ {
		if val&(1<<uint(i)) != 0 {
			le = cc.c.Or(a[i].Not(), le)
		} else {
			le = cc.c.And(a[i].Not(), le)
		}
	}
	// Bits of val beyond a's width only make the bound looser.
	return le
}
