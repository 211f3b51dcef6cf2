package smt

import (
	"testing"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/assert"
)

// holds reports whether lit is consistent with the circuit, i.e. whether the
// formula with lit asserted is satisfiable.
func holds(cc *circuit, lit z.Lit) bool {
	g := gini.New()
	cc.c.ToCnf(g)
	g.Assume(lit)
	return g.Solve() == satisfiable
}

func TestCircuitAdd(t *testing.T) {
	cc := newCircuit(128)
	sum := cc.add(cc.konst(5, 3), cc.konst(7, 3))

	assert.True(t, holds(cc, cc.equalConst(sum, 12)))
	assert.False(t, holds(cc, cc.equalConst(sum, 11)))
}

func TestCircuitSumEmpty(t *testing.T) {
	cc := newCircuit(16)
	assert.True(t, holds(cc, cc.equalConst(cc.sum(nil), 0)))
	assert.False(t, holds(cc, cc.equalConst(cc.sum(nil), 1)))
}

func TestCircuitEqualPadsWidth(t *testing.T) {
	cc := newCircuit(64)
	assert.True(t, holds(cc, cc.equal(cc.konst(6, 3), cc.konst(6, 8))))
	assert.False(t, holds(cc, cc.equal(cc.konst(6, 3), cc.konst(14, 8))))
}

func TestCircuitEqualConstBeyondWidth(t *testing.T) {
	cc := newCircuit(64)
	// A 3-bit vector can never equal 9.
	assert.False(t, holds(cc, cc.equalConst(cc.fresh(3), 9)))
}

func TestCircuitLeqConst(t *testing.T) {
	cc := newCircuit(128)
	a := cc.konst(5, 4)

	assert.True(t, holds(cc, cc.leqConst(a, 5)))
	assert.True(t, holds(cc, cc.leqConst(a, 9)))
	assert.False(t, holds(cc, cc.leqConst(a, 4)))

	// Bound bits beyond the vector width cannot exclude anything.
	assert.True(t, holds(cc, cc.leqConst(cc.fresh(3), 1000)))
}

func TestCircuitConjEmpty(t *testing.T) {
	cc := newCircuit(16)
	assert.True(t, holds(cc, cc.conj(nil)))
}
