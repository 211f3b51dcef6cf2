package smt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordprob/wordprob/constraint"
	"github.com/wordprob/wordprob/masking"
	"github.com/wordprob/wordprob/scenario"
	"github.com/wordprob/wordprob/smt"
)

func marbleScenario() *scenario.Scenario {
	return &scenario.Scenario{
		ID: 1,
		Agents: []scenario.Agent{
			{Name: "A", Initial: map[string]int64{"marbles": 10}, Final: map[string]int64{"marbles": 6}},
			{Name: "B", Initial: map[string]int64{"marbles": 0}, Final: map[string]int64{"marbles": 4}},
		},
		Objects:   []string{"marbles"},
		Transfers: []scenario.Transfer{{From: "A", To: "B", Object: "marbles", Quantity: 4, Seq: 0}},
	}
}

func maskByHand(t *testing.T, s *constraint.System, name string) {
	t.Helper()
	i := s.VariableIndex(name)
	require.GreaterOrEqual(t, i, 0, name)
	s.Variables[i].Masked = true
	s.Masked = append(s.Masked, name)
	delete(s.Known, name)
}

func TestUnavailableStub(t *testing.T) {
	v := smt.Unavailable("no backend in this build")
	assert.False(t, v.Available())

	res := v.Verify(nil)
	assert.False(t, res.Available)
	assert.Equal(t, smt.StatusUnknown, res.Status)
	assert.False(t, res.Satisfiable())
	assert.Equal(t, "no backend in this build", res.Diagnostic)
}

func TestVerifyNoMaskSatisfiable(t *testing.T) {
	sys, err := constraint.Build(marbleScenario(), nil)
	require.NoError(t, err)

	res := smt.New(smt.Config{}).Verify(sys)
	require.True(t, res.Available)
	assert.Equal(t, smt.StatusSat, res.Status)
	assert.True(t, res.Unique)

	// With nothing masked the witness is the ground truth itself.
	for name, want := range sys.Known {
		assert.Equal(t, want, res.Witness[name], name)
	}
}

func TestVerifyMaskedInitialUniqueWitness(t *testing.T) {
	sys, err := constraint.Build(marbleScenario(), masking.Initial("A", "marbles"))
	require.NoError(t, err)

	res := smt.New(smt.Config{}).Verify(sys)
	require.True(t, res.Available)
	require.Equal(t, smt.StatusSat, res.Status)
	assert.True(t, res.Satisfiable())
	assert.True(t, res.Unique)
	assert.Equal(t, int64(10), res.Witness[constraint.InitialName("A", "marbles")])
}

func TestVerifyMaskedTransferUnique(t *testing.T) {
	sys, err := constraint.Build(marbleScenario(), masking.Transfers(0))
	require.NoError(t, err)

	res := smt.New(smt.Config{}).Verify(sys)
	require.Equal(t, smt.StatusSat, res.Status)
	assert.True(t, res.Unique)
	assert.Equal(t, int64(4), res.Witness[constraint.TransferName(0, "A", "B", "marbles")])
}

func TestVerifyUnderDeterminedNotUnique(t *testing.T) {
	sys, err := constraint.Build(marbleScenario(), masking.Initial("A", "marbles"))
	require.NoError(t, err)
	maskByHand(t, sys, constraint.TransferName(0, "A", "B", "marbles"))
	maskByHand(t, sys, constraint.FinalName("B", "marbles"))

	res := smt.New(smt.Config{}).Verify(sys)
	require.Equal(t, smt.StatusSat, res.Status)
	assert.False(t, res.Unique)
}

func TestVerifyInconsistentUnsat(t *testing.T) {
	sys, err := constraint.Build(marbleScenario(), masking.Initial("A", "marbles"))
	require.NoError(t, err)
	// B ends with 5 marbles but only 4 arrived.
	sys.Known[constraint.FinalName("B", "marbles")] = 5

	res := smt.New(smt.Config{}).Verify(sys)
	require.True(t, res.Available)
	assert.Equal(t, smt.StatusUnsat, res.Status)
	assert.False(t, res.Satisfiable())
	assert.Contains(t, res.Diagnostic, "inconsistent system")
}

func TestVerifyBoundWidensOverKnowns(t *testing.T) {
	sc := marbleScenario()
	sc.Agents[0].Initial["marbles"] = 500
	sc.Agents[0].Final["marbles"] = 496
	sys, err := constraint.Build(sc, masking.Initial("A", "marbles"))
	require.NoError(t, err)

	// The configured ceiling is below the ground truth; the effective
	// bound must stretch so the known-value assertions stay satisfiable.
	res := smt.New(smt.Config{Bound: 8}).Verify(sys)
	require.Equal(t, smt.StatusSat, res.Status)
	assert.True(t, res.Unique)
	assert.Equal(t, int64(500), res.Witness[constraint.InitialName("A", "marbles")])
}

func TestWriteProblem(t *testing.T) {
	sys, err := constraint.Build(marbleScenario(), masking.Initial("A", "marbles"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, smt.WriteProblem(&buf, sys, 100))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "(set-logic QF_LIA)\n"))
	assert.Contains(t, out, "(declare-const init_A_marbles Int)")
	assert.Contains(t, out, "(assert (>= init_A_marbles 0))")
	assert.Contains(t, out, "(assert (<= init_A_marbles 100))")
	// Masked variables get no value equality.
	assert.NotContains(t, out, "(assert (= init_A_marbles ")
	assert.Contains(t, out, "(assert (= final_A_marbles 6))")
	// Row for A: final − initial + outgoing transfer.
	assert.Contains(t, out, "(assert (= (+ (- init_A_marbles) final_A_marbles transfer_0_A_B_marbles) 0))")
	assert.True(t, strings.HasSuffix(out, "(check-sat)\n(get-model)\n"))
}
