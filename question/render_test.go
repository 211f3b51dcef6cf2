package question

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordprob/wordprob/masking"
	"github.com/wordprob/wordprob/scenario"
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

func TestRenderUnmasked(t *testing.T) {
	r := NewRenderer(1)
	text, q, answer, kind, err := r.Render(marbleScenario(), nil)
	require.NoError(t, err)

	assert.Equal(t, FinalCount, kind)
	assert.Contains(t, text, "A has 10 marbles.")
	assert.Contains(t, text, "4 marbles to B.")
	assert.Contains(t, q, "How many marbles does")
	assert.Contains(t, q, "have now?")

	// The answer matches the asked agent's recorded final count.
	sc := marbleScenario()
	for _, a := range sc.Agents {
		if strings.Contains(q, " "+a.Name+" ") {
			assert.Equal(t, a.Final["marbles"], answer)
		}
	}
}

func TestRenderMaskedInitial(t *testing.T) {
	r := NewRenderer(1)
	text, q, answer, kind, err := r.Render(marbleScenario(), masking.Initial("A", "marbles"))
	require.NoError(t, err)

	assert.Equal(t, InitialCount, kind)
	assert.Equal(t, int64(10), answer)

	// The hidden count appears only as a vague quantity, never as a digit.
	assert.Contains(t, text, "A has many marbles.")
	assert.NotContains(t, text, "A has 10 marbles.")
	// The final count anchors the deduction.
	assert.Contains(t, text, "In total, A now has 6 marbles.")
	assert.Equal(t, "How many marbles did A have at the beginning?", q)
}

func TestRenderMaskedTransfers(t *testing.T) {
	r := NewRenderer(1)
	text, q, answer, kind, err := r.Render(marbleScenario(), masking.Transfers(0))
	require.NoError(t, err)

	assert.Equal(t, TransferAmount, kind)
	assert.Equal(t, int64(4), answer)

	assert.Contains(t, text, "some marbles to B.")
	assert.NotContains(t, text, "4 marbles to B.")
	// The receiver's end state anchors the deduction.
	assert.Contains(t, text, "In the end, B has 4 marbles.")
	assert.Equal(t, "How many marbles did A give to B?", q)
}

func TestRenderDeterministic(t *testing.T) {
	text1, q1, _, _, err := NewRenderer(7).Render(marbleScenario(), masking.Transfers(0))
	require.NoError(t, err)
	text2, q2, _, _, err := NewRenderer(7).Render(marbleScenario(), masking.Transfers(0))
	require.NoError(t, err)
	assert.Equal(t, text1, text2)
	assert.Equal(t, q1, q2)
}

func TestRenderEmptyScenario(t *testing.T) {
	_, _, _, _, err := NewRenderer(1).Render(&scenario.Scenario{}, nil)
	assert.ErrorContains(t, err, "no agents or objects")
}

func TestVagueQuantity(t *testing.T) {
	cases := map[int64]string{
		0:   "no",
		1:   "a",
		3:   "a few",
		5:   "several",
		10:  "many",
		100: "numerous",
	}
	for count, want := range cases {
		assert.Equal(t, want, VagueQuantity(count), "count %d", count)
	}
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "marble", Pluralize("marbles", 1))
	assert.Equal(t, "marbles", Pluralize("marbles", 2))
	assert.Equal(t, "candy", Pluralize("candies", 1))
	assert.Equal(t, "candies", Pluralize("candies", 5))
	assert.Equal(t, "puzzles", Pluralize("puzzles", 0))
}

func TestJoinList(t *testing.T) {
	assert.Equal(t, "", joinList(nil))
	assert.Equal(t, "a", joinList([]string{"a"}))
	assert.Equal(t, "a and b", joinList([]string{"a", "b"}))
	assert.Equal(t, "a, b and c", joinList([]string{"a", "b", "c"}))
}

func TestCountNoun(t *testing.T) {
	assert.Equal(t, "1 marble", countNoun(1, "marbles"))
	assert.Equal(t, "4 marbles", countNoun(4, "marbles"))
}
