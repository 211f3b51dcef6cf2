package question

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/wordprob/wordprob/masking"
	"github.com/wordprob/wordprob/scenario"
	"github.com/wordprob/wordprob/smt"
	"github.com/wordprob/wordprob/verify"
)

// Kind classifies what a rendered question asks for. Only kinds the
// verification core can certify are produced.
type Kind string

const (
	InitialCount   Kind = "initial_count"
	FinalCount     Kind = "final_count"
	TransferAmount Kind = "transfer_amount"
)

// Problem is one dataset record: rendered text, the question, its
// ground-truth answer and the verification evidence that the answer is
// deducible and unique.
type Problem struct {
	ID         uuid.UUID `json:"id"`
	ScenarioID int       `json:"scenarioId"`
	Difficulty string    `json:"difficulty,omitempty"`
	Kind       Kind      `json:"kind"`
	Text       string    `json:"text"`
	Question   string    `json:"question"`
	Answer     int64     `json:"answer"`
	Masked     []string  `json:"masked,omitempty"`
	Complexity float64   `json:"complexity"`

	Verification verify.Result `json:"verification"`
	SMT          *smt.Result   `json:"smt,omitempty"`

	// Scenario and Mask carry the ground truth so a stored problem can be
	// re-verified without the generating run.
	Scenario *scenario.Scenario `json:"scenario,omitempty"`
	Mask     *masking.Spec      `json:"mask,omitempty"`
}

// Renderer turns scenarios into problem text. Not safe for concurrent use;
// give each worker its own.
type Renderer struct {
	rng *rand.Rand
}

// NewRenderer returns a Renderer deterministic under seed.
func NewRenderer(seed int64) *Renderer {
	return &Renderer{rng: rand.New(rand.NewSource(seed))}
}

// Render produces the problem text and question for a scenario under the
// given mask. The mask must already be validated against the scenario.
func (r *Renderer) Render(sc *scenario.Scenario, spec *masking.Spec) (text, q string, answer int64, kind Kind, err error) {
	switch {
	case spec == nil || spec.Kind == masking.KindNone:
		return r.renderUnmasked(sc)
	case spec.Kind == masking.KindInitial:
		return r.renderMaskedInitial(sc, spec)
	case spec.Kind == masking.KindTransfers:
		return r.renderMaskedTransfers(sc, spec)
	default:
		return "", "", 0, "", fmt.Errorf("question: unknown mask kind %s", spec.Kind)
	}
}

// renderUnmasked asks for a final count; everything needed is stated.
func (r *Renderer) renderUnmasked(sc *scenario.Scenario) (string, string, int64, Kind, error) {
	agent, obj, err := r.pickTarget(sc)
	if err != nil {
		return "", "", 0, "", err
	}
	sentences := append(r.initialSentences(sc, nil), r.transferSentences(sc, nil)...)
	q := fmt.Sprintf("How many %s does %s have now?", Pluralize(obj, 2), agent.Name)
	return joinSentences(sentences), q, agent.Final[obj], FinalCount, nil
}

// renderMaskedInitial hides the target's starting count behind a vague
// quantity and anchors the story with the final count instead.
func (r *Renderer) renderMaskedInitial(sc *scenario.Scenario, spec *masking.Spec) (string, string, int64, Kind, error) {
	agent, ok := sc.Agent(spec.Agent)
	if !ok {
		return "", "", 0, "", fmt.Errorf("%w: %q", masking.ErrUnknownAgent, spec.Agent)
	}

	hidden := map[string]string{spec.Agent: spec.Object}
	sentences := append(r.initialSentences(sc, hidden), r.transferSentences(sc, nil)...)

	final := agent.Final[spec.Object]
	sentences = append(sentences, fmt.Sprintf("In total, %s now has %s.", agent.Name, countNoun(final, spec.Object)))

	q := fmt.Sprintf("How many %s did %s have at the beginning?", Pluralize(spec.Object, 2), agent.Name)
	return joinSentences(sentences), q, agent.Initial[spec.Object], InitialCount, nil
}

// renderMaskedTransfers renders the hidden transfer quantities as "some" and
// asks for the first one.
func (r *Renderer) renderMaskedTransfers(sc *scenario.Scenario, spec *masking.Spec) (string, string, int64, Kind, error) {
	hidden := make(map[int]bool, len(spec.Transfers))
	for _, seq := range spec.Transfers {
		hidden[seq] = true
	}
	target, ok := sc.Transfer(spec.Transfers[0])
	if !ok {
		return "", "", 0, "", fmt.Errorf("%w: id %d", masking.ErrUnknownTransfer, spec.Transfers[0])
	}

	sentences := append(r.initialSentences(sc, nil), r.transferSentences(sc, hidden)...)
	for _, a := range sc.Agents {
		if a.Name == target.To {
			sentences = append(sentences, fmt.Sprintf("In the end, %s has %s.", a.Name, countNoun(a.Final[target.Object], target.Object)))
		}
	}

	q := fmt.Sprintf("How many %s did %s give to %s?", Pluralize(target.Object, 2), target.From, target.To)
	return joinSentences(sentences), q, target.Quantity, TransferAmount, nil
}

// initialSentences describes every agent's non-zero starting holdings.
// hidden maps agent name to the object whose count is replaced by a vague
// quantity.
func (r *Renderer) initialSentences(sc *scenario.Scenario, hidden map[string]string) []string {
	var sentences []string
	for _, agent := range sc.Agents {
		var holdings []string
		for _, obj := range sc.Objects {
			count := agent.Initial[obj]
			if hidden[agent.Name] == obj {
				holdings = append(holdings, fmt.Sprintf("%s %s", VagueQuantity(count), Pluralize(obj, 2)))
				continue
			}
			if count > 0 {
				holdings = append(holdings, countNoun(count, obj))
			}
		}
		if len(holdings) > 0 {
			sentences = append(sentences, fmt.Sprintf("%s has %s.", agent.Name, joinList(holdings)))
		}
	}
	return sentences
}

// transferSentences describes the transfer sequence in order; hidden
// transfer quantities are rendered as "some".
func (r *Renderer) transferSentences(sc *scenario.Scenario, hidden map[int]bool) []string {
	var sentences []string
	for _, t := range sc.Transfers {
		verb := pick(r.rng, transferVerbs)
		connector := pick(r.rng, connectors)
		amount := countNoun(t.Quantity, t.Object)
		if hidden[t.Seq] {
			amount = "some " + Pluralize(t.Object, 2)
		}
		sentences = append(sentences, fmt.Sprintf("%s, %s %s %s to %s.", connector, t.From, verb, amount, t.To))
	}
	return sentences
}

func (r *Renderer) pickTarget(sc *scenario.Scenario) (*scenario.Agent, string, error) {
	if len(sc.Agents) == 0 || len(sc.Objects) == 0 {
		return nil, "", fmt.Errorf("question: scenario has no agents or objects")
	}
	agent := &sc.Agents[r.rng.Intn(len(sc.Agents))]
	obj := sc.Objects[r.rng.Intn(len(sc.Objects))]
	return agent, obj, nil
}
