// Package masking defines which ground-truth quantities of a scenario are
// hidden from the rendered problem text.
//
// The package provides only the vocabulary a masking policy produces;
// deciding WHICH quantity to hide is an upstream concern. A Spec is a tagged
// union: it either hides one initial inventory count, identified by
// (agent, object), or hides the quantities of a set of transfers, identified
// by their sequence ids.
package masking

import (
	"errors"
	"fmt"

	"github.com/wordprob/wordprob/scenario"
)

// Kind discriminates the masking target.
type Kind uint8

const (
	// KindNone masks nothing; the zero value of Spec.
	KindNone Kind = iota
	// KindInitial hides one agent's initial count of one object.
	KindInitial
	// KindTransfers hides the quantities of the listed transfers.
	KindTransfers
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInitial:
		return "initial"
	case KindTransfers:
		return "transfers"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Structural validation failures; wrapped with target details.
var (
	ErrUnknownAgent    = errors.New("masking: target agent not in scenario")
	ErrUnknownObject   = errors.New("masking: target object not in scenario")
	ErrUnknownTransfer = errors.New("masking: target transfer not in scenario")
	ErrEmptyTarget     = errors.New("masking: spec has no target")
)

// Spec selects the quantities to hide. Use the Initial and Transfers
// constructors; a zero Spec masks nothing.
type Spec struct {
	Kind      Kind   `json:"kind" yaml:"kind"`
	Agent     string `json:"agent,omitempty" yaml:"agent,omitempty"`
	Object    string `json:"object,omitempty" yaml:"object,omitempty"`
	Transfers []int  `json:"transfers,omitempty" yaml:"transfers,omitempty"`
}

// Initial returns a Spec hiding agent's initial count of object.
func Initial(agent, object string) *Spec {
	return &Spec{Kind: KindInitial, Agent: agent, Object: object}
}

// Transfers returns a Spec hiding the quantities of the given transfer ids.
func Transfers(seqs ...int) *Spec {
	return &Spec{Kind: KindTransfers, Transfers: seqs}
}

// Validate checks the Spec against the scenario. Every referenced agent,
// object and transfer id must exist; a Spec that refers to anything absent
// fails here rather than silently producing an unmaskable system.
func (m *Spec) Validate(sc *scenario.Scenario) error {
	switch m.Kind {
	case KindNone:
		return nil
	case KindInitial:
		if m.Agent == "" || m.Object == "" {
			return fmt.Errorf("%w: initial mask needs agent and object", ErrEmptyTarget)
		}
		if _, ok := sc.Agent(m.Agent); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAgent, m.Agent)
		}
		if !sc.HasObject(m.Object) {
			return fmt.Errorf("%w: %q", ErrUnknownObject, m.Object)
		}
		return nil
	case KindTransfers:
		if len(m.Transfers) == 0 {
			return fmt.Errorf("%w: transfer mask needs at least one id", ErrEmptyTarget)
		}
		for _, seq := range m.Transfers {
			if _, ok := sc.Transfer(seq); !ok {
				return fmt.Errorf("%w: id %d", ErrUnknownTransfer, seq)
			}
		}
		return nil
	default:
		return fmt.Errorf("masking: unknown kind %d", m.Kind)
	}
}
