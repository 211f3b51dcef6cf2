package constraint

import (
	"fmt"

	"github.com/wordprob/wordprob/logger"
	"github.com/wordprob/wordprob/masking"
	"github.com/wordprob/wordprob/scenario"
)

// Build constructs the full conservation system for a scenario and applies
// the masking spec. A nil spec (or masking.KindNone) leaves every variable
// known. Masks referencing an agent, object or transfer absent from the
// scenario fail fast.
func Build(sc *scenario.Scenario, spec *masking.Spec) (*System, error) {
	s := &System{
		Known: make(map[string]int64, 2*len(sc.Agents)*len(sc.Objects)+len(sc.Transfers)),
		index: make(map[string]int),
	}

	// One initial and one final variable per (agent, object) pair of the
	// full cross product, zero-quantity pairs included, so the system stays
	// well-defined whatever the mask hits.
	for _, agent := range sc.Agents {
		for _, obj := range sc.Objects {
			if err := s.addVariable(Variable{
				Name:       InitialName(agent.Name, obj),
				Kind:       Initial,
				Agent:      agent.Name,
				Object:     obj,
				TransferID: -1,
			}, agent.Initial[obj]); err != nil {
				return nil, err
			}
			if err := s.addVariable(Variable{
				Name:       FinalName(agent.Name, obj),
				Kind:       Final,
				Agent:      agent.Name,
				Object:     obj,
				TransferID: -1,
			}, agent.Final[obj]); err != nil {
				return nil, err
			}
		}
	}

	for _, t := range sc.Transfers {
		if err := s.addVariable(Variable{
			Name:       TransferName(t.Seq, t.From, t.To, t.Object),
			Kind:       Transfer,
			Agent:      t.From,
			Object:     t.Object,
			TransferID: t.Seq,
		}, t.Quantity); err != nil {
			return nil, err
		}
	}

	if spec != nil {
		if err := applyMask(s, sc, spec); err != nil {
			return nil, err
		}
	}

	buildRows(s, sc)

	log := logger.Logger()
	log.Debug().
		Int("nbConstraints", s.NbConstraints()).
		Int("nbVariables", s.NbVariables()).
		Int("nbMasked", len(s.Masked)).
		Msg("built constraint system")
	return s, nil
}

func (s *System) addVariable(v Variable, value int64) error {
	if _, ok := s.index[v.Name]; ok {
		return fmt.Errorf("constraint: duplicate variable %q", v.Name)
	}
	s.index[v.Name] = len(s.Variables)
	s.Variables = append(s.Variables, v)
	s.Known[v.Name] = value
	return nil
}

// maskApplier moves the spec's targets from Known into Masked.
type maskApplier func(s *System, sc *scenario.Scenario, spec *masking.Spec) error

// Mask kinds dispatch through a fixed table, one applier per kind.
var maskAppliers = map[masking.Kind]maskApplier{
	masking.KindNone:      func(*System, *scenario.Scenario, *masking.Spec) error { return nil },
	masking.KindInitial:   applyInitialMask,
	masking.KindTransfers: applyTransfersMask,
}

func applyMask(s *System, sc *scenario.Scenario, spec *masking.Spec) error {
	if err := spec.Validate(sc); err != nil {
		return err
	}
	apply, ok := maskAppliers[spec.Kind]
	if !ok {
		return fmt.Errorf("constraint: no applier for mask kind %s", spec.Kind)
	}
	return apply(s, sc, spec)
}

func applyInitialMask(s *System, _ *scenario.Scenario, spec *masking.Spec) error {
	return s.maskVariable(InitialName(spec.Agent, spec.Object))
}

func applyTransfersMask(s *System, sc *scenario.Scenario, spec *masking.Spec) error {
	for _, seq := range spec.Transfers {
		t, ok := sc.Transfer(seq)
		if !ok {
			return fmt.Errorf("%w: id %d", masking.ErrUnknownTransfer, seq)
		}
		if err := s.maskVariable(TransferName(t.Seq, t.From, t.To, t.Object)); err != nil {
			return err
		}
	}
	return nil
}

func (s *System) maskVariable(name string) error {
	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("constraint: cannot mask unknown variable %q", name)
	}
	if s.Variables[i].Masked {
		return fmt.Errorf("constraint: variable %q masked twice", name)
	}
	s.Variables[i].Masked = true
	s.Masked = append(s.Masked, name)
	delete(s.Known, name)
	return nil
}

// buildRows emits one conservation row per (agent, object) pair:
// final − initial − Σ incoming + Σ outgoing = 0.
func buildRows(s *System, sc *scenario.Scenario) {
	n := len(s.Variables)
	for _, agent := range sc.Agents {
		for _, obj := range sc.Objects {
			row := make([]int8, n)
			row[s.index[FinalName(agent.Name, obj)]] = 1
			row[s.index[InitialName(agent.Name, obj)]] = -1
			for _, t := range sc.Transfers {
				if t.Object != obj {
					continue
				}
				idx := s.index[TransferName(t.Seq, t.From, t.To, t.Object)]
				if t.To == agent.Name {
					row[idx]--
				}
				if t.From == agent.Name {
					row[idx]++
				}
			}
			s.Coeffs = append(s.Coeffs, row)
			s.RHS = append(s.RHS, 0)
		}
	}
}
