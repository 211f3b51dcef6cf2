// Package scenario models simulated worlds of agents exchanging countable
// objects, and generates them from difficulty-aware templates over directed
// transfer graphs.
//
// A Scenario always carries full ground truth: initial and final inventories
// for every (agent, object) pair and the exact quantity of every transfer.
// Downstream masking hides quantities from the rendered text only; it never
// alters the ground truth stored here.
package scenario

import (
	"fmt"
)

// Transfer is a single exchange of objects between two agents.
// Seq orders transfers within a scenario and doubles as the transfer id.
type Transfer struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Object   string `json:"object"`
	Quantity int64  `json:"quantity"`
	Seq      int    `json:"seq"`
}

// Agent holds an agent's inventories before and after all transfers.
type Agent struct {
	Name    string           `json:"name"`
	Initial map[string]int64 `json:"initial"`
	Final   map[string]int64 `json:"final"`
}

// Metrics are lightweight graph statistics of the transfer topology,
// used for complexity scoring.
type Metrics struct {
	Density      float64 `json:"density"`
	AvgBranching float64 `json:"avgBranching"`
	Diameter     float64 `json:"diameter"`
	CycleCount   float64 `json:"cycleCount"`
}

// Scenario is a complete simulated world with ground truth.
type Scenario struct {
	ID         int        `json:"id"`
	Difficulty string     `json:"difficulty,omitempty"`
	Agents     []Agent    `json:"agents"`
	Objects    []string   `json:"objects"`
	Transfers  []Transfer `json:"transfers"`
	GraphType  string     `json:"graphType,omitempty"`
	Metrics    Metrics    `json:"metrics"`
	Complexity float64    `json:"complexity"`
}

// Agent returns the agent with the given name.
func (s *Scenario) Agent(name string) (*Agent, bool) {
	for i := range s.Agents {
		if s.Agents[i].Name == name {
			return &s.Agents[i], true
		}
	}
	return nil, false
}

// Transfer returns the transfer with the given sequence id.
func (s *Scenario) Transfer(seq int) (*Transfer, bool) {
	for i := range s.Transfers {
		if s.Transfers[i].Seq == seq {
			return &s.Transfers[i], true
		}
	}
	return nil, false
}

// HasObject reports whether the object type is part of the scenario.
func (s *Scenario) HasObject(object string) bool {
	for _, o := range s.Objects {
		if o == object {
			return true
		}
	}
	return false
}

// CheckConservation replays the transfer sequence from the initial
// inventories and verifies the ground truth invariant: every running
// inventory stays non-negative and the replay ends exactly on the recorded
// final inventories.
func (s *Scenario) CheckConservation() error {
	running := make(map[string]map[string]int64, len(s.Agents))
	for _, a := range s.Agents {
		inv := make(map[string]int64, len(s.Objects))
		for _, obj := range s.Objects {
			inv[obj] = a.Initial[obj]
		}
		running[a.Name] = inv
	}

	for _, t := range s.Transfers {
		sender, ok := running[t.From]
		if !ok {
			return fmt.Errorf("transfer %d: unknown sender %q", t.Seq, t.From)
		}
		receiver, ok := running[t.To]
		if !ok {
			return fmt.Errorf("transfer %d: unknown receiver %q", t.Seq, t.To)
		}
		if !s.HasObject(t.Object) {
			return fmt.Errorf("transfer %d: unknown object %q", t.Seq, t.Object)
		}
		if t.Quantity <= 0 {
			return fmt.Errorf("transfer %d: non-positive quantity %d", t.Seq, t.Quantity)
		}
		sender[t.Object] -= t.Quantity
		if sender[t.Object] < 0 {
			return fmt.Errorf("transfer %d: %s overdraws %s (%d short)", t.Seq, t.From, t.Object, -sender[t.Object])
		}
		receiver[t.Object] += t.Quantity
	}

	for _, a := range s.Agents {
		for _, obj := range s.Objects {
			got := running[a.Name][obj]
			if want := a.Final[obj]; got != want {
				return fmt.Errorf("agent %s: replayed %s count %d does not match recorded final %d", a.Name, obj, got, want)
			}
		}
	}
	return nil
}

// AgentNames returns the agent names in scenario order.
func (s *Scenario) AgentNames() []string {
	names := make([]string, len(s.Agents))
	for i, a := range s.Agents {
		names[i] = a.Name
	}
	return names
}
