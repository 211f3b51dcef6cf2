// Package constraint turns a scenario plus a masking spec into a linear
// conservation system Ax = b over initial, final and transfer quantities.
//
// Every row of the system encodes the conservation law of one
// (agent, object) pair:
//
//	final − initial − Σ incoming + Σ outgoing = 0
//
// With all transfer quantities modeled as variables the right-hand side is
// always zero at build time; it becomes non-zero only when the known-value
// contributions are folded in during masked sub-system extraction.
package constraint

import "fmt"

// VariableKind tags what quantity a variable stands for.
type VariableKind uint8

const (
	// Initial is an agent's inventory of one object before any transfer.
	Initial VariableKind = iota
	// Final is an agent's inventory of one object after all transfers.
	Final
	// Transfer is the quantity moved by one transfer event.
	Transfer
)

func (k VariableKind) String() string {
	switch k {
	case Initial:
		return "initial"
	case Final:
		return "final"
	case Transfer:
		return "transfer"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Variable is one quantity of the system. Identity is by Name; names are
// unique within a System.
type Variable struct {
	Name   string       `cbor:"name" json:"name"`
	Kind   VariableKind `cbor:"kind" json:"kind"`
	Agent  string       `cbor:"agent" json:"agent"`
	Object string       `cbor:"object" json:"object"`
	// TransferID is the transfer sequence id; meaningful only when
	// Kind == Transfer, -1 otherwise.
	TransferID int  `cbor:"transferId" json:"transferId"`
	Masked     bool `cbor:"masked" json:"masked"`
}

// InitialName is the canonical name of an initial-inventory variable.
func InitialName(agent, object string) string {
	return fmt.Sprintf("init_%s_%s", agent, object)
}

// FinalName is the canonical name of a final-inventory variable.
func FinalName(agent, object string) string {
	return fmt.Sprintf("final_%s_%s", agent, object)
}

// TransferName is the canonical name of a transfer-quantity variable.
func TransferName(seq int, from, to, object string) string {
	return fmt.Sprintf("transfer_%d_%s_%s_%s", seq, from, to, object)
}
