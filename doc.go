// Package wordprob generates synthetic arithmetic word problems by simulating
// agents exchanging countable objects, then hiding ("masking") selected
// quantities from the rendered text so a reader must deduce them.
//
// The heart of the module is the verification core: before a masked problem is
// accepted into a dataset, the hidden quantities are proven to have exactly one
// mathematically valid answer. The pipeline is:
//
//   - scenario: simulated world of agents, objects and transfers with ground truth
//   - masking: which quantities are hidden
//   - constraint: conservation-law linear system over initial/final/transfer variables
//   - verify: numerical rank analysis of the masked sub-system
//   - smt: formal bounded-integer cross-check via SAT
//   - compare: agreement report between the two verifiers
//   - question, dataset: rendering and persistence around the core
package wordprob

import (
	"github.com/blang/semver/v4"
)

// Version of the wordprob module
var Version = semver.MustParse("0.3.0")
