// Package consensus provides the fork choice rules used to pick between
// the local chain and the chains advertised by peers.
package consensus

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// List of different fork choice rules.
const (
	RuleLongest = "longest"
)

// Map of different fork choice rules.
var rules = map[string]Rule{
	RuleLongest: Longest{},
}

// LocalSource is the source name given to the chain held by this node.
const LocalSource = "local"

// Candidate represents a chain and the peer that advertised it.
type Candidate struct {
	Source string
	Chain  []database.Block
}

// Rule represents the behavior required to choose between chains. The
// candidates handed to a rule have already been validated. Choose returns
// the winning candidate and whether it replaces the local chain.
type Rule interface {
	Choose(local []database.Block, candidates []Candidate) (Candidate, bool)
}

// Retrieve returns the specified fork choice rule.
func Retrieve(name string) (Rule, error) {
	rule, exists := rules[name]
	if !exists {
		return nil, fmt.Errorf("consensus rule %q does not exist", name)
	}
	return rule, nil
}

// =============================================================================

// Longest is the longest valid chain wins rule. A candidate must be strictly
// longer than the best chain seen so far to take its place, so ties favor
// the chain already held.
//
// A peer presenting a longer chain that solves the work puzzle is accepted
// even if it conflicts with the local history. There is no stronger rule.
type Longest struct{}

// Choose implements the Rule interface.
func (Longest) Choose(local []database.Block, candidates []Candidate) (Candidate, bool) {
	best := Candidate{
		Source: LocalSource,
		Chain:  local,
	}

	var replaced bool
	for _, c := range candidates {
		if len(c.Chain) > len(best.Chain) {
			best = c
			replaced = true
		}
	}

	return best, replaced
}
