package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// ValidateChain walks every consecutive pair of blocks and returns the first
// broken digest link or rejected proof it finds. Chains with one block or
// less are always valid. The first block is never checked against the
// genesis sentinel since chains from peers can start anywhere.
func ValidateChain(checker database.ProofChecker, chain []database.Block) error {
	for i := 1; i < len(chain); i++ {
		if err := chain[i].ValidateNext(chain[i-1], checker); err != nil {
			return err
		}
	}

	return nil
}

// IsValidChain reports whether the chain passes ValidateChain.
func IsValidChain(checker database.ProofChecker, chain []database.Block) bool {
	return ValidateChain(checker, chain) == nil
}

// IsValid reports whether the chain held by this ledger is valid.
func (s *State) IsValid() bool {
	chain := s.Chain()

	if err := ValidateChain(s.engine, chain); err != nil {
		s.evHandler("state: IsValid: %s", err)
		return false
	}

	return true
}
