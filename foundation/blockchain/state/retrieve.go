package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// Chain returns a copy of the full chain.
func (s *State) Chain() []database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return database.CloneChain(s.chain)
}

// Status returns the current status of this node for its peers.
func (s *State) Status() peer.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := peer.Status{
		LatestBlockHash: database.ZeroHash(),
		Pending:         len(s.pending),
		KnownPeers:      s.peers.Copy(s.host),
	}

	if len(s.chain) > 0 {
		last := s.chain[len(s.chain)-1]
		status.LatestBlockHash = last.Hash()
		status.LatestBlockIndex = last.Index
	}

	return status
}
