package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// StageTransaction adds the transaction to the pending pool and returns the
// index of the block the transaction will be included in.
func (s *State) StageTransaction(tx database.Tx) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.stageTransaction(tx)

	s.evHandler("state: StageTransaction: tx[%s] blk[%d] pending[%d]", tx, index, len(s.pending))

	return index, nil
}

// Pending returns a copy of the pending transactions in staging order.
func (s *State) Pending() []database.Tx {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]database.Tx{}, s.pending...)
}

// stageTransaction performs the staging and must be called while holding
// the lock.
func (s *State) stageTransaction(tx database.Tx) uint64 {
	s.pending = append(s.pending, tx)
	s.metrics.StagedTx(len(s.pending))

	return uint64(len(s.chain)) + 1
}
