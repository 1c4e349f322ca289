package state

import (
	"context"
	"fmt"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// MineBlock appends a new block holding every pending transaction to the
// chain and returns a copy of the full chain. The pending pool is empty
// afterwards.
//
// When the ledger is configured to verify proofs, a proof that doesn't solve
// the puzzle against the current tail is rejected and nothing changes.
// Otherwise callers are trusted to have found the proof with the engine.
func (s *State) MineBlock(ts database.Timestamp, proof uint64) ([]database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.verifyProof {
		prevHash, prevProof := s.tail()
		if !s.engine.IsValidProof(prevHash, prevProof, proof) {
			s.evHandler("state: MineBlock: REJECTED: proof[%d] prevHash[%s] prevProof[%d]", proof, prevHash, prevProof)
			return nil, fmt.Errorf("%w: %w", ErrBlock, ErrInvalidProof)
		}
	}

	block := s.mineBlock(ts, proof)

	s.evHandler("state: MineBlock: blk[%d] proof[%d] trans[%d] prevHash[%s]", block.Index, block.Proof, len(block.Transactions), block.PreviousHash)

	return database.CloneChain(s.chain), nil
}

// LastBlock returns a copy of the most recent block. The boolean is false
// when the chain is empty.
func (s *State) LastBlock() (database.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.chain) == 0 {
		return database.Block{}, false
	}

	return s.chain[len(s.chain)-1].Clone(), true
}

// Mine performs the full mining workflow. The reward for this node is
// staged, a proof is searched for without holding the lock and the block
// is appended. If another block reached the chain while searching, the
// search is repeated against the new tail.
func (s *State) Mine(ctx context.Context) (database.Block, error) {
	s.evHandler("state: Mine: MINING: started")
	defer s.evHandler("state: Mine: MINING: completed")

	for attempt := 1; ; attempt++ {
		s.mu.Lock()
		prevHash, prevProof := s.tail()
		s.mu.Unlock()

		s.evHandler("state: Mine: MINING: attempt[%d] perform POW", attempt)

		start := time.Now()
		proof, err := s.engine.FindProof(ctx, prevHash, prevProof)
		s.metrics.SearchedProof(time.Since(start))
		if err != nil {
			return database.Block{}, fmt.Errorf("%w: finding proof: %w", ErrBlock, err)
		}

		block, appended := s.appendAtTail(prevHash, proof)
		if !appended {
			s.evHandler("state: Mine: MINING: chain tail moved, searching again")
			continue
		}

		s.evHandler("state: Mine: MINING: SOLVED: blk[%d] proof[%d] duration[%v]", block.Index, block.Proof, time.Since(start))

		return block, nil
	}
}

// =============================================================================

// appendAtTail stages the reward and appends a new block only if the chain
// tail is still the one the proof was computed against.
func (s *State) appendAtTail(prevHash database.Hash, proof uint64) (database.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tailHash, _ := s.tail(); !tailHash.Equal(prevHash) {
		return database.Block{}, false
	}

	s.stageTransaction(database.NewTx(RewardSender, s.nodeID, s.reward))
	block := s.mineBlock(s.clock(), proof)

	return block.Clone(), true
}

// mineBlock builds and appends the next block. It must be called while
// holding the lock.
func (s *State) mineBlock(ts database.Timestamp, proof uint64) database.Block {
	prevHash := database.ZeroHash()
	if len(s.chain) > 0 {
		prevHash = s.chain[len(s.chain)-1].Hash()
	}

	block := database.NewBlock(uint64(len(s.chain))+1, ts, s.pending, proof, prevHash)

	s.pending = nil
	s.chain = append(s.chain, block)
	s.metrics.MinedBlock(len(s.chain))

	return block
}

// tail returns the digest and proof the next block must build on. An empty
// chain is represented by the zero hash and a proof of zero. It must be
// called while holding the lock.
func (s *State) tail() (database.Hash, uint64) {
	if len(s.chain) == 0 {
		return database.ZeroHash(), 0
	}

	last := s.chain[len(s.chain)-1]
	return last.Hash(), last.Proof
}
