package database

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/objecthash"
)

// ErrBrokenLink is returned by ValidateNext when a block does not point to
// the digest of the block before it.
var ErrBrokenLink = errors.New("previous hash doesn't match parent block")

// ErrProofRejected is returned by ValidateNext when the proof carried by a
// block does not solve the work puzzle against its parent.
var ErrProofRejected = errors.New("proof doesn't solve the work puzzle")

// ProofChecker represents the behavior required to check a proof of work.
type ProofChecker interface {
	IsValidProof(prevHash Hash, prevProof uint64, candidate uint64) bool
}

// =============================================================================

// Block represents a group of transactions batched together. A block is
// never changed after it has been constructed.
type Block struct {
	Index        uint64    `json:"index"`         // Position in the chain starting at 1.
	Timestamp    Timestamp `json:"timestamp"`     // Time the block was mined.
	Transactions []Tx      `json:"transactions"`  // Transactions in staging order.
	Proof        uint64    `json:"proof"`         // Value identified to solve the work puzzle.
	PreviousHash Hash      `json:"previous_hash"` // Digest of the previous block or the zero hash.
}

// NewBlock constructs a block. The transactions and hash are copied so
// later changes by the caller are not reflected in the block.
func NewBlock(index uint64, ts Timestamp, trans []Tx, proof uint64, prevHash Hash) Block {
	return Block{
		Index:        index,
		Timestamp:    ts,
		Transactions: append([]Tx{}, trans...),
		Proof:        proof,
		PreviousHash: append(Hash{}, prevHash...),
	}
}

// HashFields implements the objecthash.Hashable interface.
func (b Block) HashFields() []objecthash.Field {
	return []objecthash.Field{
		{Name: "index", Value: b.Index},
		{Name: "timestamp", Value: b.Timestamp},
		{Name: "transactions", Value: b.Transactions},
		{Name: "proof", Value: b.Proof},
		{Name: "previous_hash", Value: b.PreviousHash},
	}
}

// Hash returns the canonical digest for the block.
func (b Block) Hash() Hash {
	return objecthash.Digest(b)
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	return NewBlock(b.Index, b.Timestamp, b.Transactions, b.Proof, b.PreviousHash)
}

// ValidateNext checks that the block can follow the specified parent. The
// digest link is checked first and then the proof of work.
func (b Block) ValidateNext(parent Block, checker ProofChecker) error {
	parentHash := parent.Hash()

	if !b.PreviousHash.Equal(parentHash) {
		return fmt.Errorf("blk[%d]: %w, got %s, exp %s", b.Index, ErrBrokenLink, b.PreviousHash, parentHash)
	}

	if !checker.IsValidProof(parentHash, parent.Proof, b.Proof) {
		return fmt.Errorf("blk[%d]: %w, proof %d, parent proof %d", b.Index, ErrProofRejected, b.Proof, parent.Proof)
	}

	return nil
}

// =============================================================================

// CloneChain returns a deep copy of the set of blocks.
func CloneChain(chain []Block) []Block {
	cpy := make([]Block, len(chain))
	for i, b := range chain {
		cpy[i] = b.Clone()
	}
	return cpy
}
