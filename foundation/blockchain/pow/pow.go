// Package pow implements the proof of work admission gate for new blocks.
// A proof is accepted when the digest of the previous block hash, the
// previous proof and the candidate begins with a configured number of
// zero bytes.
package pow

import (
	"context"
	"errors"
	"runtime"
	"strconv"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/objecthash"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DefaultBatchSize is the number of candidates checked per search round
// when no batch size is configured.
const DefaultBatchSize = 4096

// ErrInvalidDifficulty is returned when the difficulty can't be satisfied
// by a digest.
var ErrInvalidDifficulty = errors.New("difficulty must be between 0 and the digest size")

// EventHandler defines a function that is called when events occur in the
// processing of a proof search.
type EventHandler func(v string, args ...any)

// Config represents the settings for the engine.
type Config struct {
	Difficulty int
	Workers    int
	BatchSize  uint64
	EvHandler  EventHandler
}

// Engine performs the proof of work search and validation. An engine holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	difficulty int
	workers    int
	batchSize  uint64
	evHandler  EventHandler
}

// New constructs an engine for the specified configuration.
func New(cfg Config) (*Engine, error) {
	if cfg.Difficulty < 0 || cfg.Difficulty > objecthash.Size {
		return nil, ErrInvalidDifficulty
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	batchSize := cfg.BatchSize
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}

	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	e := Engine{
		difficulty: cfg.Difficulty,
		workers:    workers,
		batchSize:  batchSize,
		evHandler:  ev,
	}

	return &e, nil
}

// Difficulty returns the number of leading zero bytes required.
func (e *Engine) Difficulty() int {
	return e.difficulty
}

// IsValidProof reports whether the candidate solves the puzzle for the
// specified previous hash and proof.
func (e *Engine) IsValidProof(prevHash database.Hash, prevProof uint64, candidate uint64) bool {
	digest := objecthash.Digest(puzzle(prevHash, prevProof, candidate))
	return isSolved(e.difficulty, digest)
}

// FindProof scans the candidates 0, 1, 2, ... and returns the first one
// that solves the puzzle. The scan is split over the configured number of
// workers in batches. Every batch is finished before the next one starts,
// so the smallest solution is always the one returned. The search only
// stops early when the context is cancelled.
func (e *Engine) FindProof(ctx context.Context, prevHash database.Hash, prevProof uint64) (uint64, error) {
	e.evHandler("pow: FindProof: started: prevHash[%s] prevProof[%d] difficulty[%d]", prevHash, prevProof, e.difficulty)

	prefix := puzzlePrefix(prevHash, prevProof)

	var base uint64
	for round := uint64(1); ; round++ {
		if err := ctx.Err(); err != nil {
			e.evHandler("pow: FindProof: CANCELLED: attempts[%d]", base)
			return 0, err
		}

		if proof, found := e.searchBatch(prefix, base); found {
			e.evHandler("pow: FindProof: SOLVED: proof[%d] attempts[%d]", proof, proof+1)
			return proof, nil
		}

		base += e.batchSize
		if round%256 == 0 {
			e.evHandler("pow: FindProof: attempts[%d]", base)
		}
	}
}

// searchBatch checks the candidates [base, base+batchSize) over the set of
// workers. Each worker owns a disjoint stride of the range and stops at its
// first hit, which is the smallest value in that stride.
func (e *Engine) searchBatch(prefix string, base uint64) (uint64, bool) {
	results := make([]uint64, e.workers)
	found := make([]bool, e.workers)

	var wg sync.WaitGroup
	wg.Add(e.workers)

	for w := 0; w < e.workers; w++ {
		go func(w int) {
			defer wg.Done()

			for c := base + uint64(w); c < base+e.batchSize; c += uint64(e.workers) {
				digest := objecthash.Digest(prefix + strconv.FormatUint(c, 10))
				if isSolved(e.difficulty, digest) {
					results[w] = c
					found[w] = true
					return
				}
			}
		}(w)
	}

	wg.Wait()

	var best uint64
	var hit bool
	for w := range results {
		if found[w] && (!hit || results[w] < best) {
			best = results[w]
			hit = true
		}
	}

	return best, hit
}

// =============================================================================

// puzzle returns the string that is hashed to check a candidate.
func puzzle(prevHash database.Hash, prevProof uint64, candidate uint64) string {
	return puzzlePrefix(prevHash, prevProof) + strconv.FormatUint(candidate, 10)
}

// puzzlePrefix returns the part of the puzzle that doesn't depend on the
// candidate.
func puzzlePrefix(prevHash database.Hash, prevProof uint64) string {
	return hexutil.Encode(prevHash) + strconv.FormatUint(prevProof, 10)
}

// isSolved checks the digest begins with a difficulty number of zero bytes.
func isSolved(difficulty int, digest []byte) bool {
	if len(digest) < difficulty {
		return false
	}

	for _, b := range digest[:difficulty] {
		if b != 0 {
			return false
		}
	}

	return true
}
