package state

import (
	"context"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/consensus"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// ResolveConflicts asks every known peer for its chain and replaces the
// local chain with the best valid candidate according to the consensus
// rule. A peer that can't be reached or answers with a chain that can't be
// decoded or validated is skipped, it never stops the resolution. The
// chain held after resolution is returned along with whether it was
// replaced.
func (s *State) ResolveConflicts(ctx context.Context) (bool, []database.Block) {
	s.evHandler("state: ResolveConflicts: started")
	defer s.evHandler("state: ResolveConflicts: completed")

	// Only the snapshot of the peers and chain needs the lock. The peers are
	// contacted without holding it.
	s.mu.Lock()
	peers := s.peers.Copy(s.host)
	local := database.CloneChain(s.chain)
	s.mu.Unlock()

	chains, errs := s.fetchChains(ctx, peers)

	var failures int
	var candidates []consensus.Candidate
	for i, pr := range peers {
		if errs[i] != nil {
			s.evHandler("state: ResolveConflicts: peer[%s]: WARNING: fetch: %s", pr, errs[i])
			failures++
			continue
		}

		if err := ValidateChain(s.engine, chains[i]); err != nil {
			s.evHandler("state: ResolveConflicts: peer[%s]: WARNING: invalid chain: %s", pr, err)
			failures++
			continue
		}

		s.evHandler("state: ResolveConflicts: peer[%s]: valid chain: length[%d]", pr, len(chains[i]))

		candidates = append(candidates, consensus.Candidate{
			Source: pr.Host,
			Chain:  chains[i],
		})
	}

	best, replace := s.rule.Choose(local, candidates)
	if !replace {
		s.evHandler("state: ResolveConflicts: local chain kept: length[%d]", len(local))
		s.metrics.Resolved(false, len(local), failures)
		return false, local
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The local chain may have grown while the peers were contacted. The
	// candidate must still be strictly longer to take its place.
	if len(best.Chain) <= len(s.chain) {
		s.evHandler("state: ResolveConflicts: candidate from peer[%s] no longer longer than local chain", best.Source)
		s.metrics.Resolved(false, len(s.chain), failures)
		return false, database.CloneChain(s.chain)
	}

	s.chain = database.CloneChain(best.Chain)

	s.evHandler("state: ResolveConflicts: chain replaced by peer[%s]: length[%d]", best.Source, len(s.chain))
	s.metrics.Resolved(true, len(s.chain), failures)

	return true, database.CloneChain(s.chain)
}

// fetchChains retrieves the chain of every peer concurrently. The results
// are returned in the same order as the peers.
func (s *State) fetchChains(ctx context.Context, peers []peer.Peer) ([][]database.Block, []error) {
	chains := make([][]database.Block, len(peers))
	errs := make([]error, len(peers))

	if s.fetcher == nil {
		for i := range errs {
			errs[i] = ErrNoFetcher
		}
		return chains, errs
	}

	var wg sync.WaitGroup
	wg.Add(len(peers))

	for i, pr := range peers {
		go func(i int, pr peer.Peer) {
			defer wg.Done()
			chains[i], errs[i] = s.fetcher.FetchChain(ctx, pr)
		}(i, pr)
	}

	wg.Wait()

	return chains, errs
}
