package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type fetcher []database.Block

func (f fetcher) FetchChain(ctx context.Context, pr peer.Peer) ([]database.Block, error) {
	return f, nil
}

func newState(t *testing.T, f state.Fetcher) *state.State {
	engine, err := pow.New(pow.Config{Difficulty: 1})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct an engine: %v", failed, err)
	}

	s, err := state.New(state.Config{NodeID: "node", Reward: 1, Engine: engine, Fetcher: f})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}
	return s
}

// =============================================================================

func Test_SignalResolve(t *testing.T) {
	remote := newState(t, nil)
	for i := 0; i < 3; i++ {
		if _, err := remote.Mine(context.Background()); err != nil {
			t.Fatalf("\t%s\tShould be able to mine: %v", failed, err)
		}
	}

	s := newState(t, fetcher(remote.Chain()))
	s.RegisterPeer("remote")

	w := worker.Run(s, 0, func(v string, args ...any) { t.Logf(v, args...) })

	w.SignalResolve()

	deadline := time.Now().Add(5 * time.Second)
	for len(s.Chain()) != 3 {
		if time.Now().After(deadline) {
			t.Fatalf("\t%s\tShould adopt the remote chain in the background.", failed)
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Logf("\t%s\tShould adopt the remote chain in the background.", success)

	done := make(chan struct{})
	go func() {
		s.Shutdown()
		close(done)
	}()

	select {
	case <-done:
		t.Logf("\t%s\tShould be able to shutdown the worker.", success)
	case <-time.After(5 * time.Second):
		t.Fatalf("\t%s\tShould be able to shutdown the worker.", failed)
	}
}

func Test_Interval(t *testing.T) {
	remote := newState(t, nil)
	if _, err := remote.Mine(context.Background()); err != nil {
		t.Fatalf("\t%s\tShould be able to mine: %v", failed, err)
	}

	s := newState(t, fetcher(remote.Chain()))
	s.RegisterPeer("remote")

	worker.Run(s, 20*time.Millisecond, nil)
	defer s.Shutdown()

	deadline := time.Now().Add(5 * time.Second)
	for len(s.Chain()) != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("\t%s\tShould resolve on every tick.", failed)
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Logf("\t%s\tShould resolve on every tick.", success)
}
