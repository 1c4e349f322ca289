// Package state is the core API for the ledger and implements all the
// business rules for staging transactions, mining blocks and reconciling
// the chain with the chains of known peers.
package state

import (
	"context"
	"errors"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/consensus"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/metrics"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
)

// Set of error variables for the ledger operations.
var (
	ErrBlock        = errors.New("cannot add block")
	ErrTransaction  = errors.New("cannot add transaction")
	ErrInvalidProof = errors.New("proof doesn't solve the work puzzle for the chain tail")
	ErrNoFetcher    = errors.New("no peer fetcher configured")
)

// RewardSender is the sender used for the transaction rewarding a node for
// mining a block.
const RewardSender = "0"

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// Ledger represents the set of operations every ledger implementation
// provides. Alternate consensus variants live behind this same behavior.
type Ledger interface {
	StageTransaction(tx database.Tx) (uint64, error)
	MineBlock(ts database.Timestamp, proof uint64) ([]database.Block, error)
	LastBlock() (database.Block, bool)
	IsValid() bool
	RegisterPeer(hosts ...string)
	ResolveConflicts(ctx context.Context) (bool, []database.Block)
}

// State implements the Ledger behavior.
var _ Ledger = (*State)(nil)

// Fetcher represents the behavior required to retrieve the chain a peer
// is advertising.
type Fetcher interface {
	FetchChain(ctx context.Context, pr peer.Peer) ([]database.Block, error)
}

// Worker interface represents the behavior required to be implemented by any
// package providing background support for the ledger.
type Worker interface {
	Shutdown()
	SignalResolve()
}

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	NodeID      string
	Host        string
	Reward      uint64
	VerifyProof bool
	Engine      *pow.Engine
	Rule        consensus.Rule
	Fetcher     Fetcher
	Clock       func() database.Timestamp
	Metrics     *metrics.Metrics
	Chain       []database.Block
	KnownPeers  []string
	EvHandler   EventHandler
}

// State manages the chain, the pending transactions and the known peers.
// A single mutex guards all three together.
type State struct {
	nodeID      string
	host        string
	reward      uint64
	verifyProof bool
	engine      *pow.Engine
	rule        consensus.Rule
	fetcher     Fetcher
	clock       func() database.Timestamp
	metrics     *metrics.Metrics
	evHandler   EventHandler

	mu      sync.Mutex
	chain   []database.Block
	pending []database.Tx
	peers   peer.List

	Worker Worker
}

// New constructs a new ledger.
func New(cfg Config) (*State, error) {
	if cfg.Engine == nil {
		return nil, errors.New("a proof of work engine must be provided")
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	rule := cfg.Rule
	if rule == nil {
		rule = consensus.Longest{}
	}

	clock := cfg.Clock
	if clock == nil {
		clock = database.Now
	}

	s := State{
		nodeID:      cfg.NodeID,
		host:        cfg.Host,
		reward:      cfg.Reward,
		verifyProof: cfg.VerifyProof,
		engine:      cfg.Engine,
		rule:        rule,
		fetcher:     cfg.Fetcher,
		clock:       clock,
		metrics:     cfg.Metrics,
		evHandler:   ev,
		chain:       database.CloneChain(cfg.Chain),
	}

	for _, host := range cfg.KnownPeers {
		s.peers.Add(peer.New(host))
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &s, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// Engine returns the proof of work engine used by the ledger.
func (s *State) Engine() *pow.Engine {
	return s.engine
}

// NodeID returns the id of this node, which receives the mining rewards.
func (s *State) NodeID() string {
	return s.nodeID
}

// Host returns the host this node is reachable on by its peers.
func (s *State) Host() string {
	return s.host
}
