// Package metrics maintains the counters and timers describing the work
// performed by the ledger.
package metrics

import (
	"encoding/json"
	"net/http"
	"time"

	mtr "github.com/rcrowley/go-metrics"
)

// Metrics holds the set of ledger measurements. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry mtr.Registry

	TxStaged      mtr.Counter
	BlocksMined   mtr.Counter
	ProofSearch   mtr.Timer
	Resolutions   mtr.Counter
	Replacements  mtr.Counter
	PeerFailures  mtr.Counter
	ChainLength   mtr.Gauge
	PendingLength mtr.Gauge
}

// New constructs a set of metrics in its own registry.
func New() *Metrics {
	registry := mtr.NewPrefixedRegistry("ledger.")

	m := Metrics{
		registry:      registry,
		TxStaged:      mtr.GetOrRegisterCounter("tx.staged", registry),
		BlocksMined:   mtr.GetOrRegisterCounter("blocks.mined", registry),
		ProofSearch:   mtr.GetOrRegisterTimer("proof.search", registry),
		Resolutions:   mtr.GetOrRegisterCounter("consensus.resolutions", registry),
		Replacements:  mtr.GetOrRegisterCounter("consensus.replacements", registry),
		PeerFailures:  mtr.GetOrRegisterCounter("consensus.peer_failures", registry),
		ChainLength:   mtr.GetOrRegisterGauge("chain.length", registry),
		PendingLength: mtr.GetOrRegisterGauge("pending.length", registry),
	}

	return &m
}

// StagedTx records a transaction being added to the pending pool.
func (m *Metrics) StagedTx(pending int) {
	if m == nil {
		return
	}
	m.TxStaged.Inc(1)
	m.PendingLength.Update(int64(pending))
}

// MinedBlock records a new block being appended to the chain.
func (m *Metrics) MinedBlock(length int) {
	if m == nil {
		return
	}
	m.BlocksMined.Inc(1)
	m.ChainLength.Update(int64(length))
	m.PendingLength.Update(0)
}

// SearchedProof records the duration of a proof search.
func (m *Metrics) SearchedProof(d time.Duration) {
	if m == nil {
		return
	}
	m.ProofSearch.Update(d)
}

// Resolved records the outcome of a consensus resolution.
func (m *Metrics) Resolved(replaced bool, length int, failures int) {
	if m == nil {
		return
	}
	m.Resolutions.Inc(1)
	m.PeerFailures.Inc(int64(failures))
	if replaced {
		m.Replacements.Inc(1)
		m.ChainLength.Update(int64(length))
	}
}

// Snapshot returns the current value of every metric keyed by name.
func (m *Metrics) Snapshot() map[string]map[string]any {
	if m == nil {
		return nil
	}
	return m.registry.GetAll()
}

// Handler returns an http handler that responds with the snapshot as JSON.
func (m *Metrics) Handler() http.Handler {
	h := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(m.Snapshot())
	}

	return http.HandlerFunc(h)
}
