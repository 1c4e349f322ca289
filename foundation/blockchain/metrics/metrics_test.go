package metrics_test

import (
	"testing"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/metrics"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Record(t *testing.T) {
	m := metrics.New()

	m.StagedTx(1)
	m.StagedTx(2)
	m.SearchedProof(10 * time.Millisecond)
	m.MinedBlock(1)
	m.Resolved(true, 5, 1)
	m.Resolved(false, 5, 2)

	checks := []struct {
		name string
		got  int64
		exp  int64
	}{
		{"tx.staged", m.TxStaged.Count(), 2},
		{"blocks.mined", m.BlocksMined.Count(), 1},
		{"proof.search", m.ProofSearch.Count(), 1},
		{"consensus.resolutions", m.Resolutions.Count(), 2},
		{"consensus.replacements", m.Replacements.Count(), 1},
		{"consensus.peer_failures", m.PeerFailures.Count(), 3},
		{"chain.length", m.ChainLength.Value(), 5},
		{"pending.length", m.PendingLength.Value(), 0},
	}

	for _, c := range checks {
		if c.got != c.exp {
			t.Logf("got: %d", c.got)
			t.Logf("exp: %d", c.exp)
			t.Fatalf("\t%s\tShould record %s.", failed, c.name)
		}
		t.Logf("\t%s\tShould record %s.", success, c.name)
	}

	if _, exists := m.Snapshot()["ledger.blocks.mined"]; !exists {
		t.Fatalf("\t%s\tShould expose the prefixed metric names.", failed)
	}
	t.Logf("\t%s\tShould expose the prefixed metric names.", success)
}

func Test_Nil(t *testing.T) {
	var m *metrics.Metrics

	m.StagedTx(1)
	m.MinedBlock(1)
	m.SearchedProof(time.Second)
	m.Resolved(true, 1, 1)

	if m.Snapshot() != nil {
		t.Fatalf("\t%s\tShould get back no snapshot.", failed)
	}
	t.Logf("\t%s\tShould be able to record on a nil value.", success)
}
