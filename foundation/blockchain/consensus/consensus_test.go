package consensus_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/consensus"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func chainOf(n int) []database.Block {
	chain := make([]database.Block, n)
	for i := range chain {
		chain[i] = database.NewBlock(uint64(i+1), 0, nil, 0, nil)
	}
	return chain
}

// =============================================================================

func Test_Longest(t *testing.T) {
	type table struct {
		name       string
		local      int
		candidates []int
		replaced   bool
		source     string
		length     int
	}

	tt := []table{
		{name: "no-candidates", local: 2, candidates: nil, replaced: false, source: consensus.LocalSource, length: 2},
		{name: "longer", local: 2, candidates: []int{5}, replaced: true, source: "peer0", length: 5},
		{name: "shorter", local: 3, candidates: []int{2}, replaced: false, source: consensus.LocalSource, length: 3},
		{name: "tie-local", local: 3, candidates: []int{3}, replaced: false, source: consensus.LocalSource, length: 3},
		{name: "tie-first-peer", local: 1, candidates: []int{4, 4}, replaced: true, source: "peer0", length: 4},
		{name: "longest-of-many", local: 1, candidates: []int{2, 6, 4}, replaced: true, source: "peer1", length: 6},
	}

	rule, err := consensus.Retrieve(consensus.RuleLongest)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to retrieve the longest rule: %v", failed, err)
	}

	t.Log("Given the need to choose the longest chain.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen handling %q.", testID, tst.name)
				{
					var candidates []consensus.Candidate
					for i, n := range tst.candidates {
						candidates = append(candidates, consensus.Candidate{
							Source: "peer" + string(rune('0'+i)),
							Chain:  chainOf(n),
						})
					}

					best, replaced := rule.Choose(chainOf(tst.local), candidates)
					if replaced != tst.replaced {
						t.Logf("\t\tTest %d:\tgot: %v", testID, replaced)
						t.Logf("\t\tTest %d:\texp: %v", testID, tst.replaced)
						t.Fatalf("\t%s\tTest %d:\tShould get back the right replaced flag.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the right replaced flag.", success, testID)

					if best.Source != tst.source || len(best.Chain) != tst.length {
						t.Logf("\t\tTest %d:\tgot: %s/%d", testID, best.Source, len(best.Chain))
						t.Logf("\t\tTest %d:\texp: %s/%d", testID, tst.source, tst.length)
						t.Fatalf("\t%s\tTest %d:\tShould get back the right chain.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the right chain.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_Retrieve(t *testing.T) {
	if _, err := consensus.Retrieve("heaviest"); err == nil {
		t.Fatalf("\t%s\tShould not be able to retrieve an unknown rule.", failed)
	}
	t.Logf("\t%s\tShould not be able to retrieve an unknown rule.", success)
}
