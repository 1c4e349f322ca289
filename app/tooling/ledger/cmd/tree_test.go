package cmd

import (
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/fatih/color"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_RenderChain(t *testing.T) {
	color.NoColor = true

	genesis := database.NewBlock(1, 10, []database.Tx{database.NewTx(state.RewardSender, "node", 1)}, 7, database.ZeroHash())
	next := database.NewBlock(2, 20, []database.Tx{database.NewTx("alice", "bob", 5)}, 9, genesis.Hash())

	t.Log("Given the need to render a chain as a tree.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen rendering a chain of two blocks.", testID)
		{
			out := renderChain([]database.Block{genesis, next})
			t.Logf("\n%s", out)

			exp := []string{
				"chain length[2]",
				"blk[1] proof[7] hash[" + genesis.Hash().String() + "]",
				"blk[2] proof[9] hash[" + next.Hash().String() + "]",
				"reward 0->node:1",
				"alice->bob:5",
			}
			for _, e := range exp {
				if !strings.Contains(out, e) {
					t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, e)
					t.Fatalf("\t%s\tTest %d:\tShould render every block and transaction.", failed, testID)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould render every block and transaction.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen rendering an empty chain.", testID)
		{
			out := renderChain(nil)
			if !strings.HasPrefix(out, "chain length[0]") {
				t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, out)
				t.Fatalf("\t%s\tTest %d:\tShould render only the root.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould render only the root.", success, testID)
		}
	}
}

func Test_Endpoint(t *testing.T) {
	tt := []struct {
		base string
		exp  string
	}{
		{base: "http://localhost:8080", exp: "http://localhost:8080/v1/blocks"},
		{base: "http://localhost:8080/", exp: "http://localhost:8080/v1/blocks"},
	}

	for _, tst := range tt {
		if got := endpoint(tst.base, "/v1/blocks"); got != tst.exp {
			t.Logf("\t%s\tgot: %s", failed, got)
			t.Logf("\t%s\texp: %s", failed, tst.exp)
			t.Fatalf("\t%s\tShould join the url of the node and the path.", failed)
		}
	}
	t.Logf("\t%s\tShould join the url of the node and the path.", success)
}
