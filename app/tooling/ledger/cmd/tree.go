package cmd

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/disiqueira/gotree/v3"
	"github.com/fatih/color"
)

// renderChain draws the chain as a tree with one branch per block and one
// leaf per transaction. The last block is highlighted and rewards are faint.
func renderChain(chain []database.Block) string {
	tree := gotree.New(fmt.Sprintf("chain length[%d]", len(chain)))

	faint := color.New(color.Faint)

	for i, blk := range chain {
		name := fmt.Sprintf("blk[%d] proof[%d] hash[%s]", blk.Index, blk.Proof, blk.Hash())
		if i == len(chain)-1 {
			name = color.HiGreenString(name)
		}

		node := tree.Add(name)
		node.Add(fmt.Sprintf("time[%s] prev[%s]", blk.Timestamp, blk.PreviousHash))

		for _, tx := range blk.Transactions {
			switch tx.Sender {
			case state.RewardSender:
				node.Add(faint.Sprintf("reward %s", tx))
			default:
				node.Add(tx.String())
			}
		}
	}

	return tree.Print()
}
