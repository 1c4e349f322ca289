package cmd

import (
	"context"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Ask the node to mine the next block",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
}

func mineRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var blk database.Block
	if err := call(ctx, http.MethodPost, endpoint(publicURL, "/v1/blocks"), nil, &blk); err != nil {
		return err
	}

	color.Green("new block forged: blk[%d] proof[%d] trans[%d]", blk.Index, blk.Proof, len(blk.Transactions))
	color.New(color.Faint).Printf("hash[%s] prev[%s]\n", blk.Hash(), blk.PreviousHash)

	return nil
}
