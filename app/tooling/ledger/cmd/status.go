package cmd

import (
	"context"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the status the node reports to its peers",
	RunE:  statusRun,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var status peer.Status
	if err := call(ctx, http.MethodGet, endpoint(privateURL, "/v1/node/status"), nil, &status); err != nil {
		return err
	}

	color.Green("latest block: blk[%d] hash[%s]", status.LatestBlockIndex, status.LatestBlockHash)
	color.White("pending transactions: %d", status.Pending)
	color.White("known peers: %d", len(status.KnownPeers))
	for _, pr := range status.KnownPeers {
		color.White("  %s", pr)
	}

	return nil
}
