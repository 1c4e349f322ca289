package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Reconcile the node chain with its peers",
	RunE:  resolveRun,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func resolveRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var resp struct {
		Message  string           `json:"message"`
		Replaced bool             `json:"replaced"`
		Chain    []database.Block `json:"chain"`
	}
	if err := call(ctx, http.MethodGet, endpoint(publicURL, "/v1/nodes/resolve"), nil, &resp); err != nil {
		return err
	}

	switch resp.Replaced {
	case true:
		color.Yellow("%s", resp.Message)
	default:
		color.Green("%s", resp.Message)
	}

	fmt.Print(renderChain(resp.Chain))

	return nil
}
