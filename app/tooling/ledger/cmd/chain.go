package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	chainJSON bool
	chainLast bool
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the chain held by the node",
	RunE:  chainRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
	chainCmd.Flags().BoolVarP(&chainJSON, "json", "j", false, "Print the chain as JSON.")
	chainCmd.Flags().BoolVarP(&chainLast, "last", "l", false, "Print only the last block.")
}

func chainRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var chain []database.Block
	switch chainLast {
	case true:
		var blk *database.Block
		if err := call(ctx, http.MethodGet, endpoint(publicURL, "/v1/blocks/last"), nil, &blk); err != nil {
			return err
		}
		if blk == nil {
			color.Yellow("chain is empty")
			return nil
		}
		chain = append(chain, *blk)

	default:
		if err := call(ctx, http.MethodGet, endpoint(publicURL, "/v1/blocks"), nil, &chain); err != nil {
			return err
		}
	}

	if chainJSON {
		data, err := json.MarshalIndent(chain, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(renderChain(chain))

	var valid struct {
		Valid bool `json:"valid"`
	}
	if err := call(ctx, http.MethodGet, endpoint(publicURL, "/v1/blocks/valid"), nil, &valid); err != nil {
		return err
	}

	switch valid.Valid {
	case true:
		color.Green("chain is valid")
	default:
		color.Red("chain is NOT valid")
	}

	return nil
}
