package cmd

import (
	"context"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var peersCmd = &cobra.Command{
	Use:   "peers host [host...]",
	Short: "Register peers with the node",
	Args:  cobra.MinimumNArgs(1),
	RunE:  peersRun,
}

func init() {
	rootCmd.AddCommand(peersCmd)
}

func peersRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	req := struct {
		Nodes []string `json:"nodes"`
	}{
		Nodes: args,
	}

	var resp struct {
		Message    string   `json:"message"`
		TotalNodes []string `json:"total_nodes"`
	}
	if err := call(ctx, http.MethodPost, endpoint(publicURL, "/v1/nodes/register"), req, &resp); err != nil {
		return err
	}

	color.Green("%s: total[%d]", resp.Message, len(resp.TotalNodes))
	for _, host := range resp.TotalNodes {
		color.White("  %s", host)
	}

	return nil
}
