// Package cmd contains the ledger admin app.
package cmd

import (
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	publicURL  string
	privateURL string
	timeout    time.Duration
	noColor    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&publicURL, "url", "u", "http://localhost:8080", "Url of the node public api.")
	rootCmd.PersistentFlags().StringVarP(&privateURL, "private-url", "p", "http://localhost:9080", "Url of the node private api.")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", time.Minute, "Time allowed for a call to the node.")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output.")
}

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Administer a proof of work ledger node",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
	SilenceUsage: true,
}

// Execute runs the command specified on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}
