package cmd

import (
	"context"
	"errors"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	sender    string
	recipient string
	amount    uint64
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Stage a transaction for the next block",
	RunE:  sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sender, "from", "f", "", "Party the amount is taken from.")
	sendCmd.Flags().StringVarP(&recipient, "to", "r", "", "Party receiving the amount.")
	sendCmd.Flags().Uint64VarP(&amount, "amount", "a", 0, "Amount to send.")
}

func sendRun(cmd *cobra.Command, args []string) error {
	if sender == "" || recipient == "" {
		return errors.New("both --from and --to must be provided")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	tx := struct {
		Sender    string `json:"sender"`
		Recipient string `json:"recipient"`
		Amount    uint64 `json:"amount"`
	}{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}

	var resp struct {
		Message string `json:"message"`
		Index   uint64 `json:"index"`
	}
	if err := call(ctx, http.MethodPost, endpoint(publicURL, "/v1/transactions"), tx, &resp); err != nil {
		return err
	}

	color.Green("%s", resp.Message)

	return nil
}
