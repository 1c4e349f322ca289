package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var keyFile string

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the key file a node derives its id from",
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new key file",
	RunE:  keyGenerateRun,
}

var keyIDCmd = &cobra.Command{
	Use:   "id",
	Short: "Print the node id for the key file",
	RunE:  keyIDRun,
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyGenerateCmd)
	keyCmd.AddCommand(keyIDCmd)
	keyCmd.PersistentFlags().StringVarP(&keyFile, "file", "f", "zblock/node.ecdsa", "Path to the private key.")
}

func keyGenerateRun(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(keyFile); err == nil {
		return fmt.Errorf("key file %q already exists", keyFile)
	}

	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return err
	}

	if err := crypto.SaveECDSA(keyFile, privateKey); err != nil {
		return err
	}

	color.Green("key saved to %s", keyFile)
	color.White("node id: %s", crypto.PubkeyToAddress(privateKey.PublicKey).Hex())

	return nil
}

func keyIDRun(cmd *cobra.Command, args []string) error {
	privateKey, err := crypto.LoadECDSA(keyFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("key file %q not found, run key generate first", keyFile)
		}
		return err
	}

	fmt.Println(crypto.PubkeyToAddress(privateKey.PublicKey).Hex())

	return nil
}
