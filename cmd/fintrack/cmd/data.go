package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fintrack/store"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Reset stored data",
	Long: `Destructive maintenance of the store.

Subcommands:
  reset        - Delete the ledger, settings and cached prices
  clear-prices - Delete only the cached price data`,
}

var dataResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the ledger, settings and cached prices",
	Args:  cobra.NoArgs,
	RunE:  runDataReset,
}

var dataClearPricesCmd = &cobra.Command{
	Use:   "clear-prices",
	Short: "Delete the cached price data",
	Args:  cobra.NoArgs,
	RunE:  runDataClearPrices,
}

var dataResetForce bool

func init() {
	rootCmd.AddCommand(dataCmd)
	dataCmd.AddCommand(dataResetCmd)
	dataCmd.AddCommand(dataClearPricesCmd)

	dataResetCmd.Flags().BoolVarP(&dataResetForce, "force", "f", false, "confirm the reset")
}

func runDataReset(cmd *cobra.Command, args []string) error {
	if !dataResetForce {
		return errors.New("reset deletes all stored data; rerun with --force")
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := store.Reset(cmd.Context(), s); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	log.Warn("store reset")
	fmt.Fprintln(cmd.OutOrStdout(), "✓ All data deleted")
	return nil
}

func runDataClearPrices(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := store.ClearPrices(cmd.Context(), s); err != nil {
		return fmt.Errorf("clear prices: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Cached prices deleted")
	return nil
}
