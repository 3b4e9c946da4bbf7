package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/fintrack/holdings"
	"github.com/rustyeddy/fintrack/ledger"
	"github.com/rustyeddy/fintrack/report"
)

var holdingsCmd = &cobra.Command{
	Use:   "holdings",
	Short: "Show open positions aggregated from the ledger",
	Long: `Aggregate the ledger per ticker and show quantity, average price,
current value, P&L and portfolio weight. Positions with no remaining
quantity are left out.`,
	Args: cobra.NoArgs,
	RunE: runHoldings,
}

func init() {
	rootCmd.AddCommand(holdingsCmd)
}

func runHoldings(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := ledger.Load(cmd.Context(), s)
	if err := tolerate(err); err != nil {
		return err
	}
	return report.Holdings(cmd.OutOrStdout(), holdings.Summarize(l.Transactions()), cfg.Display.Currency)
}
