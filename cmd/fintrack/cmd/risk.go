package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fintrack/projection"
	"github.com/rustyeddy/fintrack/report"
	"github.com/rustyeddy/fintrack/risk"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Risk metrics and stress test of the DCA projection",
	Long: `Compute annualized volatility, maximum drawdown and Sharpe ratio of the
neutral DCA projection, then again after cutting the final value by the
shock fraction.

Example:
  fintrack risk --shock 0.3`,
	Args: cobra.NoArgs,
	RunE: runRisk,
}

var riskShock float64

func init() {
	rootCmd.AddCommand(riskCmd)
	riskCmd.Flags().Float64Var(&riskShock, "shock", 0, "override the configured shock fraction")
}

func runRisk(cmd *cobra.Command, args []string) error {
	shock := cfg.Risk.ShockFraction
	if cmd.Flags().Changed("shock") {
		shock = riskShock
	}
	if shock < 0 || shock >= 1 {
		return errors.New("shock must be in [0, 1)")
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ds, err := loadDCA(cmd.Context(), s)
	if err != nil {
		return err
	}

	values := projection.Nominal(projection.Project(ds.Monthly, ds.Periods(), ds.ReturnRate, ds.Inflation))
	return report.Risk(cmd.OutOrStdout(), risk.StressTest(values, shock, cfg.Risk.RiskFreeRate))
}
