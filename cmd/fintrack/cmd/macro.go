package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/fintrack/macro"
	"github.com/rustyeddy/fintrack/report"
	"github.com/rustyeddy/fintrack/store"
)

var macroCmd = &cobra.Command{
	Use:   "macro",
	Short: "Inflation-driven allocation and real return",
	Long: `Recommend a stocks/bonds split from an inflation estimate and show the
real return of the DCA expected return.

Subcommands:
  show - Print the recommendation for the stored settings
  set  - Change the stored settings

Examples:
  fintrack macro set --inflation 0.05
  fintrack macro show`,
}

var macroShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the allocation recommendation",
	Args:  cobra.NoArgs,
	RunE:  runMacroShow,
}

var macroSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the stored macro settings",
	Args:  cobra.NoArgs,
	RunE:  runMacroSet,
}

var macroFlags macro.Settings

func init() {
	rootCmd.AddCommand(macroCmd)
	macroCmd.AddCommand(macroShowCmd)
	macroCmd.AddCommand(macroSetCmd)

	def := macro.DefaultSettings()
	f := macroSetCmd.Flags()
	f.Float64Var(&macroFlags.Inflation, "inflation", def.Inflation, "expected annual inflation")
	f.Float64Var(&macroFlags.Threshold, "threshold", def.Threshold, "inflation above which the high split applies")
	f.Float64Var(&macroFlags.HighInflStocks, "high-stocks", def.HighInflStocks, "stocks % when inflation is high")
	f.Float64Var(&macroFlags.HighInflBonds, "high-bonds", def.HighInflBonds, "bonds % when inflation is high")
	f.Float64Var(&macroFlags.BaseStocks, "base-stocks", def.BaseStocks, "stocks % otherwise")
	f.Float64Var(&macroFlags.BaseBonds, "base-bonds", def.BaseBonds, "bonds % otherwise")
	f.StringVar(&macroFlags.Notes, "notes", "", "free-form notes")
}

func runMacroShow(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	ms, err := store.Load(ctx, s, store.KeyMacro, macro.DefaultSettings())
	if err := tolerate(err); err != nil {
		return err
	}
	ds, err := loadDCA(ctx, s)
	if err != nil {
		return err
	}
	return report.Macro(cmd.OutOrStdout(), ms, macro.Nominal(ds.ReturnRate))
}

func runMacroSet(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	ms, err := store.Load(ctx, s, store.KeyMacro, macro.DefaultSettings())
	if err := tolerate(err); err != nil {
		return err
	}

	f := cmd.Flags()
	set := func(name string, dst *float64, v float64) {
		if f.Changed(name) {
			*dst = v
		}
	}
	set("inflation", &ms.Inflation, macroFlags.Inflation)
	set("threshold", &ms.Threshold, macroFlags.Threshold)
	set("high-stocks", &ms.HighInflStocks, macroFlags.HighInflStocks)
	set("high-bonds", &ms.HighInflBonds, macroFlags.HighInflBonds)
	set("base-stocks", &ms.BaseStocks, macroFlags.BaseStocks)
	set("base-bonds", &ms.BaseBonds, macroFlags.BaseBonds)
	if f.Changed("notes") {
		ms.Notes = macroFlags.Notes
	}

	if err := store.Save(ctx, s, store.KeyMacro, ms); err != nil {
		return fmt.Errorf("save macro settings: %w", err)
	}

	a := macro.Recommend(ms)
	log.Info("macro settings saved", zap.Float64("inflation", ms.Inflation), zap.String("reason", a.Reason))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Allocation: %s stocks / %s bonds (%s)\n",
		report.Pct(a.Stocks), report.Pct(a.Bonds), a.Reason)
	return nil
}
