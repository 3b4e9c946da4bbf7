package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rustyeddy/fintrack/holdings"
	"github.com/rustyeddy/fintrack/ledger"
	"github.com/rustyeddy/fintrack/macro"
	"github.com/rustyeddy/fintrack/projection"
	"github.com/rustyeddy/fintrack/risk"
)

// Transactions prints the ledger rows and the money invested through buys.
func Transactions(w io.Writer, txs []ledger.Transaction, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTICKER\tTYPE\tQTY\tPRICE\tAMOUNT\tID")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Date, tx.Ticker, tx.Type, tx.Qty.String(),
			Dec(tx.Price, currency), Dec(tx.Amount, currency), tx.ID)
	}
	if len(txs) == 0 {
		fmt.Fprintln(tw, "(no transactions)")
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nInvested: %s\n", Dec(ledger.TotalInvested(txs), currency))
	return err
}

// Holdings prints open positions with their share of the portfolio.
func Holdings(w io.Writer, p holdings.Portfolio, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TICKER\tQTY\tAVG PRICE\tVALUE\tP&L\tP&L %\tWEIGHT")
	for _, h := range p.Holdings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			h.Ticker, h.Qty.String(),
			Dec(h.AvgPrice, currency), Dec(h.CurrentValue, currency),
			Dec(h.PnL, currency), Pct(h.PnLPct), Pct(h.Weight))
	}
	if len(p.Holdings) == 0 {
		fmt.Fprintln(tw, "(no open positions)")
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal value:    %s\nTotal invested: %s\n",
		Dec(p.TotalValue, currency), Dec(p.TotalInvested, currency))
	return err
}

// Projection prints one row per year of the three scenarios and the outcome
// at the horizon.
func Projection(w io.Writer, sc projection.Scenario, currency string) error {
	s := sc.Settings
	fmt.Fprintln(w, rule("DCA Projection"))
	fmt.Fprintf(w, "Monthly:        %s\n", Money(s.Monthly, currency))
	fmt.Fprintf(w, "Horizon:        %d years\n", s.Years)
	fmt.Fprintf(w, "Return:         %s\n", Rate(s.ReturnRate))
	fmt.Fprintf(w, "Inflation:      %s\n", Rate(s.Inflation))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tINVESTED\tNEUTRAL\tREAL\tOPTIMISTIC\tPESSIMISTIC")
	for i := projection.PeriodsPerYear - 1; i < len(sc.Neutral); i += projection.PeriodsPerYear {
		n := sc.Neutral[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			n.Period/projection.PeriodsPerYear,
			Money(n.Invested, currency), Money(n.Nominal, currency), Money(n.Real, currency),
			Money(sc.Optimistic[i].Nominal, currency), Money(sc.Pessimistic[i].Nominal, currency))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	out := sc.Final()
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule(fmt.Sprintf("After %d years", s.Years)))
	fmt.Fprintf(w, "Invested:       %s\n", Money(out.Contributed, currency))
	fmt.Fprintf(w, "Neutral:        %s (real: %s)\n", Money(out.Neutral.Nominal, currency), Money(out.Neutral.Real, currency))
	fmt.Fprintf(w, "Optimistic:     %s\n", Money(out.Optimistic.Nominal, currency))
	_, err := fmt.Fprintf(w, "Pessimistic:    %s\n", Money(out.Pessimistic.Nominal, currency))
	return err
}

// Risk prints base and stressed metrics side by side.
func Risk(w io.Writer, st risk.Stress) error {
	label := fmt.Sprintf("STRESS (-%.0f%%)", st.Fraction*100)

	fmt.Fprintln(w, rule("Risk & Stress Test"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "METRIC\tBASE\t%s\n", label)
	fmt.Fprintf(tw, "Volatility (annual)\t%s\t%s\n", Rate(st.Base.Volatility), Rate(st.Stressed.Volatility))
	fmt.Fprintf(tw, "Max drawdown\t%s\t%s\n", Rate(st.Base.MaxDrawdown), Rate(st.Stressed.MaxDrawdown))
	fmt.Fprintf(tw, "Sharpe\t%.2f\t%.2f\n", finite(st.Base.Sharpe), finite(st.Stressed.Sharpe))
	return tw.Flush()
}

// Macro prints the allocation recommendation and the real-return estimate.
func Macro(w io.Writer, s macro.Settings, nominal float64) error {
	a := macro.Recommend(s)

	fmt.Fprintln(w, rule("Inflation & Macro"))
	fmt.Fprintf(w, "Inflation:      %s\n", Rate(s.Inflation))
	fmt.Fprintf(w, "Threshold:      %s\n", Rate(s.Threshold))
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule("Recommended allocation"))
	fmt.Fprintf(w, "Reason:         %s\n", a.Reason)
	fmt.Fprintf(w, "Stocks:         %s\n", Pct(a.Stocks))
	fmt.Fprintf(w, "Bonds:          %s\n", Pct(a.Bonds))
	fmt.Fprintf(w, "Total:          %s\n", Pct(a.Total()))
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule("Real return"))
	fmt.Fprintf(w, "Nominal:        %s\n", Rate(nominal))
	fmt.Fprintf(w, "Inflation:      %s\n", Rate(s.Inflation))
	fmt.Fprintf(w, "Real:           %s\n", Rate(macro.RealReturn(nominal, s.Inflation)))
	if s.Notes != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, rule("Notes"))
		fmt.Fprintln(w, s.Notes)
	}
	return nil
}

func finite(x float64) float64 {
	if !holdings.Finite(x) {
		return 0
	}
	return x
}
