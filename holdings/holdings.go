// Package holdings derives per-ticker positions from the ledger.
package holdings

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/ledger"
)

// Holding is the net position in one ticker. It is recomputed from the
// ledger on every read and never stored.
//
// There is no live price source, so CurrentValue is valued at AvgPrice. It
// equals Invested exactly and PnL is exactly zero. AvgPrice itself carries
// decimal's default division precision of 16 places.
type Holding struct {
	Ticker       string
	Qty          decimal.Decimal
	Invested     decimal.Decimal // net cost basis: buys minus sell proceeds
	AvgPrice     decimal.Decimal
	CurrentValue decimal.Decimal
	PnL          decimal.Decimal

	// PnLPct is NaN when Invested is zero. Check with Finite before display.
	PnLPct float64
	// Weight is the share of the portfolio value in percent. Set by Summarize.
	Weight float64
}

// Aggregate folds txs into one Holding per ticker with a positive net
// quantity, in order of each ticker's first appearance. Each ticker's Qty and
// Invested are plain sums, so the result does not depend on the order of txs.
func Aggregate(txs []ledger.Transaction) []Holding {
	type acc struct {
		qty      decimal.Decimal
		invested decimal.Decimal
	}

	var order []string
	byTicker := map[string]*acc{}
	for _, tx := range txs {
		a, ok := byTicker[tx.Ticker]
		if !ok {
			a = &acc{}
			byTicker[tx.Ticker] = a
			order = append(order, tx.Ticker)
		}
		switch tx.Type {
		case ledger.Buy:
			a.qty = a.qty.Add(tx.Qty)
		case ledger.Sell:
			a.qty = a.qty.Sub(tx.Qty)
		default:
			continue
		}
		a.invested = a.invested.Add(tx.Amount)
	}

	out := make([]Holding, 0, len(order))
	for _, ticker := range order {
		a := byTicker[ticker]
		if !a.qty.IsPositive() {
			continue
		}
		out = append(out, newHolding(ticker, a.qty, a.invested))
	}
	return out
}

func newHolding(ticker string, qty, invested decimal.Decimal) Holding {
	avg := invested.Div(qty)
	// Valued at AvgPrice, Qty*AvgPrice is Invested by definition. Using
	// Invested directly avoids the rounding left by the division.
	value := invested
	pnl := value.Sub(invested)

	pct := math.NaN()
	if !invested.IsZero() {
		pct = pnl.Div(invested).InexactFloat64() * 100
	}

	return Holding{
		Ticker:       ticker,
		Qty:          qty,
		Invested:     invested,
		AvgPrice:     avg,
		CurrentValue: value,
		PnL:          pnl,
		PnLPct:       pct,
	}
}

// Portfolio is the holdings view with totals.
type Portfolio struct {
	Holdings      []Holding
	TotalValue    decimal.Decimal
	TotalInvested decimal.Decimal
}

// Summarize aggregates txs and fills in each holding's Weight.
func Summarize(txs []ledger.Transaction) Portfolio {
	p := Portfolio{Holdings: Aggregate(txs)}
	for _, h := range p.Holdings {
		p.TotalValue = p.TotalValue.Add(h.CurrentValue)
		p.TotalInvested = p.TotalInvested.Add(h.Invested)
	}
	for i := range p.Holdings {
		p.Holdings[i].Weight = math.NaN()
		if !p.TotalValue.IsZero() {
			p.Holdings[i].Weight = p.Holdings[i].CurrentValue.Div(p.TotalValue).InexactFloat64() * 100
		}
	}
	return p
}

// Finite reports whether x can be displayed as a number.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
