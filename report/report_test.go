package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fintrack/holdings"
	"github.com/rustyeddy/fintrack/ledger"
	"github.com/rustyeddy/fintrack/macro"
	"github.com/rustyeddy/fintrack/projection"
	"github.com/rustyeddy/fintrack/risk"
)

func trades(t *testing.T) []ledger.Transaction {
	t.Helper()
	buy, err := ledger.NewTransaction("2024-01-01", "AAPL", ledger.Buy, decimal.NewFromInt(10), decimal.NewFromInt(100))
	require.NoError(t, err)
	sell, err := ledger.NewTransaction("2024-01-02", "AAPL", ledger.Sell, decimal.NewFromInt(4), decimal.NewFromInt(120))
	require.NoError(t, err)
	return []ledger.Transaction{sell, buy}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"money", Money(1234, "USD"), "$1,234.00"},
		{"money nan", Money(math.NaN(), "USD"), "$0.00"},
		{"money unknown currency", Money(5, "ZZZ"), "5.00 ZZZ"},
		{"decimal", Dec(decimal.NewFromInt(520), "USD"), "$520.00"},
		{"pct", Pct(12.5), "12.50%"},
		{"pct inf", Pct(math.Inf(1)), "0.00%"},
		{"rate", Rate(0.06), "6.00%"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestTransactions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Transactions(&buf, trades(t), "USD"))
	out := buf.String()

	assert.Contains(t, out, "2024-01-02")
	assert.Contains(t, out, "SELL")
	assert.Contains(t, out, "Invested: $1,000.00")

	buf.Reset()
	require.NoError(t, Transactions(&buf, nil, "USD"))
	assert.Contains(t, buf.String(), "(no transactions)")
	assert.Contains(t, buf.String(), "Invested: $0.00")
}

func TestHoldings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Holdings(&buf, holdings.Summarize(trades(t)), "USD"))
	out := buf.String()

	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "100.00%")
	assert.Contains(t, out, "Total value:    $520.00")

	buf.Reset()
	require.NoError(t, Holdings(&buf, holdings.Summarize(nil), "USD"))
	assert.Contains(t, buf.String(), "(no open positions)")
}

func TestProjection(t *testing.T) {
	t.Parallel()

	s := projection.Settings{Monthly: 100, Years: 2, ReturnRate: 0.06, Inflation: 0.02}
	var buf bytes.Buffer
	require.NoError(t, Projection(&buf, projection.Scenarios(s), "USD"))
	out := buf.String()

	assert.Contains(t, out, "After 2 years")
	assert.Contains(t, out, "Invested:       $2,400.00")

	var rows int
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "1 ") || strings.HasPrefix(line, "2 ") {
			rows++
		}
	}
	assert.Equal(t, 2, rows, "one row per year")
}

func TestRisk(t *testing.T) {
	t.Parallel()

	values := projection.Nominal(projection.Project(100, 24, 0.06, 0.02))
	var buf bytes.Buffer
	require.NoError(t, Risk(&buf, risk.StressTest(values, 0.2, 0)))
	out := buf.String()

	assert.Contains(t, out, "STRESS (-20%)")
	assert.Contains(t, out, "Max drawdown")
	assert.Contains(t, out, "Sharpe")
}

func TestMacro(t *testing.T) {
	t.Parallel()

	s := macro.DefaultSettings()
	s.Inflation = 0.05
	s.Notes = "rates rising"

	var buf bytes.Buffer
	require.NoError(t, Macro(&buf, s, 0.06))
	out := buf.String()

	assert.Contains(t, out, macro.ReasonAbove)
	assert.Contains(t, out, "Stocks:         60.00%")
	assert.Contains(t, out, "Total:          100.00%")
	assert.Contains(t, out, "rates rising")

	buf.Reset()
	require.NoError(t, Macro(&buf, macro.DefaultSettings(), 0.06))
	assert.NotContains(t, buf.String(), "Notes")
}
