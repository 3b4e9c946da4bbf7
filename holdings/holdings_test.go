package holdings

import (
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fintrack/ledger"
)

func tx(t *testing.T, date, ticker string, typ ledger.Type, qty, price string) ledger.Transaction {
	t.Helper()
	out, err := ledger.NewTransaction(date, ticker, typ,
		decimal.RequireFromString(qty), decimal.RequireFromString(price))
	require.NoError(t, err)
	return out
}

func TestAggregateBuyThenSell(t *testing.T) {
	t.Parallel()

	got := Aggregate([]ledger.Transaction{
		tx(t, "2024-01-01", "AAPL", ledger.Buy, "10", "100"),
		tx(t, "2024-01-02", "AAPL", ledger.Sell, "4", "120"),
	})
	require.Len(t, got, 1)

	h := got[0]
	assert.Equal(t, "AAPL", h.Ticker)
	assert.True(t, h.Qty.Equal(decimal.NewFromInt(6)))
	assert.True(t, h.Invested.Equal(decimal.NewFromInt(520)))
	assert.InDelta(t, 86.6667, h.AvgPrice.InexactFloat64(), 1e-4)
	assert.True(t, h.CurrentValue.Equal(decimal.NewFromInt(520)), h.CurrentValue.String())
	assert.True(t, h.PnL.IsZero(), h.PnL.String())
	assert.Equal(t, 0.0, h.PnLPct)
}

func TestAggregateDropsClosedPositions(t *testing.T) {
	t.Parallel()

	got := Aggregate([]ledger.Transaction{
		tx(t, "2024-01-01", "MSFT", ledger.Buy, "5", "300"),
		tx(t, "2024-01-02", "MSFT", ledger.Sell, "5", "320"),
		tx(t, "2024-01-03", "TSLA", ledger.Sell, "2", "200"),
		tx(t, "2024-01-04", "VTI", ledger.Buy, "1", "250"),
	})
	require.Len(t, got, 1)
	assert.Equal(t, "VTI", got[0].Ticker)
}

func TestAggregateZeroInvested(t *testing.T) {
	t.Parallel()

	got := Aggregate([]ledger.Transaction{
		tx(t, "2024-01-01", "ABC", ledger.Buy, "10", "5"),
		tx(t, "2024-01-02", "ABC", ledger.Sell, "5", "10"),
	})
	require.Len(t, got, 1)
	assert.True(t, got[0].Invested.IsZero())
	assert.True(t, math.IsNaN(got[0].PnLPct))
	assert.False(t, Finite(got[0].PnLPct))
}

func TestAggregateFirstAppearanceOrder(t *testing.T) {
	t.Parallel()

	got := Aggregate([]ledger.Transaction{
		tx(t, "2024-03-01", "C", ledger.Buy, "1", "1"),
		tx(t, "2024-02-01", "A", ledger.Buy, "1", "1"),
		tx(t, "2024-01-01", "C", ledger.Buy, "1", "1"),
		tx(t, "2024-01-01", "B", ledger.Buy, "1", "1"),
	})
	var names []string
	for _, h := range got {
		names = append(names, h.Ticker)
	}
	assert.Equal(t, []string{"C", "A", "B"}, names)
}

func TestAggregateOrderIndependent(t *testing.T) {
	t.Parallel()

	txs := []ledger.Transaction{
		tx(t, "2024-01-01", "AAPL", ledger.Buy, "10", "100.1"),
		tx(t, "2024-01-02", "AAPL", ledger.Sell, "3", "120.37"),
		tx(t, "2024-01-03", "MSFT", ledger.Buy, "0.3", "301.01"),
		tx(t, "2024-01-04", "AAPL", ledger.Buy, "1.5", "99.99"),
		tx(t, "2024-01-05", "MSFT", ledger.Buy, "2", "310"),
		tx(t, "2024-01-06", "MSFT", ledger.Sell, "0.1", "330.5"),
	}

	signedSum := map[string]decimal.Decimal{}
	for _, x := range txs {
		signedSum[x.Ticker] = signedSum[x.Ticker].Add(x.Amount)
	}

	base := map[string]Holding{}
	for _, h := range Aggregate(txs) {
		base[h.Ticker] = h
		assert.True(t, h.Invested.Equal(signedSum[h.Ticker]), h.Ticker)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]ledger.Transaction(nil), txs...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		for _, h := range Aggregate(shuffled) {
			want := base[h.Ticker]
			assert.True(t, want.Qty.Equal(h.Qty), h.Ticker)
			assert.True(t, want.Invested.Equal(h.Invested), h.Ticker)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	p := Summarize([]ledger.Transaction{
		tx(t, "2024-01-01", "AAPL", ledger.Buy, "3", "100"),
		tx(t, "2024-01-02", "MSFT", ledger.Buy, "1", "100"),
	})
	require.Len(t, p.Holdings, 2)
	assert.True(t, p.TotalValue.Equal(decimal.NewFromInt(400)))
	assert.True(t, p.TotalInvested.Equal(decimal.NewFromInt(400)))
	assert.InDelta(t, 75.0, p.Holdings[0].Weight, 1e-9)
	assert.InDelta(t, 25.0, p.Holdings[1].Weight, 1e-9)

	empty := Summarize(nil)
	assert.Empty(t, empty.Holdings)
	assert.True(t, empty.TotalValue.IsZero())
}

func TestFinite(t *testing.T) {
	t.Parallel()

	assert.True(t, Finite(12.5))
	assert.False(t, Finite(math.NaN()))
	assert.False(t, Finite(math.Inf(-1)))
}
