// Package macro turns an inflation estimate into an allocation target and a
// real-return estimate.
package macro

// Default split between stocks and bonds when no base weights are set.
const (
	DefaultStocks = 70.0
	DefaultBonds  = 30.0
)

// DefaultNominalReturn is assumed when no DCA settings are stored.
const DefaultNominalReturn = 0.06

// Settings are the user's macro parameters. Rates are fractions, weights are
// percentages.
type Settings struct {
	Inflation      float64 `json:"inflation"`
	Threshold      float64 `json:"threshold"`
	HighInflStocks float64 `json:"highInflStocks"`
	HighInflBonds  float64 `json:"highInflBonds"`
	BaseStocks     float64 `json:"baseStocks"`
	BaseBonds      float64 `json:"baseBonds"`
	Notes          string  `json:"notes"`
}

// DefaultSettings is used when no settings are stored.
func DefaultSettings() Settings {
	return Settings{
		Inflation:      0.02,
		Threshold:      0.04,
		HighInflStocks: 60,
		HighInflBonds:  40,
		BaseStocks:     DefaultStocks,
		BaseBonds:      DefaultBonds,
	}
}

// Allocation is a recommended stocks/bonds split.
type Allocation struct {
	Stocks float64
	Bonds  float64
	Reason string
}

const (
	ReasonAbove = "inflation above threshold"
	ReasonBelow = "inflation at or below threshold"
)

// Total is Stocks + Bonds. Nothing forces it to 100.
func (a Allocation) Total() float64 { return a.Stocks + a.Bonds }

// Recommend picks the high-inflation split when inflation is strictly above
// the threshold, the base split otherwise. Zero base weights fall back to
// the 70/30 defaults; zero high-inflation weights are used as given.
func Recommend(s Settings) Allocation {
	if s.Inflation > s.Threshold {
		return Allocation{Stocks: s.HighInflStocks, Bonds: s.HighInflBonds, Reason: ReasonAbove}
	}
	a := Allocation{Stocks: s.BaseStocks, Bonds: s.BaseBonds, Reason: ReasonBelow}
	if a.Stocks == 0 {
		a.Stocks = DefaultStocks
	}
	if a.Bonds == 0 {
		a.Bonds = DefaultBonds
	}
	return a
}

// RealReturn deflates a nominal rate: (1+nominal)/(1+inflation) - 1.
func RealReturn(nominal, inflation float64) float64 {
	return (1+nominal)/(1+inflation) - 1
}

// Nominal returns rate, or DefaultNominalReturn when rate is unset.
func Nominal(rate float64) float64 {
	if rate == 0 {
		return DefaultNominalReturn
	}
	return rate
}
