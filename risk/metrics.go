package risk

import "math"

// periodsPerYear annualizes monthly statistics.
const periodsPerYear = 12

// Returns computes the simple period returns v[i]/v[i-1] - 1. A series of
// fewer than two values has no returns. A zero value followed by anything
// yields an infinite or NaN return; callers own that input.
func Returns(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}
	out := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		out = append(out, values[i]/values[i-1]-1)
	}
	return out
}

// Volatility is the population standard deviation of returns, annualized by
// √12. It is zero when there are no returns.
func Volatility(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	n := float64(len(returns))

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / n

	var ss float64
	for _, r := range returns {
		ss += (r - mean) * (r - mean)
	}
	return math.Sqrt(ss/n) * math.Sqrt(periodsPerYear)
}

// MaxDrawdown is the deepest fall from a running peak, v[i]/peak - 1. It is
// never positive; zero means the series never declined.
func MaxDrawdown(values []float64) float64 {
	peak := math.Inf(-1)
	mdd := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
		if dd := v/peak - 1; dd < mdd {
			mdd = dd
		}
	}
	return mdd
}

// AnnualizedReturn compounds the returns and scales them to a year:
// prod(1+r)^(12/n) - 1. It is zero when there are no returns.
func AnnualizedReturn(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	total := 1.0
	for _, r := range returns {
		total *= 1 + r
	}
	return math.Pow(total, periodsPerYear/float64(len(returns))) - 1
}

// Sharpe is (AnnualizedReturn - riskFree) / Volatility. It is 0 when the
// volatility is 0, which is a sentinel rather than a meaningful ratio.
func Sharpe(returns []float64, riskFree float64) float64 {
	vol := Volatility(returns)
	if vol == 0 {
		return 0
	}
	return (AnnualizedReturn(returns) - riskFree) / vol
}

// Metrics summarises a value series.
type Metrics struct {
	Volatility  float64
	MaxDrawdown float64
	Sharpe      float64
}

// Evaluate computes all metrics for values.
func Evaluate(values []float64, riskFree float64) Metrics {
	rets := Returns(values)
	return Metrics{
		Volatility:  Volatility(rets),
		MaxDrawdown: MaxDrawdown(values),
		Sharpe:      Sharpe(rets, riskFree),
	}
}
