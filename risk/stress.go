package risk

// Shock returns a copy of values with only the final value cut by fraction
// (0.2 = -20%). It models an instant market drop at the end of the path; the
// rest of the history is left as is. values is not modified.
func Shock(values []float64, fraction float64) []float64 {
	out := append([]float64(nil), values...)
	if n := len(out); n > 0 {
		out[n-1] *= 1 - fraction
	}
	return out
}

// Stress compares a series with its shocked variant.
type Stress struct {
	Fraction float64
	Base     Metrics
	Stressed Metrics
	Shocked  []float64
}

// StressTest evaluates values before and after Shock.
func StressTest(values []float64, fraction, riskFree float64) Stress {
	shocked := Shock(values, fraction)
	return Stress{
		Fraction: fraction,
		Base:     Evaluate(values, riskFree),
		Stressed: Evaluate(shocked, riskFree),
		Shocked:  shocked,
	}
}
