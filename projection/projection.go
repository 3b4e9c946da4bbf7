// Package projection forecasts dollar-cost averaging: a fixed monthly
// contribution compounded at a constant rate, with an inflation-adjusted view.
package projection

import "math"

// PeriodsPerYear is the compounding granularity.
const PeriodsPerYear = 12

// ScenarioSpread is added to and subtracted from the expected annual return
// to build the optimistic and pessimistic scenarios.
const ScenarioSpread = 0.02

// Point is one period of a projection.
type Point struct {
	Period   int     `json:"period"`   // 1-based
	Invested float64 `json:"invested"` // contributions so far, no growth
	Nominal  float64 `json:"nominal"`
	Real     float64 `json:"real"` // Nominal in period-0 money
}

// PeriodRate converts an annual rate to the equivalent monthly rate,
// geometrically: (1+annual)^(1/12) - 1.
func PeriodRate(annual float64) float64 {
	return math.Pow(1+annual, 1.0/PeriodsPerYear) - 1
}

// Project returns exactly periods points (none if periods <= 0). Each
// period the contribution is added and then grown by one period:
//
//	value = (value + monthly) * (1 + rate)
func Project(monthly float64, periods int, annualRate, annualInflation float64) []Point {
	if periods <= 0 {
		return []Point{}
	}

	rate := PeriodRate(annualRate)
	infl := PeriodRate(annualInflation)

	out := make([]Point, 0, periods)
	var invested, value float64
	for k := 1; k <= periods; k++ {
		invested += monthly
		value = (value + monthly) * (1 + rate)
		out = append(out, Point{
			Period:   k,
			Invested: invested,
			Nominal:  value,
			Real:     value / math.Pow(1+infl, float64(k)),
		})
	}
	return out
}

// Nominal extracts the nominal value series, e.g. for risk metrics.
func Nominal(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Nominal
	}
	return out
}

// Settings are the user's DCA parameters.
type Settings struct {
	Monthly    float64 `json:"monthly"`
	Years      int     `json:"years"`
	ReturnRate float64 `json:"returnRate"` // annual, 0.06 = 6%
	Inflation  float64 `json:"inflation"`  // annual
}

// DefaultSettings is used when no settings are stored.
func DefaultSettings() Settings {
	return Settings{
		Monthly:    100,
		Years:      20,
		ReturnRate: 0.06,
		Inflation:  0.02,
	}
}

// Periods is the number of monthly contributions.
func (s Settings) Periods() int { return s.Years * PeriodsPerYear }

// Contributed is the total money put in over the horizon.
func (s Settings) Contributed() float64 { return s.Monthly * float64(s.Periods()) }

// Scenario holds independent projections at three return rates.
type Scenario struct {
	Settings    Settings
	Neutral     []Point
	Optimistic  []Point
	Pessimistic []Point
}

// Scenarios projects s at its return rate and at ±ScenarioSpread.
func Scenarios(s Settings) Scenario {
	n := s.Periods()
	return Scenario{
		Settings:    s,
		Neutral:     Project(s.Monthly, n, s.ReturnRate, s.Inflation),
		Optimistic:  Project(s.Monthly, n, s.ReturnRate+ScenarioSpread, s.Inflation),
		Pessimistic: Project(s.Monthly, n, s.ReturnRate-ScenarioSpread, s.Inflation),
	}
}

// Outcome is the end state of a scenario.
type Outcome struct {
	Contributed float64
	Neutral     Point
	Optimistic  Point
	Pessimistic Point
}

// Final returns the last point of each series. Points are zero when the
// horizon is empty.
func (sc Scenario) Final() Outcome {
	return Outcome{
		Contributed: sc.Settings.Contributed(),
		Neutral:     last(sc.Neutral),
		Optimistic:  last(sc.Optimistic),
		Pessimistic: last(sc.Pessimistic),
	}
}

func last(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	return points[len(points)-1]
}
