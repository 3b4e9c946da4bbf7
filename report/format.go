// Package report renders fintrack views as plain text.
package report

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats x in the given ISO currency. Non-finite values print as zero
// so a NaN P&L never reaches the screen.
func Money(x float64, currency string) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
	}
	return Dec(decimal.NewFromFloat(x), currency)
}

// Dec formats a decimal amount in the given currency, rounded to the
// currency's minor unit. Unknown currencies print as "1.23 XYZ".
func Dec(d decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return d.StringFixed(2) + " " + currency
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), currency).Display()
}

// Pct formats a percentage that is already scaled to 0-100.
func Pct(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
	}
	return fmt.Sprintf("%.2f%%", x)
}

// Rate formats a fraction (0.06) as a percentage (6.00%).
func Rate(x float64) string {
	return Pct(x * 100)
}

func rule(title string) string {
	return fmt.Sprintf("%s\n%s", title, "--------------------------------------------------")
}
