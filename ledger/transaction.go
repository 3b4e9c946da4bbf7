package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/internal/id"
)

// Type is the side of a transaction.
type Type string

const (
	Buy  Type = "BUY"
	Sell Type = "SELL"
)

// ParseType maps free text to a Type. Empty text is a BUY.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToUpper(strings.TrimSpace(s))) {
	case "", Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalid, s)
	}
}

// ErrInvalid is wrapped by every transaction validation failure.
var ErrInvalid = errors.New("invalid transaction")

// Transaction is one ledger entry. Amount is Qty*Price for a BUY and the
// negated product for a SELL. Transactions are never modified after creation.
type Transaction struct {
	ID     string          `json:"id"`
	Date   string          `json:"date"`
	Ticker string          `json:"ticker"`
	Type   Type            `json:"type"`
	Qty    decimal.Decimal `json:"qty"`
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
}

// NewTransaction validates its inputs and returns a transaction with a fresh
// ID, an upper-cased ticker and the signed amount computed from qty and price.
func NewTransaction(date, ticker string, typ Type, qty, price decimal.Decimal) (Transaction, error) {
	tx := Transaction{
		ID:     newID(date),
		Date:   strings.TrimSpace(date),
		Ticker: strings.ToUpper(strings.TrimSpace(ticker)),
		Type:   typ,
		Qty:    qty,
		Price:  price,
	}
	tx.Amount = signed(typ, qty.Mul(price))
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// newID mints a ULID stamped with the trade date, so IDs sort roughly with
// the ledger. Dates that do not parse are stamped with the current time.
func newID(date string) string {
	d, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return id.New()
	}
	return id.At(d)
}

// Validate enforces the ledger invariants.
func (t Transaction) Validate() error {
	if t.Ticker == "" {
		return fmt.Errorf("%w: ticker is required", ErrInvalid)
	}
	if t.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalid)
	}
	if t.Type != Buy && t.Type != Sell {
		return fmt.Errorf("%w: unknown type %q", ErrInvalid, t.Type)
	}
	if !t.Qty.IsPositive() {
		return fmt.Errorf("%w: qty must be positive", ErrInvalid)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", ErrInvalid)
	}
	return nil
}

// signed forces the sign convention: positive for BUY, negative for SELL.
func signed(typ Type, amount decimal.Decimal) decimal.Decimal {
	if typ == Sell {
		return amount.Abs().Neg()
	}
	return amount
}

// UnmarshalJSON accepts numeric IDs as written by older exports, which used
// millisecond timestamps rather than ULIDs.
func (t *Transaction) UnmarshalJSON(b []byte) error {
	type plain Transaction
	aux := struct {
		*plain
		ID any `json:"id"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	switch v := aux.ID.(type) {
	case nil:
		t.ID = ""
	case string:
		t.ID = v
	case float64:
		t.ID = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Errorf("transaction id: unexpected %T", v)
	}
	return nil
}
