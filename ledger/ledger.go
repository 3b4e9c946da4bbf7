// Package ledger holds the transaction list that every other view is derived
// from, along with its CSV import and export.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/store"
)

// ErrNotFound is returned when removing an unknown transaction ID.
var ErrNotFound = errors.New("transaction not found")

// Ledger is the ordered transaction list, most recent date first. Among
// transactions sharing a date the most recently inserted comes first.
type Ledger struct {
	txs []Transaction
}

// New returns a ledger holding txs in canonical order.
func New(txs []Transaction) *Ledger {
	l := &Ledger{txs: append([]Transaction(nil), txs...)}
	l.sort()
	return l
}

// Transactions returns a copy of the ledger in canonical order.
func (l *Ledger) Transactions() []Transaction {
	return append([]Transaction(nil), l.txs...)
}

func (l *Ledger) Len() int { return len(l.txs) }

// Add inserts a validated transaction.
func (l *Ledger) Add(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	return l.Merge([]Transaction{tx})
}

// Merge inserts txs ahead of the existing entries and restores canonical
// order. Nothing is inserted if any transaction is invalid.
func (l *Ledger) Merge(txs []Transaction) error {
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return err
		}
	}
	next := make([]Transaction, 0, len(txs)+len(l.txs))
	next = append(next, txs...)
	next = append(next, l.txs...)
	l.txs = next
	l.sort()
	return nil
}

// Remove deletes the transaction with the given ID.
func (l *Ledger) Remove(txID string) error {
	for i, tx := range l.txs {
		if tx.ID == txID {
			l.txs = append(l.txs[:i:i], l.txs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, txID)
}

// Clear removes every transaction.
func (l *Ledger) Clear() {
	l.txs = nil
}

// sort orders by date descending. The sort is stable so insertion order
// decides between equal dates.
func (l *Ledger) sort() {
	sort.SliceStable(l.txs, func(i, j int) bool {
		return l.txs[i].Date > l.txs[j].Date
	})
}

// Filter narrows the ledger view. Zero fields match everything.
type Filter struct {
	Ticker string // substring, case-insensitive
	From   string // inclusive, YYYY-MM-DD
	To     string // inclusive, YYYY-MM-DD
}

// Match reports whether tx passes the filter.
func (f Filter) Match(tx Transaction) bool {
	if f.Ticker != "" && !strings.Contains(tx.Ticker, strings.ToUpper(f.Ticker)) {
		return false
	}
	if f.From != "" && tx.Date < f.From {
		return false
	}
	if f.To != "" && tx.Date > f.To {
		return false
	}
	return true
}

// Filter returns the transactions matching f, in canonical order.
func (l *Ledger) Filter(f Filter) []Transaction {
	var out []Transaction
	for _, tx := range l.txs {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// TotalInvested sums the positive amounts of txs, i.e. money put in by buys.
func TotalInvested(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Amount.IsPositive() {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// Load reads the ledger from s. A malformed blob yields an empty ledger and
// the *store.ParseError describing it.
func Load(ctx context.Context, s store.Store) (*Ledger, error) {
	txs, err := store.Load[[]Transaction](ctx, s, store.KeyTransactions, nil)
	return New(txs), err
}

// Save overwrites the stored ledger with l.
func Save(ctx context.Context, s store.Store, l *Ledger) error {
	txs := l.txs
	if txs == nil {
		txs = []Transaction{}
	}
	return store.Save(ctx, s, store.KeyTransactions, txs)
}
