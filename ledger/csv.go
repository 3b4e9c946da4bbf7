package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoRows is returned by ParseCSV when the input holds no usable row.
var ErrNoRows = errors.New("csv: no usable rows")

// Header is the column order written by WriteCSV.
var Header = []string{"date", "ticker", "type", "qty", "price", "amount"}

const dateLayout = "2006-01-02"

// Column synonyms, in priority order.
var (
	colDate   = []string{"date"}
	colTicker = []string{"ticker", "symbol"}
	colType   = []string{"type", "transaction"}
	colQty    = []string{"qty", "quantity"}
	colPrice  = []string{"price", "amount per share"}
	colAmount = []string{"amount", "total"}
)

// Importer parses broker or spreadsheet exports into transactions.
type Importer struct {
	// Now supplies the date for files without a date column.
	Now func() time.Time
}

// ParseCSV reads r with the default importer.
func ParseCSV(r io.Reader) ([]Transaction, error) {
	return Importer{}.Parse(r)
}

// Parse reads a CSV whose first non-blank line is a header. Columns are
// matched by name, case-insensitively, so files from different sources can be
// imported without mapping. Rows with an empty ticker, a zero or unparsable
// qty or price, or an unknown type are skipped. If no row survives, Parse
// returns ErrNoRows.
func (im Importer) Parse(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	rows = dropBlank(rows)
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	iDate := index(header, colDate)
	iTicker := index(header, colTicker)
	iType := index(header, colType)
	iQty := index(header, colQty)
	iPrice := index(header, colPrice)
	iAmount := index(header, colAmount)

	today := im.now().Format(dateLayout)

	var out []Transaction
	for _, row := range rows[1:] {
		date := strings.TrimSpace(field(row, iDate))
		if date == "" {
			date = today
		}
		ticker := "XXX"
		if iTicker != -1 {
			ticker = strings.ToUpper(strings.TrimSpace(field(row, iTicker)))
		}
		typ, err := ParseType(field(row, iType))
		if err != nil {
			continue
		}
		qty := number(field(row, iQty))
		price := number(field(row, iPrice))
		if ticker == "" || !qty.IsPositive() || !price.IsPositive() {
			continue
		}

		amount := qty.Mul(price)
		if iAmount != -1 {
			if a, err := decimal.NewFromString(strings.TrimSpace(field(row, iAmount))); err == nil {
				amount = a
			}
		}

		tx := Transaction{
			ID:     newID(date),
			Date:   date,
			Ticker: ticker,
			Type:   typ,
			Qty:    qty,
			Price:  price,
			Amount: signed(typ, amount),
		}
		if tx.Validate() != nil {
			continue
		}
		out = append(out, tx)
	}

	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}

func (im Importer) now() time.Time {
	if im.Now != nil {
		return im.Now()
	}
	return time.Now()
}

// WriteCSV writes txs under Header. Fields are quoted only when they contain
// a comma, quote or line break, so ordinary ledgers produce a plain
// comma-joined file.
func WriteCSV(w io.Writer, txs []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, tx := range txs {
		typ := tx.Type
		if typ == "" {
			typ = Buy
		}
		err := cw.Write([]string{
			tx.Date,
			tx.Ticker,
			string(typ),
			tx.Qty.String(),
			tx.Price.String(),
			tx.Amount.String(),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func index(header []string, names []string) int {
	for _, n := range names {
		for i, h := range header {
			if h == n {
				return i
			}
		}
	}
	return -1
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// number parses s, treating anything unparsable as zero.
func number(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func dropBlank(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}
