package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/fintrack/ledger"
	"github.com/rustyeddy/fintrack/report"
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Manage ledger transactions",
	Long: `Record, list and remove buy and sell transactions.

Subcommands:
  add     - Record a transaction
  list    - List transactions, optionally filtered
  remove  - Remove a transaction by ID
  clear   - Remove every transaction
  import  - Merge transactions from a CSV file
  export  - Write transactions as CSV

Examples:
  fintrack tx add --ticker AAPL --qty 10 --price 100
  fintrack tx list --ticker aap --from 2024-01-01
  fintrack tx import broker.csv`,
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	Args:  cobra.NoArgs,
	RunE:  runTxAdd,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	Args:  cobra.NoArgs,
	RunE:  runTxList,
}

var txRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a transaction by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxRemove,
}

var txClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every transaction",
	Args:  cobra.NoArgs,
	RunE:  runTxClear,
}

var txImportCmd = &cobra.Command{
	Use:   "import <file.csv|->",
	Short: "Merge transactions from a CSV file",
	Long: `Read a CSV file with a header row and merge its rows into the ledger.

Columns are matched by name: date, ticker|symbol, type|transaction,
qty|quantity, price|amount per share, amount|total. Rows with an empty
ticker, a non-positive qty or price, or an unknown type are skipped.
Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runTxImport,
}

var txExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write transactions as CSV",
	Args:  cobra.NoArgs,
	RunE:  runTxExport,
}

var (
	txDate   string
	txTicker string
	txType   string
	txQty    string
	txPrice  string

	txFilter ledger.Filter

	txExportOutput string
)

func init() {
	rootCmd.AddCommand(txCmd)
	txCmd.AddCommand(txAddCmd)
	txCmd.AddCommand(txListCmd)
	txCmd.AddCommand(txRemoveCmd)
	txCmd.AddCommand(txClearCmd)
	txCmd.AddCommand(txImportCmd)
	txCmd.AddCommand(txExportCmd)

	txAddCmd.Flags().StringVar(&txDate, "date", "", "trade date YYYY-MM-DD (default today)")
	txAddCmd.Flags().StringVarP(&txTicker, "ticker", "t", "", "ticker symbol (required)")
	txAddCmd.Flags().StringVar(&txType, "type", "BUY", "BUY or SELL")
	txAddCmd.Flags().StringVarP(&txQty, "qty", "q", "", "quantity (required)")
	txAddCmd.Flags().StringVarP(&txPrice, "price", "p", "", "price per unit (required)")
	txAddCmd.MarkFlagRequired("ticker")
	txAddCmd.MarkFlagRequired("qty")
	txAddCmd.MarkFlagRequired("price")

	txListCmd.Flags().StringVarP(&txFilter.Ticker, "ticker", "t", "", "ticker substring")
	txListCmd.Flags().StringVar(&txFilter.From, "from", "", "first date, inclusive")
	txListCmd.Flags().StringVar(&txFilter.To, "to", "", "last date, inclusive")

	txExportCmd.Flags().StringVarP(&txExportOutput, "output", "o", "", "output file (default stdout)")
}

func runTxAdd(cmd *cobra.Command, args []string) error {
	typ, err := ledger.ParseType(txType)
	if err != nil {
		return err
	}
	qty, err := decimal.NewFromString(txQty)
	if err != nil {
		return fmt.Errorf("qty: %w", err)
	}
	price, err := decimal.NewFromString(txPrice)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	date := txDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	tx, err := ledger.NewTransaction(date, txTicker, typ, qty, price)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	l, err := ledger.Load(ctx, s)
	if err := tolerate(err); err != nil {
		return err
	}
	if err := l.Add(tx); err != nil {
		return err
	}
	if err := ledger.Save(ctx, s, l); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	log.Info("transaction added", zap.String("id", tx.ID), zap.String("ticker", tx.Ticker))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %s %s %s @ %s (%s)\n",
		tx.Type, tx.Qty, tx.Ticker, tx.Price, tx.ID)
	return nil
}

func runTxList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := ledger.Load(cmd.Context(), s)
	if err := tolerate(err); err != nil {
		return err
	}
	return report.Transactions(cmd.OutOrStdout(), l.Filter(txFilter), cfg.Display.Currency)
}

func runTxRemove(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	l, err := ledger.Load(ctx, s)
	if err := tolerate(err); err != nil {
		return err
	}
	if err := l.Remove(args[0]); err != nil {
		return err
	}
	if err := ledger.Save(ctx, s, l); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %s\n", args[0])
	return nil
}

func runTxClear(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	l, err := ledger.Load(ctx, s)
	if err := tolerate(err); err != nil {
		return err
	}
	n := l.Len()
	l.Clear()
	if err := ledger.Save(ctx, s, l); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %d transactions\n", n)
	return nil
}

func runTxImport(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()
		r = f
	}

	txs, err := ledger.ParseCSV(r)
	if err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	l, err := ledger.Load(ctx, s)
	if err := tolerate(err); err != nil {
		return err
	}
	if err := l.Merge(txs); err != nil {
		return err
	}
	if err := ledger.Save(ctx, s, l); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	log.Info("csv imported", zap.String("file", args[0]), zap.Int("rows", len(txs)))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d transactions\n", len(txs))
	return nil
}

func runTxExport(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := ledger.Load(cmd.Context(), s)
	if err := tolerate(err); err != nil {
		return err
	}

	if txExportOutput == "" {
		return ledger.WriteCSV(cmd.OutOrStdout(), l.Transactions())
	}

	f, err := os.Create(txExportOutput)
	if err != nil {
		return fmt.Errorf("create %s: %w", txExportOutput, err)
	}
	if err := ledger.WriteCSV(f, l.Transactions()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d transactions to %s\n", l.Len(), txExportOutput)
	return nil
}
