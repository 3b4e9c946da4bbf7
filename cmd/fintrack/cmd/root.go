package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/fintrack/config"
	"github.com/rustyeddy/fintrack/internal/logger"
	"github.com/rustyeddy/fintrack/store"
)

var rootCmd = &cobra.Command{
	Use:   "fintrack",
	Short: "A personal portfolio tracker and planning calculator",
	Long: `Fintrack keeps a local ledger of buy and sell transactions and derives
everything else from it.

It provides tools for:
  - Recording, filtering and removing transactions
  - Importing and exporting broker CSV files
  - Aggregated holdings with average price, P&L and weights
  - Dollar-cost averaging projections with inflation-adjusted values
  - Risk metrics and a simple stress test
  - Inflation-driven stocks/bonds allocation
  - JSON backup and restore of all stored data`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

var (
	cfgFile string
	dbPath  string

	cfg *config.Config
	log = zap.NewNop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "override the SQLite store path")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg = config.Default()
	if cfgFile != "" {
		c, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	if dbPath != "" {
		cfg.Store.Driver = "sqlite"
		cfg.Store.Path = dbPath
	}

	l, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log = l
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	_ = log.Sync()
	return nil
}

func openStore() (store.Store, error) {
	s, err := store.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", zap.String("driver", cfg.Store.Driver), zap.String("path", cfg.Store.Path))
	return s, nil
}

// tolerate logs malformed stored data and lets the command go on with
// defaults. Any other error is returned.
func tolerate(err error) error {
	var pe *store.ParseError
	if errors.As(err, &pe) {
		log.Warn("ignoring malformed stored data", zap.String("key", pe.Key), zap.Error(pe.Err))
		return nil
	}
	return err
}
