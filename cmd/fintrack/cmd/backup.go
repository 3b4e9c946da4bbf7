package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/fintrack/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore all stored data as JSON",
	Long: `Bundle the ledger, the DCA and macro settings and the cached price data
into one JSON document, or restore such a document.

Subcommands:
  export - Write the backup document
  import - Restore a backup document

Examples:
  fintrack backup export -o portfolio_backup.json
  fintrack backup import portfolio_backup.json`,
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the backup document",
	Args:  cobra.NoArgs,
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file.json|->",
	Short: "Restore a backup document",
	Long: `Restore a backup document. The whole file must be a valid JSON object
or nothing is written. Keys present in the file replace the stored values;
keys absent from the file are left alone.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupImport,
}

var backupOutput string

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)

	backupExportCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "output file (default stdout)")
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := store.Export(cmd.Context(), s)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if backupOutput == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(backupOutput, data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Backup written: %s\n", backupOutput)
	return nil
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	keys, err := store.Import(cmd.Context(), s, data)
	if err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}

	log.Info("backup restored", zap.Strings("keys", keys))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Restored %d keys: %s\n", len(keys), strings.Join(keys, ", "))
	return nil
}
