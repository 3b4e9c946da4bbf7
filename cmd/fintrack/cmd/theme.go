package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fintrack/store"
)

// Themes recognised by front ends reading the store.
const (
	themeLight = "light"
	themeDark  = "dark"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the stored display theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{themeLight, themeDark},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if len(args) == 0 {
		theme, err := store.Load(ctx, s, store.KeyTheme, themeLight)
		if err := tolerate(err); err != nil {
			return err
		}
		if theme != themeDark {
			theme = themeLight
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme)
		return nil
	}

	if err := store.Save(ctx, s, store.KeyTheme, args[0]); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Theme set to %s\n", args[0])
	return nil
}
