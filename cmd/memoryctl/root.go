package main

import (
	"github.com/spf13/cobra"
)

var (
	flagDBDriver string
	flagDBDSN    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "memoryctl",
	Short: "Manage memorylane card decks from the command line",
	Long: `memoryctl validates, imports, and exports flashcard decks for the
memorylane service. Deck files are TOML documents; see 'memoryctl deck
validate --help' for the format.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBDriver, "db-driver", "sqlite", "database driver (sqlite or postgres)")
	rootCmd.PersistentFlags().StringVar(&flagDBDSN, "db-dsn", "", "database DSN (driver default when empty)")

	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(fillersCmd)
}
