package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/memorylane-care/memorylane/internal/card"
	"github.com/memorylane-care/memorylane/internal/db"
	"github.com/memorylane-care/memorylane/internal/eventlog"
	"github.com/memorylane-care/memorylane/internal/match"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Validate, import, and export flashcard decks",
}

var deckValidateCmd = &cobra.Command{
	Use:   "validate <deck.toml>",
	Short: "Check a deck file for malformed or duplicate cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := card.LoadDeck(args[0])
		if err != nil {
			return err
		}
		if d.Patient == "" {
			color.Red("✗ deck has no patient id")
		}
		raw := d.Resolve()
		clean := card.Sanitize(raw)

		seen := map[string]bool{}
		problems := 0
		for i, c := range raw {
			switch {
			case match.Normalize(c.Label) == "":
				color.Red("✗ card %d: label %q is empty after normalization", i+1, c.Label)
				problems++
			case c.MediaURI == "":
				color.Red("✗ card %d (%s): no media", i+1, c.Label)
				problems++
			case seen[c.Key()]:
				color.Yellow("~ card %d (%s): duplicate, will be skipped", i+1, c.Label)
				problems++
			default:
				seen[c.Key()] = true
			}
		}

		if problems == 0 {
			color.Green("✓ %s: %d cards, all valid", d.Name, len(clean))
		} else {
			fmt.Printf("%d of %d cards usable\n", len(clean), len(raw))
		}
		return nil
	},
}

var deckImportCmd = &cobra.Command{
	Use:   "import <deck.toml>",
	Short: "Load a deck file into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := card.LoadDeck(args[0])
		if err != nil {
			return err
		}
		if d.Patient == "" {
			return fmt.Errorf("deck %s has no patient id", args[0])
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(flagDBDriver), flagDBDSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer dbh.Close()

		store := card.NewSQLStore(dbh)
		clean := card.Sanitize(d.Resolve())
		for _, c := range clean {
			if err := store.Put(c); err != nil {
				return fmt.Errorf("import %q: %w", c.Label, err)
			}
		}

		events := eventlog.NewRepo(dbh)
		if err := events.AppendJSON(ctx, eventlog.TypeDeckImported, d.Patient,
			map[string]any{"deck": d.Name, "cards": len(clean)}); err != nil {
			color.Yellow("~ event log append failed: %v", err)
		}

		color.Green("✓ imported %d cards for patient %s", len(clean), d.Patient)
		if dropped := len(d.Cards) - len(clean); dropped > 0 {
			color.Yellow("~ %d cards skipped (malformed or duplicate)", dropped)
		}
		return nil
	},
}

var (
	flagExportOut      string
	flagExportCategory string
)

var deckExportCmd = &cobra.Command{
	Use:   "export <patientID>",
	Short: "Write a patient's cards out as a deck file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patientID := args[0]

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(flagDBDriver), flagDBDSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer dbh.Close()

		cards, err := card.NewSQLStore(dbh).List(patientID, flagExportCategory)
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			return fmt.Errorf("no cards for patient %s", patientID)
		}

		name := "memorylane export"
		d := card.DeckFromCards(name, patientID, flagExportCategory, cards)
		if err := card.WriteDeck(flagExportOut, d); err != nil {
			return err
		}
		color.Green("✓ wrote %d cards to %s", len(cards), flagExportOut)
		return nil
	},
}

func init() {
	deckExportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "deck.toml", "output file")
	deckExportCmd.Flags().StringVarP(&flagExportCategory, "category", "c", "", "restrict to one category")

	deckCmd.AddCommand(deckValidateCmd)
	deckCmd.AddCommand(deckImportCmd)
	deckCmd.AddCommand(deckExportCmd)
}
