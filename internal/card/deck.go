package card

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Deck is the TOML document format for moving card sets in and out of
// the service. A minimal file looks like:
//
//	name = "Family faces"
//	patient = "p-123"
//	category = "family"
//
//	[[cards]]
//	label = "Anna"
//	media = "assets/p-123/anna.jpg"
//	kind = "photo"
type Deck struct {
	Name     string     `toml:"name"`
	Patient  string     `toml:"patient"`
	Category string     `toml:"category"`
	Cards    []DeckCard `toml:"cards"`
}

type DeckCard struct {
	Label    string `toml:"label"`
	Media    string `toml:"media"`
	Kind     string `toml:"kind,omitempty"`
	Category string `toml:"category,omitempty"` // overrides the deck-level category
}

// LoadDeck reads and parses a deck file. It does not sanitize; callers
// decide whether to report or silently drop bad cards.
func LoadDeck(path string) (*Deck, error) {
	var d Deck
	if _, err := toml.DecodeFile(path, &d); err != nil {
		return nil, fmt.Errorf("parse deck %s: %w", path, err)
	}
	return &d, nil
}

// Resolve turns deck entries into Cards for the deck's patient,
// applying the deck-level category where an entry has none.
func (d *Deck) Resolve() []Card {
	out := make([]Card, 0, len(d.Cards))
	for _, dc := range d.Cards {
		cat := dc.Category
		if cat == "" {
			cat = d.Category
		}
		out = append(out, Card{
			PatientID: d.Patient,
			Label:     dc.Label,
			MediaURI:  dc.Media,
			Category:  cat,
			Kind:      dc.Kind,
		})
	}
	return out
}

// WriteDeck serializes cards back into a deck file, the inverse of
// LoadDeck + Resolve.
func WriteDeck(path string, d *Deck) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(d)
}

// DeckFromCards builds a Deck document from stored cards.
func DeckFromCards(name, patientID, category string, cards []Card) *Deck {
	d := &Deck{Name: name, Patient: patientID, Category: category}
	for _, c := range cards {
		dc := DeckCard{Label: c.Label, Media: c.MediaURI, Kind: c.Kind}
		if c.Category != category {
			dc.Category = c.Category
		}
		d.Cards = append(d.Cards, dc)
	}
	return d
}
