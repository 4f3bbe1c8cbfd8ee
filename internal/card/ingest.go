package card

import (
	"strings"

	"github.com/google/uuid"

	"github.com/memorylane-care/memorylane/internal/match"
)

// Sanitize is the ingestion boundary: every card entering a pool or a
// store passes through here first. Malformed cards (blank label or
// media) are dropped silently, fields are trimmed, missing IDs and
// kinds are filled in, and duplicates are suppressed by composite key.
// Order of the survivors is preserved.
func Sanitize(raw []Card) []Card {
	seen := make(map[string]struct{}, len(raw))
	out := make([]Card, 0, len(raw))
	for _, c := range raw {
		c.Label = strings.TrimSpace(c.Label)
		c.MediaURI = strings.TrimSpace(c.MediaURI)
		c.Category = strings.TrimSpace(c.Category)
		if !c.Valid() {
			continue
		}
		if !validKind(c.Kind) {
			c.Kind = KindManual
		}
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		k := c.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Labels returns the card labels in pool order.
func Labels(cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Label)
	}
	return out
}

// DistinctLabels counts labels that remain distinct after
// normalization. Determines how many questions a pool can support.
func DistinctLabels(cards []Card) int {
	seen := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		seen[match.Normalize(c.Label)] = struct{}{}
	}
	return len(seen)
}
