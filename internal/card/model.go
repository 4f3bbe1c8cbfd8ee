package card

import (
	"strings"

	"github.com/memorylane-care/memorylane/internal/match"
)

// Kind says what media a card carries.
const (
	KindPhoto  = "photo"
	KindAudio  = "audio"
	KindVideo  = "video"
	KindManual = "manual"
)

// Card is one flashcard in a patient's pool: a label (usually a name),
// a media reference, and a category like "family" or "places".
type Card struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	Label     string `json:"label"`
	MediaURI  string `json:"media_uri"`
	Category  string `json:"category"`
	Kind      string `json:"kind"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

// Key is the composite dedupe key: two cards with the same category,
// the same normalized label, and the same media are the same card.
func (c Card) Key() string {
	return strings.ToLower(strings.TrimSpace(c.Category)) + "|" + match.Normalize(c.Label) + "|" + c.MediaURI
}

// Valid reports whether the card can enter a pool: a displayable
// label that survives normalization, and a media reference.
func (c Card) Valid() bool {
	if strings.TrimSpace(c.MediaURI) == "" {
		return false
	}
	return match.Normalize(c.Label) != ""
}

func validKind(k string) bool {
	switch k {
	case KindPhoto, KindAudio, KindVideo, KindManual:
		return true
	}
	return false
}
