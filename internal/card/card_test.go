package card

import "testing"

func TestSanitizeDropsMalformed(t *testing.T) {
	raw := []Card{
		{Label: "Anna", MediaURI: "a.jpg", Category: "family"},
		{Label: "", MediaURI: "b.jpg", Category: "family"},
		{Label: "   ", MediaURI: "c.jpg", Category: "family"},
		{Label: "!!!", MediaURI: "d.jpg", Category: "family"}, // empty after normalization
		{Label: "Maria", MediaURI: "", Category: "family"},
	}
	got := Sanitize(raw)
	if len(got) != 1 || got[0].Label != "Anna" {
		t.Fatalf("Sanitize kept %v, want only Anna", got)
	}
	if got[0].ID == "" {
		t.Error("Sanitize did not assign an id")
	}
	if got[0].Kind != KindManual {
		t.Errorf("Sanitize kind = %q, want %q default", got[0].Kind, KindManual)
	}
}

func TestSanitizeDedupes(t *testing.T) {
	raw := []Card{
		{Label: "Anna", MediaURI: "a.jpg", Category: "family"},
		{Label: "anna!", MediaURI: "a.jpg", Category: "family"},  // same token, same media
		{Label: "Anna", MediaURI: "other.jpg", Category: "family"}, // different media survives
		{Label: "Anna", MediaURI: "a.jpg", Category: "places"},     // different category survives
	}
	got := Sanitize(raw)
	if len(got) != 3 {
		t.Fatalf("Sanitize kept %d cards, want 3: %v", len(got), got)
	}
}

func TestDistinctLabels(t *testing.T) {
	cards := []Card{
		{Label: "Anna"},
		{Label: "anna "},
		{Label: "José"},
		{Label: "Jose"},
		{Label: "Maria"},
	}
	if got := DistinctLabels(cards); got != 3 {
		t.Errorf("DistinctLabels = %d, want 3", got)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewInMemoryStore()
	c := Card{ID: "c1", PatientID: "p1", Label: "Anna", MediaURI: "a.jpg", Category: "family", Kind: KindPhoto}
	if err := s.Put(c); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get("c1")
	if err != nil || got.Label != "Anna" {
		t.Fatalf("Get = %v, %v", got, err)
	}

	// duplicate by composite key under a different id is suppressed
	if err := s.Put(Card{ID: "c2", PatientID: "p1", Label: "anna", MediaURI: "a.jpg", Category: "family"}); err != nil {
		t.Fatalf("Put dup: %v", err)
	}
	list, err := s.List("p1", "family")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("List after dup put = %d cards, want 1", len(list))
	}

	if err := s.Delete("c1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get("c1"); err != ErrNotFound {
		t.Errorf("Get after delete err = %v, want ErrNotFound", err)
	}
}

func TestDeckResolve(t *testing.T) {
	d := &Deck{
		Name:     "Family faces",
		Patient:  "p1",
		Category: "family",
		Cards: []DeckCard{
			{Label: "Anna", Media: "a.jpg", Kind: "photo"},
			{Label: "Paris", Media: "paris.jpg", Category: "places"},
		},
	}
	cards := d.Resolve()
	if len(cards) != 2 {
		t.Fatalf("Resolve len = %d, want 2", len(cards))
	}
	if cards[0].Category != "family" {
		t.Errorf("card 0 category = %q, want deck default", cards[0].Category)
	}
	if cards[1].Category != "places" {
		t.Errorf("card 1 category = %q, want override", cards[1].Category)
	}
	if cards[0].PatientID != "p1" {
		t.Errorf("card 0 patient = %q, want p1", cards[0].PatientID)
	}
}
