package progress

import (
	"context"
	"testing"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		sum  Summary
		want float64
	}{
		{Summary{TotalQuestions: 10, CorrectAnswers: 8, Skipped: 0}, 0.8},
		{Summary{TotalQuestions: 10, CorrectAnswers: 4, Skipped: 2}, 0.5}, // skips don't count against
		{Summary{TotalQuestions: 5, CorrectAnswers: 0, Skipped: 5}, 0},
		{Summary{}, 0},
	}
	for _, tc := range tests {
		if got := tc.sum.Accuracy(); got != tc.want {
			t.Errorf("Accuracy(%+v) = %v, want %v", tc.sum, got, tc.want)
		}
	}
}

func TestMemoryStoreListAndStats(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	seed := []Summary{
		{PatientID: "p1", Category: "family", TotalQuestions: 4, CorrectAnswers: 4, TotalTimeSeconds: 60, Timestamp: 100},
		{PatientID: "p1", Category: "family", TotalQuestions: 4, CorrectAnswers: 2, TotalTimeSeconds: 90, Timestamp: 200},
		{PatientID: "p1", Category: "places", TotalQuestions: 2, CorrectAnswers: 1, Skipped: 1, TotalTimeSeconds: 30, Timestamp: 150},
		{PatientID: "p2", Category: "family", TotalQuestions: 4, CorrectAnswers: 0, TotalTimeSeconds: 45, Timestamp: 300},
	}
	for _, sum := range seed {
		if _, err := s.Save(ctx, sum); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := s.List(ctx, "p1", "family")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d summaries, want 2", len(got))
	}
	if got[0].Timestamp < got[1].Timestamp {
		t.Error("List not sorted newest first")
	}

	all, err := s.List(ctx, "p1", "")
	if err != nil || len(all) != 3 {
		t.Fatalf("List all categories = %d, %v; want 3", len(all), err)
	}

	stats, err := s.Stats(ctx, "p1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Stats returned %d categories, want 2", len(stats))
	}
	fam := stats[0]
	if fam.Category != "family" {
		t.Fatalf("stats order: %+v", stats)
	}
	if fam.GamesPlayed != 2 || fam.TotalSeconds != 150 || fam.LastPlayed != 200 {
		t.Errorf("family stats = %+v", fam)
	}
	if fam.AvgAccuracy != 0.75 { // (1.0 + 0.5) / 2
		t.Errorf("family avg accuracy = %v, want 0.75", fam.AvgAccuracy)
	}
	places := stats[1]
	if places.GamesPlayed != 1 || places.AvgAccuracy != 1.0 {
		t.Errorf("places stats = %+v", places)
	}
}
