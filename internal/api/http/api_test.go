package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/memorylane-care/memorylane/internal/api/http"
	"github.com/memorylane-care/memorylane/internal/card"
	"github.com/memorylane-care/memorylane/internal/game"
	"github.com/memorylane-care/memorylane/internal/progress"
)

func testRouter(t *testing.T) (*chi.Mux, card.Store, progress.Store) {
	t.Helper()
	cards := card.NewInMemoryStore()
	sums := progress.NewInMemoryStore()
	deps := api.SessionDeps{
		Cards:       cards,
		Sessions:    game.NewRegistry(),
		Progress:    sums,
		QuestionCap: 10,
	}

	r := chi.NewRouter()
	r.Post("/cards", api.CreateCardHandler(cards))
	r.Get("/cards", api.ListCardsHandler(cards))
	r.Delete("/cards/{cardID}", api.DeleteCardHandler(cards))
	r.Post("/sessions", api.StartSessionHandler(deps))
	r.Get("/sessions/{sessionID}", api.GetSessionHandler(deps))
	r.Post("/sessions/{sessionID}/answer", api.AnswerHandler(deps))
	r.Post("/sessions/{sessionID}/skip", api.SkipHandler(deps))
	r.Post("/sessions/{sessionID}/next", api.NextRoundHandler(deps))
	r.Get("/progress", api.ListSummariesHandler(sums))
	r.Get("/progress/stats", api.StatsHandler(sums))
	return r, cards, sums
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func TestCardEndpoints(t *testing.T) {
	r, _, _ := testRouter(t)

	w := doJSON(t, r, "POST", "/cards", card.Card{
		PatientID: "p1", Label: "Anna", MediaURI: "assets/p1/anna.jpg", Category: "family", Kind: "photo",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create card status = %d: %s", w.Code, w.Body.String())
	}
	var created card.Card
	decode(t, w, &created)
	if created.ID == "" {
		t.Fatal("created card has no id")
	}

	// malformed card rejected
	w = doJSON(t, r, "POST", "/cards", card.Card{PatientID: "p1", Label: "", MediaURI: "x.jpg"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed card status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, "GET", "/cards?patient=p1&category=family", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var listed []card.Card
	decode(t, w, &listed)
	if len(listed) != 1 {
		t.Fatalf("listed %d cards, want 1", len(listed))
	}

	w = doJSON(t, r, "DELETE", "/cards/"+created.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", w.Code)
	}
	w = doJSON(t, r, "DELETE", "/cards/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("double delete status = %d, want 404", w.Code)
	}
}

func TestSessionPlayThrough(t *testing.T) {
	r, cards, _ := testRouter(t)
	if err := cards.Put(card.Card{
		ID: "c1", PatientID: "p1", Label: "Anna", MediaURI: "assets/p1/anna.jpg", Category: "family", Kind: "photo",
	}); err != nil {
		t.Fatalf("seed card: %v", err)
	}

	w := doJSON(t, r, "POST", "/sessions", map[string]string{"patient_id": "p1", "category": "family"})
	if w.Code != http.StatusOK {
		t.Fatalf("start status = %d: %s", w.Code, w.Body.String())
	}
	var started struct {
		SessionID string `json:"session_id"`
		Round     struct {
			Number   int      `json:"number"`
			Total    int      `json:"total"`
			MediaURI string   `json:"media_uri"`
			Options  []string `json:"options"`
		} `json:"round"`
	}
	decode(t, w, &started)
	if started.SessionID == "" || started.Round.Number != 1 || started.Round.Total != 1 {
		t.Fatalf("unexpected start payload: %+v", started)
	}
	if started.Round.MediaURI != "assets/p1/anna.jpg" {
		t.Errorf("round media = %q", started.Round.MediaURI)
	}
	found := false
	for _, o := range started.Round.Options {
		if o == "Anna" {
			found = true
		}
	}
	if !found {
		t.Fatalf("options %v missing correct label", started.Round.Options)
	}

	w = doJSON(t, r, "POST", "/sessions/"+started.SessionID+"/answer", map[string]string{"answer": "Ana"})
	if w.Code != http.StatusOK {
		t.Fatalf("answer status = %d: %s", w.Code, w.Body.String())
	}
	var answered struct {
		Correct      bool   `json:"correct"`
		CorrectLabel string `json:"correct_label"`
	}
	decode(t, w, &answered)
	if !answered.Correct {
		t.Error("near-miss answer graded incorrect")
	}
	if answered.CorrectLabel != "Anna" {
		t.Errorf("correct_label = %q", answered.CorrectLabel)
	}

	w = doJSON(t, r, "POST", "/sessions/"+started.SessionID+"/next", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("next status = %d: %s", w.Code, w.Body.String())
	}
	var finished struct {
		Summary *progress.Summary `json:"summary"`
	}
	decode(t, w, &finished)
	if finished.Summary == nil {
		t.Fatal("expected summary after last question")
	}
	if finished.Summary.CorrectAnswers != 1 || finished.Summary.TotalQuestions != 1 {
		t.Errorf("summary = %+v", finished.Summary)
	}

	// the session is gone once summarized
	w = doJSON(t, r, "GET", "/sessions/"+started.SessionID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after completion status = %d, want 404", w.Code)
	}

	// and the summary is queryable
	w = doJSON(t, r, "GET", "/progress?patient=p1", nil)
	var sums []progress.Summary
	decode(t, w, &sums)
	if len(sums) != 1 {
		t.Fatalf("progress list has %d entries, want 1", len(sums))
	}

	w = doJSON(t, r, "GET", "/progress/stats?patient=p1", nil)
	var stats []progress.CategoryStats
	decode(t, w, &stats)
	if len(stats) != 1 || stats[0].Category != "family" || stats[0].GamesPlayed != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestSkipLastQuestionReturnsSummary(t *testing.T) {
	r, cards, _ := testRouter(t)
	if err := cards.Put(card.Card{
		ID: "c1", PatientID: "p1", Label: "Anna", MediaURI: "a.jpg", Category: "family",
	}); err != nil {
		t.Fatalf("seed card: %v", err)
	}

	w := doJSON(t, r, "POST", "/sessions", map[string]string{"patient_id": "p1", "category": "family"})
	var started struct {
		SessionID string `json:"session_id"`
	}
	decode(t, w, &started)

	w = doJSON(t, r, "POST", "/sessions/"+started.SessionID+"/skip", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("skip status = %d: %s", w.Code, w.Body.String())
	}
	var skipped struct {
		CorrectLabel string            `json:"correct_label"`
		Summary      *progress.Summary `json:"summary"`
	}
	decode(t, w, &skipped)
	if skipped.CorrectLabel != "Anna" {
		t.Errorf("correct_label = %q", skipped.CorrectLabel)
	}
	if skipped.Summary == nil || skipped.Summary.Skipped != 1 {
		t.Errorf("summary = %+v, want one skip", skipped.Summary)
	}
}

func TestStartSessionEmptyCategory(t *testing.T) {
	r, _, _ := testRouter(t)
	w := doJSON(t, r, "POST", "/sessions", map[string]string{"patient_id": "p1", "category": "nothing-here"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("start with empty pool status = %d, want 400", w.Code)
	}
}
