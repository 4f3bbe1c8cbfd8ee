package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/memorylane-care/memorylane/internal/card"
	"github.com/memorylane-care/memorylane/internal/eventlog"
	"github.com/memorylane-care/memorylane/internal/game"
	"github.com/memorylane-care/memorylane/internal/progress"
)

// SessionDeps bundles what the game endpoints need.
type SessionDeps struct {
	Cards       card.Store
	Sessions    *game.Registry
	Progress    progress.Store
	Events      *eventlog.Repo // optional
	QuestionCap int
}

// roundView is what the player sees: the media to recognize and the
// options. The correct label stays server-side until the round is
// answered or skipped.
type roundView struct {
	Number   int      `json:"number"`
	Total    int      `json:"total"`
	MediaURI string   `json:"media_uri"`
	Kind     string   `json:"kind"`
	Options  []string `json:"options"`
}

func viewRound(r game.Round, total int) roundView {
	return roundView{
		Number:   r.Number,
		Total:    total,
		MediaURI: r.Card.MediaURI,
		Kind:     r.Card.Kind,
		Options:  r.Options,
	}
}

func StartSessionHandler(d SessionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PatientID string `json:"patient_id"`
			Category  string `json:"category"`
			Strict    bool   `json:"strict,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.PatientID == "" || req.Category == "" {
			http.Error(w, "patient_id and category required", http.StatusBadRequest)
			return
		}
		pool, err := d.Cards.List(req.PatientID, req.Category)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		opts := []game.SessionOption{game.WithQuestionCap(d.QuestionCap)}
		if req.Strict {
			opts = append(opts, game.WithGrader(game.NewGrader(game.WithStrict())))
		}
		s, err := game.NewSession(uuid.NewString(), req.PatientID, req.Category, pool, opts...)
		if err != nil {
			if errors.Is(err, game.ErrEmptyPool) {
				http.Error(w, "no cards in this category", http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		round, err := s.Start()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		d.Sessions.Add(s)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"session_id": s.ID,
			"round":      viewRound(round, s.Progress().Total),
		})
	}
}

func GetSessionHandler(d SessionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := d.Sessions.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		resp := map[string]any{"session_id": s.ID, "progress": s.Progress()}
		if round := s.Round(); round != nil {
			resp["round"] = viewRound(*round, s.Progress().Total)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func AnswerHandler(d SessionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := d.Sessions.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		var req struct {
			Answer string `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		round := s.Round()
		if round == nil {
			http.Error(w, "no round in progress", http.StatusConflict)
			return
		}
		ok, err := s.Answer(req.Answer)
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"correct":       ok,
			"correct_label": round.Card.Label,
			"progress":      s.Progress(),
		})
	}
}

func SkipHandler(d SessionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := d.Sessions.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		round := s.Round()
		if round == nil {
			http.Error(w, "no round in progress", http.StatusConflict)
			return
		}
		if err := s.Skip(); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		resp := map[string]any{
			"correct_label": round.Card.Label,
			"progress":      s.Progress(),
		}
		// skipping the final question ends the session right away
		if s.State() == game.StateComplete {
			if sum, done := finishSession(r, d, s); done {
				resp["summary"] = sum
			}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func NextRoundHandler(d SessionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := d.Sessions.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		round, err := s.Next()
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if round == nil {
			resp := map[string]any{"progress": s.Progress()}
			if sum, done := finishSession(r, d, s); done {
				resp["summary"] = sum
			}
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"round":    viewRound(*round, s.Progress().Total),
			"progress": s.Progress(),
		})
	}
}

// finishSession persists the summary, appends the analytics event, and
// drops the session from the registry. Persistence failures are logged
// and swallowed; the player still gets their result.
func finishSession(r *http.Request, d SessionDeps, s *game.Session) (progress.Summary, bool) {
	sum, err := s.Summary()
	if err != nil {
		return progress.Summary{}, false
	}
	saved, err := d.Progress.Save(r.Context(), sum)
	if err != nil {
		log.Printf("save summary for session %s: %v", s.ID, err)
		saved = sum
	}
	if d.Events != nil {
		if err := d.Events.AppendJSON(r.Context(), eventlog.TypeSessionCompleted, s.ID, saved); err != nil {
			log.Printf("append event for session %s: %v", s.ID, err)
		}
	}
	d.Sessions.Remove(s.ID)
	return saved, true
}
