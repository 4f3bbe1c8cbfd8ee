package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/memorylane-care/memorylane/internal/card"
)

func CreateCardHandler(store card.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c card.Card
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if c.PatientID == "" {
			http.Error(w, "patient_id required", http.StatusBadRequest)
			return
		}
		clean := card.Sanitize([]card.Card{c})
		if len(clean) == 0 {
			http.Error(w, "label and media_uri required", http.StatusBadRequest)
			return
		}
		if err := store.Put(clean[0]); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(clean[0])
	}
}

func ListCardsHandler(store card.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID := r.URL.Query().Get("patient")
		if patientID == "" {
			http.Error(w, "patient required", http.StatusBadRequest)
			return
		}
		cards, err := store.List(patientID, r.URL.Query().Get("category"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if cards == nil {
			cards = []card.Card{}
		}
		_ = json.NewEncoder(w).Encode(cards)
	}
}

func DeleteCardHandler(store card.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "cardID")
		if err := store.Delete(id); err != nil {
			if errors.Is(err, card.ErrNotFound) {
				http.Error(w, "card not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
