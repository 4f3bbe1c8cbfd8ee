package http

import (
	"encoding/json"
	"net/http"

	"github.com/memorylane-care/memorylane/internal/progress"
)

func ListSummariesHandler(store progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID := r.URL.Query().Get("patient")
		if patientID == "" {
			http.Error(w, "patient required", http.StatusBadRequest)
			return
		}
		sums, err := store.List(r.Context(), patientID, r.URL.Query().Get("category"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if sums == nil {
			sums = []progress.Summary{}
		}
		_ = json.NewEncoder(w).Encode(sums)
	}
}

func StatsHandler(store progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID := r.URL.Query().Get("patient")
		if patientID == "" {
			http.Error(w, "patient required", http.StatusBadRequest)
			return
		}
		stats, err := store.Stats(r.Context(), patientID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if stats == nil {
			stats = []progress.CategoryStats{}
		}
		_ = json.NewEncoder(w).Encode(stats)
	}
}
