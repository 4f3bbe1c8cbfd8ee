package progress

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Store persists session summaries and serves caregiver analytics.
type Store interface {
	Save(ctx context.Context, s Summary) (Summary, error)
	List(ctx context.Context, patientID, category string) ([]Summary, error)
	Stats(ctx context.Context, patientID string) ([]CategoryStats, error)
}

type memoryStore struct {
	mu        sync.RWMutex
	summaries []Summary
}

func NewInMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) Save(_ context.Context, s Summary) (Summary, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries = append(m.summaries, s)
	return s, nil
}

func (m *memoryStore) List(_ context.Context, patientID, category string) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Summary, 0)
	for _, s := range m.summaries {
		if s.PatientID != patientID {
			continue
		}
		if category != "" && s.Category != category {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

func (m *memoryStore) Stats(_ context.Context, patientID string) ([]CategoryStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byCat := map[string]*CategoryStats{}
	accSum := map[string]float64{}
	for _, s := range m.summaries {
		if s.PatientID != patientID {
			continue
		}
		st, ok := byCat[s.Category]
		if !ok {
			st = &CategoryStats{Category: s.Category}
			byCat[s.Category] = st
		}
		st.GamesPlayed++
		st.TotalSeconds += s.TotalTimeSeconds
		if s.Timestamp > st.LastPlayed {
			st.LastPlayed = s.Timestamp
		}
		accSum[s.Category] += s.Accuracy()
	}
	out := make([]CategoryStats, 0, len(byCat))
	for cat, st := range byCat {
		st.AvgAccuracy = accSum[cat] / float64(st.GamesPlayed)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}
