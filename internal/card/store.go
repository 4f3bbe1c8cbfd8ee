package card

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("card not found")

// Store is the card pool's persistence surface. List returns sanitized
// cards for one patient, optionally restricted to a category.
type Store interface {
	Put(c Card) error
	Get(id string) (Card, error)
	List(patientID, category string) ([]Card, error)
	Delete(id string) error
}

type memoryStore struct {
	mu    sync.RWMutex
	cards map[string]Card
}

// NewInMemoryStore backs the store with a map. Used in tests and for
// single-process dev runs.
func NewInMemoryStore() Store {
	return &memoryStore{cards: map[string]Card{}}
}

func (m *memoryStore) Put(c Card) error {
	clean := Sanitize([]Card{c})
	if len(clean) == 0 {
		return errors.New("card rejected: label and media required")
	}
	c = clean[0]
	m.mu.Lock()
	defer m.mu.Unlock()
	// suppress duplicates by composite key, not just id
	for _, existing := range m.cards {
		if existing.ID != c.ID && existing.PatientID == c.PatientID && existing.Key() == c.Key() {
			return nil
		}
	}
	m.cards[c.ID] = c
	return nil
}

func (m *memoryStore) Get(id string) (Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cards[id]
	if !ok {
		return Card{}, ErrNotFound
	}
	return c, nil
}

func (m *memoryStore) List(patientID, category string) ([]Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Card, 0, len(m.cards))
	for _, c := range m.cards {
		if c.PatientID != patientID {
			continue
		}
		if category != "" && c.Category != category {
			continue
		}
		out = append(out, c)
	}
	return Sanitize(out), nil
}

func (m *memoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cards[id]; !ok {
		return ErrNotFound
	}
	delete(m.cards, id)
	return nil
}
