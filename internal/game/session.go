package game

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/memorylane-care/memorylane/internal/card"
	"github.com/memorylane-care/memorylane/internal/match"
	"github.com/memorylane-care/memorylane/internal/progress"
)

// State is the sequencer phase for a recall session.
type State string

const (
	StateIdle     State = "idle"
	StateAsking   State = "asking"
	StateAnswered State = "answered"
	StateComplete State = "complete"
)

// DefaultQuestionCap bounds a session; a pool with fewer distinct
// labels plays fewer questions.
const DefaultQuestionCap = 10

var (
	ErrEmptyPool = errors.New("card pool is empty")
	ErrBadState  = errors.New("operation not valid in current session state")
)

// Round is the ephemeral per-question state: the card being asked and
// the shuffled options shown to the patient.
type Round struct {
	Card    card.Card `json:"card"`
	Options []string  `json:"options"`
	Number  int       `json:"number"`
}

// Progress is a caregiver-visible snapshot of a running session.
type Progress struct {
	State     State `json:"state"`
	Question  int   `json:"question"`
	Total     int   `json:"total"`
	Correct   int   `json:"correct"`
	Incorrect int   `json:"incorrect"`
	Skipped   int   `json:"skipped"`
}

// Session runs one "Name That Memory" game over a fixed card pool.
// All session state lives here, never in package-level variables, so
// concurrent sessions cannot bleed into each other. The zero value is
// not usable; construct with NewSession.
type Session struct {
	ID        string
	PatientID string
	Category  string

	mu         sync.Mutex
	state      State
	pool       []card.Card
	asked      map[string]struct{} // normalized labels already presented
	askedOrder []string            // display labels, presentation order
	round      *Round

	total      int
	questioned int
	correct    int
	incorrect  int
	skipped    int
	skippedIDs []string

	grader  Grader
	builder *OptionsBuilder
	rng     *rand.Rand
	now     func() time.Time

	startedAt  time.Time
	finishedAt time.Time
}

type SessionOption func(*Session)

// WithQuestionCap changes the per-session question ceiling.
func WithQuestionCap(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.total = n
		}
	}
}

// WithRand injects the random source used for card selection and
// option shuffling. Tests pass a seeded source.
func WithRand(rng *rand.Rand) SessionOption {
	return func(s *Session) { s.rng = rng }
}

// WithClock injects the time source for elapsed-time tracking.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithGrader replaces the default lenient grader.
func WithGrader(g Grader) SessionOption {
	return func(s *Session) { s.grader = g }
}

// WithBuilder replaces the default options builder.
func WithBuilder(b *OptionsBuilder) SessionOption {
	return func(s *Session) { s.builder = b }
}

// NewSession sanitizes the pool and prepares an Idle session. The
// question total is min(cap, distinct normalized labels in the pool).
func NewSession(id, patientID, category string, pool []card.Card, opts ...SessionOption) (*Session, error) {
	pool = card.Sanitize(pool)
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	s := &Session{
		ID:        id,
		PatientID: patientID,
		Category:  category,
		state:     StateIdle,
		pool:      pool,
		asked:     map[string]struct{}{},
		total:     DefaultQuestionCap,
		grader:    NewGrader(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.builder == nil {
		s.builder = NewOptionsBuilder(s.rng)
	}
	if distinct := card.DistinctLabels(pool); distinct < s.total {
		s.total = distinct
	}
	return s, nil
}

// Start moves Idle→Asking and presents the first round.
func (s *Session) Start() (Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return Round{}, ErrBadState
	}
	s.startedAt = s.now()
	return s.nextRound(), nil
}

// Answer grades the submission for the current round (Asking→Answered)
// and reports whether it was accepted as correct.
func (s *Session) Answer(submitted string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAsking {
		return false, ErrBadState
	}
	ok := s.grader.Grade(submitted, s.round.Card.Label)
	if ok {
		s.correct++
	} else {
		s.incorrect++
	}
	s.state = StateAnswered
	return ok, nil
}

// Skip passes on the current round without grading. Skipping the last
// question completes the session immediately.
func (s *Session) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAsking {
		return ErrBadState
	}
	s.skipped++
	s.skippedIDs = append(s.skippedIDs, s.round.Card.ID)
	if s.questioned >= s.total {
		s.complete()
		return nil
	}
	s.state = StateAnswered
	return nil
}

// Next advances Answered→Asking with a fresh round, or →Complete once
// the configured total is reached; completion returns a nil round.
func (s *Session) Next() (*Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAnswered {
		return nil, ErrBadState
	}
	if s.questioned >= s.total {
		s.complete()
		return nil, nil
	}
	r := s.nextRound()
	return &r, nil
}

// Round returns the round currently being asked, nil otherwise.
func (s *Session) Round() *Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAsking || s.round == nil {
		return nil
	}
	r := *s.round
	return &r
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Progress{
		State:     s.state,
		Question:  s.questioned,
		Total:     s.total,
		Correct:   s.correct,
		Incorrect: s.incorrect,
		Skipped:   s.skipped,
	}
}

// SkippedCardIDs lists the cards the patient passed on, in order.
func (s *Session) SkippedCardIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.skippedIDs))
	copy(out, s.skippedIDs)
	return out
}

// Summary is valid only once the session is Complete.
func (s *Session) Summary() (progress.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateComplete {
		return progress.Summary{}, ErrBadState
	}
	return progress.Summary{
		PatientID:        s.PatientID,
		Category:         s.Category,
		TotalQuestions:   s.total,
		CorrectAnswers:   s.correct,
		Skipped:          s.skipped,
		TotalTimeSeconds: int(s.finishedAt.Sub(s.startedAt).Seconds()),
		Timestamp:        s.finishedAt.Unix(),
	}, nil
}

// nextRound picks a card, preferring ones not asked yet and falling
// back to the full pool once every label has been presented.
func (s *Session) nextRound() Round {
	candidates := make([]card.Card, 0, len(s.pool))
	for _, c := range s.pool {
		if _, done := s.asked[match.Normalize(c.Label)]; !done {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		candidates = s.pool
	}
	c := candidates[s.rng.Intn(len(candidates))]

	// options see the labels presented before this round
	options := s.builder.Build(c.Label, card.Labels(s.pool), s.askedOrder)

	s.asked[match.Normalize(c.Label)] = struct{}{}
	s.askedOrder = append(s.askedOrder, c.Label)
	s.questioned++
	s.round = &Round{Card: c, Options: options, Number: s.questioned}
	s.state = StateAsking
	return *s.round
}

func (s *Session) complete() {
	s.state = StateComplete
	s.round = nil
	s.finishedAt = s.now()
}
