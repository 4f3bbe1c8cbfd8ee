package game

import (
	"math/rand"

	"github.com/memorylane-care/memorylane/internal/match"
)

// optionCount is how many choices a full round presents: the correct
// label plus three distractors.
const optionCount = 4

// OptionsBuilder assembles the multiple-choice options for a round.
// Distractors are drawn from the patient's own pool first, padded from
// a filler list when the pool runs short, and are never similar to the
// correct label. Randomness comes from the injected source so rounds
// are reproducible in tests.
type OptionsBuilder struct {
	rng     *rand.Rand
	fillers []string
}

type BuilderOption func(*OptionsBuilder)

// WithFillers overrides the built-in filler names.
func WithFillers(names []string) BuilderOption {
	return func(b *OptionsBuilder) { b.fillers = names }
}

func NewOptionsBuilder(rng *rand.Rand, opts ...BuilderOption) *OptionsBuilder {
	b := &OptionsBuilder{rng: rng, fillers: DefaultFillers}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build returns the shuffled options for one round: the correct label
// plus up to three distractors. pool is every label in the patient's
// card pool; used lists labels already shown this session, which are
// deprioritized as distractors but not forbidden.
//
// When pool and fillers together cannot supply three acceptable
// distractors the result is shorter than four. It always contains the
// correct label, so the minimum length is one; callers must tolerate
// short rounds rather than expect exactly four choices.
func (b *OptionsBuilder) Build(correct string, pool, used []string) []string {
	usedSet := make(map[string]struct{}, len(used))
	for _, u := range used {
		usedSet[match.Normalize(u)] = struct{}{}
	}

	fresh := make([]string, 0, len(pool))
	var seen []string
	for _, label := range pool {
		if label == correct || match.Similar(label, correct) {
			continue
		}
		if _, ok := usedSet[match.Normalize(label)]; ok {
			seen = append(seen, label)
			continue
		}
		fresh = append(fresh, label)
	}
	b.shuffle(fresh)
	b.shuffle(seen)
	candidates := append(fresh, seen...)

	distractors := make([]string, 0, optionCount-1)
	for _, c := range candidates {
		if len(distractors) == optionCount-1 {
			break
		}
		if similarToAny(c, distractors) {
			continue
		}
		distractors = append(distractors, c)
	}

	if len(distractors) < optionCount-1 {
		fillers := make([]string, len(b.fillers))
		copy(fillers, b.fillers)
		b.shuffle(fillers)
		for _, f := range fillers {
			if len(distractors) == optionCount-1 {
				break
			}
			// a filler that resembles the answer, an option already
			// chosen, or any real card in the pool would mislead
			if match.Similar(f, correct) || similarToAny(f, distractors) || similarToAny(f, pool) {
				continue
			}
			distractors = append(distractors, f)
		}
	}

	options := append(distractors, correct)
	b.shuffle(options)
	return options
}

func (b *OptionsBuilder) shuffle(s []string) {
	b.rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

func similarToAny(label string, others []string) bool {
	for _, o := range others {
		if match.Similar(label, o) {
			return true
		}
	}
	return false
}
