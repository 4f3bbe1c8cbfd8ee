package game

import "github.com/memorylane-care/memorylane/internal/match"

// Grader scores a typed answer against the card label. It is
// deliberately lenient: in a memory-care setting the skill under test
// is recall, not spelling, so anything within the similarity
// thresholds counts as correct.
type Grader struct {
	strict bool
}

type GraderOption func(*Grader)

// WithStrict disables fuzzy matching; only exact input passes. Useful
// for caregiver-configured sessions that train precise naming.
func WithStrict() GraderOption {
	return func(g *Grader) { g.strict = true }
}

func NewGrader(opts ...GraderOption) Grader {
	var g Grader
	for _, o := range opts {
		o(&g)
	}
	return g
}

// Grade reports whether the submitted answer names the card.
func (g Grader) Grade(submitted, correctLabel string) bool {
	if submitted == correctLabel {
		return true
	}
	if g.strict {
		return false
	}
	return match.Similar(submitted, correctLabel)
}
