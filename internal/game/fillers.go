package game

// DefaultFillers pads multiple-choice rounds when the patient's own
// card pool cannot supply enough clearly-distinguishable distractors.
// Plain, common first names; nothing here should resemble a typical
// real card label too closely, and the builder re-checks that anyway.
var DefaultFillers = []string{
	"Margaret", "Dorothy", "Harold", "Walter", "Eleanor",
	"Gerald", "Beatrice", "Franklin", "Mildred", "Stanley",
	"Virginia", "Russell", "Florence", "Eugene", "Gladys",
	"Vernon", "Lorraine", "Cecil", "Pauline", "Marvin",
	"Bernice", "Chester", "Rosemary", "Clifford",
}
