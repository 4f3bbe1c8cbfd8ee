package match

import "strings"

// Similar reports whether two labels are close enough to be confused
// with one another. It is used both to grade lenient answers and to
// keep near-duplicate names out of a set of multiple-choice options.
//
// The rules, in order:
//  1. blank tokens are never similar
//  2. identical tokens are similar
//  3. one token contained in the other, with length difference at most
//     2, is similar (catches "Anna" vs "Ann")
//  4. otherwise edit distance decides, with a tighter threshold for
//     short names: distance 1 on a 3-letter name is a big relative
//     change, distance 2 on a long name is typo territory
func Similar(a, b string) bool {
	ta, tb := Normalize(a), Normalize(b)
	if ta == "" || tb == "" {
		return false
	}
	if ta == tb {
		return true
	}
	diff := len(ta) - len(tb)
	if diff < 0 {
		diff = -diff
	}
	if diff <= 2 && (strings.Contains(ta, tb) || strings.Contains(tb, ta)) {
		return true
	}
	d := Levenshtein(ta, tb)
	if max(len(ta), len(tb)) <= 5 {
		return d <= 1
	}
	return d <= 2
}
