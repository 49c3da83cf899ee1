package evaluate

import (
	"github.com/pmezard/go-difflib/difflib"
)

// SimilarityRatio returns the Ratcliff/Obershelp similarity of a and b in
// [0, 1]: twice the number of runes in matching blocks over the total rune
// count. Two empty strings are identical.
//
// When b has 200 or more runes, runes that make up more than 1% of b are
// not used to seed matches.
func SimilarityRatio(a, b string) float64 {
	return difflib.NewMatcher(runeStrings(a), runeStrings(b)).Ratio()
}

// runeStrings splits s into one-rune strings, the element type the
// matcher compares.
func runeStrings(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
