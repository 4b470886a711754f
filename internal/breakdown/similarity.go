package breakdown

import "github.com/pmezard/go-difflib/difflib"

// Ratio is the difflib similarity of a and b compared character by character:
// 2*M/T where M is the number of matched characters and T the total length.
// Two empty strings are identical (1.0).
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

// resemblance of an utterance to the two that follow it: the mean of its
// ratio against each.
func resemblance(text, next, afterNext string) float64 {
	return (Ratio(text, next) + Ratio(text, afterNext)) / 2
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
