package grading

import "strings"

// CheckAnswer reports whether user matches one of the pipe-separated
// alternatives in correct. Comparison ignores case and surrounding space.
// An empty answer on either side never matches.
func CheckAnswer(user, correct string) bool {
	u := normalize(user)
	if u == "" || strings.TrimSpace(correct) == "" {
		return false
	}
	for _, alt := range strings.Split(correct, "|") {
		if normalize(alt) == u {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
