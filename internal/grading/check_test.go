package grading

import "testing"

func TestCheckAnswer(t *testing.T) {
	cases := []struct {
		user, correct string
		want          bool
	}{
		{"Blue", "red|blue", true},
		{"  RED ", "red|blue", true},
		{"green", "red|blue", false},
		{"", "red|blue", false},
		{"   ", "red|blue", false},
		{"red", "", false},
		{"true", "True", true},
		{"new york", "New York | NYC", true},
		{"nyc", "New York | NYC", true},
	}
	for _, tc := range cases {
		if got := CheckAnswer(tc.user, tc.correct); got != tc.want {
			t.Errorf("CheckAnswer(%q, %q) = %v, want %v", tc.user, tc.correct, got, tc.want)
		}
	}
}
