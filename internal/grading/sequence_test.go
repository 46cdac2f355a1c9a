package grading

import (
	"errors"
	"testing"
)

func TestValidateSequence(t *testing.T) {
	cases := []struct {
		name string
		pos  map[string]int
		err  error
		ok   bool
	}{
		{"complete", map[string]int{"1": 2, "2": 1, "3": 3}, nil, true},
		{"missing", map[string]int{"1": 2, "2": 1, "3": 0}, ErrIncompleteSequence, false},
		{"duplicate", map[string]int{"1": 2, "2": 2, "3": 1}, ErrDuplicatePosition, false},
		{"out of range", map[string]int{"1": 4, "2": 1, "3": 2}, ErrPositionRange, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSequence(tc.pos, 3)
			if tc.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Fatalf("err = %v, want %v", err, tc.err)
			}
		})
	}
}

func TestSequenceString(t *testing.T) {
	got := SequenceString(map[string]int{"a": 3, "b": 1, "c": 0}, 3)
	if got != "b,?,a" {
		t.Fatalf("SequenceString = %q", got)
	}
}

func TestCheckSequenceAndPosition(t *testing.T) {
	if !CheckSequence("2, 1,3", "2,1, 3") {
		t.Fatal("whitespace should not matter")
	}
	if CheckSequence("1,2,3", "2,1,3") || CheckSequence("", "") {
		t.Fatal("wrong or empty order accepted")
	}
	if p := CorrectPosition("1", "2,1,3"); p != 2 {
		t.Fatalf("CorrectPosition = %d", p)
	}
	if p := CorrectPosition("9", "2,1,3"); p != 0 {
		t.Fatalf("unknown item position = %d", p)
	}
}

func TestParsePositions(t *testing.T) {
	got, err := ParsePositions(map[string]string{"a": "2", "b": ""})
	if err != nil || got["a"] != 2 || got["b"] != 0 {
		t.Fatalf("ParsePositions = %v, %v", got, err)
	}
	if _, err := ParsePositions(map[string]string{"a": "two"}); err == nil {
		t.Fatal("expected error for non-numeric position")
	}
}

func TestScoreMatch(t *testing.T) {
	pairs := []MatchPair{{"a1", "b2"}, {"a2", "b1"}, {"a3", "b3"}}
	got := ScoreMatch(map[string]string{"a1": "b2", "a2": "b3"}, pairs)
	if got.Correct != 1 || got.Total != 3 || got.AllCorrect {
		t.Fatalf("ScoreMatch = %+v", got)
	}
	if len(got.Wrong) != 2 || got.Wrong[0] != "a2" || got.Wrong[1] != "a3" {
		t.Fatalf("wrong = %v", got.Wrong)
	}
	all := ScoreMatch(map[string]string{"a1": "b2", "a2": "b1", "a3": "b3"}, pairs)
	if !all.AllCorrect {
		t.Fatalf("all = %+v", all)
	}
}
