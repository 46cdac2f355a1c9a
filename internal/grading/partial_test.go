package grading

import (
	"reflect"
	"testing"
)

func TestValidateWithPartialCredit(t *testing.T) {
	cases := []struct {
		name      string
		selected  []string
		correct   []string
		full      bool
		score     float64
		incorrect []string
		missed    []string
		details   Details
	}{
		{"exact", []string{"a", "c"}, []string{"a", "c"}, true, 1, []string{}, []string{}, Details{2, 2, 0}},
		{"one missed", []string{"a", "c"}, []string{"a", "c", "e"}, false, 0.67, []string{}, []string{"e"}, Details{2, 3, 0}},
		{"wrong cancels right", []string{"a", "b"}, []string{"a", "c"}, false, 0, []string{"b"}, []string{"c"}, Details{1, 2, 1}},
		{"never negative", []string{"b", "c"}, []string{"a"}, false, 0, []string{"b", "c"}, []string{"a"}, Details{0, 1, 2}},
		{"select everything", []string{"a", "b", "c", "d"}, []string{"a", "b"}, false, 0, []string{"c", "d"}, []string{}, Details{2, 2, 2}},
		{"nothing correct", []string{"a"}, nil, false, 0, []string{"a"}, []string{}, Details{0, 0, 1}},
		{"order preserved", []string{"z", "a", "y"}, []string{"y", "a", "x"}, false, 0.33, []string{"z"}, []string{"x"}, Details{2, 3, 1}},
		{"duplicates count once", []string{"a", "a", "b"}, []string{"a", "a"}, false, 0, []string{"b"}, []string{}, Details{1, 1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateWithPartialCredit(tc.selected, tc.correct)
			if got.IsFullyCorrect != tc.full || got.Score != tc.score {
				t.Fatalf("full=%v score=%v, want %v %v", got.IsFullyCorrect, got.Score, tc.full, tc.score)
			}
			if !reflect.DeepEqual(got.IncorrectSelections, tc.incorrect) {
				t.Fatalf("incorrect = %v, want %v", got.IncorrectSelections, tc.incorrect)
			}
			if !reflect.DeepEqual(got.MissedAnswers, tc.missed) {
				t.Fatalf("missed = %v, want %v", got.MissedAnswers, tc.missed)
			}
			if got.Details != tc.details {
				t.Fatalf("details = %+v, want %+v", got.Details, tc.details)
			}
		})
	}
}

func TestPartialCreditIgnoresDuplicates(t *testing.T) {
	got := ValidateWithPartialCredit([]string{"a", "a"}, []string{"a"})
	if !got.IsFullyCorrect || got.Score != 1 {
		t.Fatalf("duplicate pick should count once: %+v", got)
	}
}

func TestFeedback(t *testing.T) {
	full := ValidateWithPartialCredit([]string{"a"}, []string{"a"})
	none := ValidateWithPartialCredit([]string{"b"}, []string{"a"})
	some := ValidateWithPartialCredit([]string{"a"}, []string{"a", "b"})

	if m := Feedback(full, nil); m.Type != FeedbackSuccess || m.Message != "Great job! You found all of them!" {
		t.Fatalf("full = %+v", m)
	}
	if m := Feedback(none, nil); m.Type != FeedbackError || m.Message != "Let's try again. Look carefully at the options." {
		t.Fatalf("none = %+v", m)
	}
	if m := Feedback(some, nil); m.Type != FeedbackWarning || m.Message != "You got some right!" {
		t.Fatalf("some = %+v", m)
	}
	custom := &FeedbackText{Partial: "Almost!"}
	if m := Feedback(some, custom); m.Message != "Almost!" {
		t.Fatalf("custom partial = %+v", m)
	}
	if m := Feedback(full, custom); m.Message != defaultFeedback.AllCorrect {
		t.Fatalf("unset override should keep default, got %+v", m)
	}
}
