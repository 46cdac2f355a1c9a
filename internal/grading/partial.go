package grading

import "math"

// ValidationResult is the outcome of grading a multi-select answer.
// The three id lists keep the order of their source input.
type ValidationResult struct {
	IsFullyCorrect      bool     `json:"isFullyCorrect"`
	Score               float64  `json:"score"`
	CorrectSelections   []string `json:"correctSelections"`
	IncorrectSelections []string `json:"incorrectSelections"`
	MissedAnswers       []string `json:"missedAnswers"`
	Details             Details  `json:"details"`
}

// Details counts right picks, expected answers and wrong picks.
type Details struct {
	Got   int `json:"got"`
	Total int `json:"total"`
	Wrong int `json:"wrong"`
}

// ValidateWithPartialCredit scores selected against correct. Each wrong pick
// cancels one right pick, the score never drops below zero and is rounded to
// two decimals. Duplicate ids in either input count once.
func ValidateWithPartialCredit(selected, correct []string) ValidationResult {
	selected, correct = dedupe(selected), dedupe(correct)
	want := toSet(correct)
	picked := toSet(selected)

	res := ValidationResult{
		CorrectSelections:   []string{},
		IncorrectSelections: []string{},
		MissedAnswers:       []string{},
	}
	for _, id := range selected {
		if _, ok := want[id]; ok {
			res.CorrectSelections = append(res.CorrectSelections, id)
		} else {
			res.IncorrectSelections = append(res.IncorrectSelections, id)
		}
	}
	for _, id := range correct {
		if _, ok := picked[id]; !ok {
			res.MissedAnswers = append(res.MissedAnswers, id)
		}
	}

	total := len(correct)
	res.Details = Details{Got: len(res.CorrectSelections), Total: total, Wrong: len(res.IncorrectSelections)}
	res.IsFullyCorrect = len(selected) == total && len(res.CorrectSelections) == total
	if total == 0 {
		return res
	}
	base := float64(len(res.CorrectSelections)) / float64(total)
	penalty := float64(len(res.IncorrectSelections)) / float64(total)
	res.Score = math.Round(math.Max(0, base-penalty)*100) / 100
	return res
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toSet(arr []string) map[string]struct{} {
	m := make(map[string]struct{}, len(arr))
	for _, s := range arr {
		m[s] = struct{}{}
	}
	return m
}
