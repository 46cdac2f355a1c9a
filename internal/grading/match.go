package grading

// MatchPair links an item of column A to its partner in column B.
type MatchPair struct {
	AID string `json:"aId"`
	BID string `json:"bId"`
}

type MatchResult struct {
	Correct    int      `json:"correct"`
	Total      int      `json:"total"`
	AllCorrect bool     `json:"allCorrect"`
	Wrong      []string `json:"wrong"` // column A ids, in pair order
}

// ScoreMatch grades a match-the-following answer. mappings is the player's
// column A id -> column B id choice; unmapped items count as wrong.
func ScoreMatch(mappings map[string]string, pairs []MatchPair) MatchResult {
	res := MatchResult{Total: len(pairs), Wrong: []string{}}
	for _, p := range pairs {
		if got, ok := mappings[p.AID]; ok && got == p.BID {
			res.Correct++
			continue
		}
		res.Wrong = append(res.Wrong, p.AID)
	}
	res.AllCorrect = res.Total > 0 && res.Correct == res.Total
	return res
}
