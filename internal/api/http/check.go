package http

import (
	"net/http"

	"github.com/mind-engage/quizsheet/internal/grading"
)

// POST /api/check  { "userAnswer": "...", "correctAnswer": "a|b" }
func CheckAnswerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserAnswer    string `json:"userAnswer"`
			CorrectAnswer string `json:"correctAnswer"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"correct": grading.CheckAnswer(req.UserAnswer, req.CorrectAnswer)})
	}
}

// POST /api/check/multi  { "selected": [...], "correct": [...], "feedback": {...} }
func CheckMultiHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Selected []string              `json:"selected"`
			Correct  []string              `json:"correct"`
			Feedback *grading.FeedbackText `json:"feedback"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		vr := grading.ValidateWithPartialCredit(req.Selected, req.Correct)
		respondJSON(w, http.StatusOK, map[string]any{
			"result":   vr,
			"feedback": grading.Feedback(vr, req.Feedback),
		})
	}
}

// POST /api/check/sequence  { "positions": {"1":"2",...}, "correct": "2,1,3" }
func CheckSequenceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Positions map[string]string `json:"positions"`
			Correct   string            `json:"correct"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		pos, err := grading.ParsePositions(req.Positions)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := grading.ValidateSequence(pos, len(pos)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		order := grading.SequenceString(pos, len(pos))
		items := make(map[string]int, len(pos))
		for id := range pos {
			items[id] = grading.CorrectPosition(id, req.Correct)
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"correct":          grading.CheckSequence(order, req.Correct),
			"order":            order,
			"correctPositions": items,
		})
	}
}

// POST /api/check/match  { "mappings": {"a1":"b2"}, "pairs": [{"aId":"a1","bId":"b1"}] }
func CheckMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Mappings map[string]string   `json:"mappings"`
			Pairs    []grading.MatchPair `json:"pairs"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		respondJSON(w, http.StatusOK, grading.ScoreMatch(req.Mappings, req.Pairs))
	}
}
