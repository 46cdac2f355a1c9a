package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/mind-engage/quizsheet/internal/auth"
	"github.com/mind-engage/quizsheet/internal/stats"
)

// GET /api/stats
func GetStatsHandler(st stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := st.Get(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, s)
	}
}

// POST /api/stats/visit marks today as active and returns the updated streak.
func VisitHandler(st stats.Store, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := st.UpdateStreak(r.Context(), auth.SubjectFromContext(r.Context()), now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, s)
	}
}

// GET /api/progress returns the resumable quiz, 404 when there is none or
// it is older than stats.ProgressTTL.
func GetProgressHandler(st stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := st.GetProgress(r.Context(), auth.SubjectFromContext(r.Context()))
		if errors.Is(err, stats.ErrNoProgress) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

// PUT /api/progress
func SaveProgressHandler(st stats.Store, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p stats.Progress
		if !decodeJSON(w, r, &p) {
			return
		}
		if p.TopicID == "" {
			http.Error(w, "topicId required", http.StatusBadRequest)
			return
		}
		p.Timestamp = now().UnixMilli()
		if err := st.SaveProgress(r.Context(), auth.SubjectFromContext(r.Context()), p); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DELETE /api/progress
func ClearProgressHandler(st stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.ClearProgress(r.Context(), auth.SubjectFromContext(r.Context())); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /api/review lists the questions missed in the last finished quiz.
func ReviewHandler(st stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wrong, err := st.WrongAnswers(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if wrong == nil {
			wrong = []stats.WrongAnswer{}
		}
		respondJSON(w, http.StatusOK, wrong)
	}
}
