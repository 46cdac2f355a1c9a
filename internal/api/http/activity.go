package http

import (
	"net/http"
	"strconv"

	"github.com/mind-engage/quizsheet/internal/activity"
)

// GET /api/activity?after=<offset>&player=<name>&limit=<n>
func ActivityHandler(repo *activity.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var after int64
		if v := q.Get("after"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				http.Error(w, "after must be a number", http.StatusBadRequest)
				return
			}
			after = n
		}
		limit, _ := strconv.Atoi(q.Get("limit"))
		events, err := repo.Since(r.Context(), after, q.Get("player"), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, events)
	}
}
