package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/mind-engage/quizsheet/internal/applog"
)

// GET /api/logs  newest first
func ListLogsHandler(ring *applog.Ring) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, ring.Entries())
	}
}

// DELETE /api/logs
func ClearLogsHandler(ring *applog.Ring) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ring.Clear()
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /api/logs/stream  server-sent events, one per new entry
func StreamLogsHandler(ring *applog.Ring) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fl, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}
		ch := make(chan applog.Entry, applog.RingSize)
		cancel := ring.Subscribe(func(e applog.Entry) {
			select {
			case ch <- e:
			default: // slow reader, drop
			}
		})
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		fl.Flush()
		enc := json.NewEncoder(w)
		for {
			select {
			case <-r.Context().Done():
				return
			case e := <-ch:
				_, _ = io.WriteString(w, "data: ")
				_ = enc.Encode(e) // Encode ends the line
				_, _ = io.WriteString(w, "\n")
				fl.Flush()
			}
		}
	}
}
