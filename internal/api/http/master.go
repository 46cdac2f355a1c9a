package http

import (
	"context"
	"net/http"

	"github.com/mind-engage/quizsheet/internal/catalog"
	"github.com/mind-engage/quizsheet/internal/sheet"
)

// MasterSource reads the master configuration sheet and the local worksheet
// index. *sheet.Fetcher implements it.
type MasterSource interface {
	TopicConfigs(ctx context.Context) []sheet.TopicConfig
	Leaderboard(ctx context.Context) []sheet.LeaderboardEntry
	Worksheets() []catalog.Worksheet
}

// GET /api/leaderboard
func LeaderboardHandler(m MasterSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := m.Leaderboard(r.Context())
		if entries == nil {
			entries = []sheet.LeaderboardEntry{}
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

// GET /api/topic-config
func TopicConfigHandler(m MasterSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := m.TopicConfigs(r.Context())
		if cfg == nil {
			cfg = []sheet.TopicConfig{}
		}
		respondJSON(w, http.StatusOK, cfg)
	}
}

// GET /api/worksheets
func ListWorksheetsHandler(m MasterSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := m.Worksheets()
		if ws == nil {
			ws = []catalog.Worksheet{}
		}
		respondJSON(w, http.StatusOK, ws)
	}
}
