package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/quizsheet/internal/catalog"
	"github.com/mind-engage/quizsheet/internal/quiz"
)

// QuestionSource loads the questions of a topic. *sheet.Fetcher is the
// production implementation.
type QuestionSource interface {
	Questions(ctx context.Context, t catalog.Topic) []quiz.Question
}

// GET /api/topics
func ListTopicsHandler(cat catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topics := cat.Topics
		if topics == nil {
			topics = []catalog.Topic{}
		}
		respondJSON(w, http.StatusOK, topics)
	}
}

// GET /api/topics/{topicID}/questions?worksheet=N
//
// The worksheet query parameter overrides the topic's configured filter.
func TopicQuestionsHandler(cat catalog.Catalog, src QuestionSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := lookupTopic(w, cat, chi.URLParam(r, "topicID"))
		if !ok {
			return
		}
		if raw := r.URL.Query().Get("worksheet"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "worksheet must be a number", http.StatusBadRequest)
				return
			}
			t.WorksheetNumber = &n
		}
		qs := src.Questions(r.Context(), t)
		if qs == nil {
			qs = []quiz.Question{}
		}
		respondJSON(w, http.StatusOK, qs)
	}
}

func lookupTopic(w http.ResponseWriter, cat catalog.Catalog, id string) (catalog.Topic, bool) {
	t, err := cat.Get(id)
	if errors.Is(err, catalog.ErrTopicNotFound) {
		http.Error(w, "topic not found", http.StatusNotFound)
		return catalog.Topic{}, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return catalog.Topic{}, false
	}
	return t, true
}
