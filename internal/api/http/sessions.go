package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/quizsheet/internal/activity"
	"github.com/mind-engage/quizsheet/internal/auth"
	"github.com/mind-engage/quizsheet/internal/catalog"
	"github.com/mind-engage/quizsheet/internal/grading"
	"github.com/mind-engage/quizsheet/internal/quiz"
	"github.com/mind-engage/quizsheet/internal/session"
	"github.com/mind-engage/quizsheet/internal/stats"
)

// playQuestion is a question as shown to a player: everything except the
// answer key.
type playQuestion struct {
	ID           string        `json:"id"`
	Text         string        `json:"text"`
	Type         quiz.Type     `json:"questionType"`
	Answers      []quiz.Answer `json:"answers"`
	FIBSentence  string        `json:"fib_sentence,omitempty"`
	Hint         string        `json:"hint,omitempty"`
	KnowMore     string        `json:"knowMore,omitempty"`
	KnowMoreText string        `json:"knowMoreText,omitempty"`
	ImageURL     string        `json:"imageUrl,omitempty"`
	YouTubeURL   string        `json:"youtubeUrl,omitempty"`
}

func toPlay(q quiz.Question) *playQuestion {
	answers := q.Answers()
	if answers == nil {
		answers = []quiz.Answer{}
	}
	return &playQuestion{
		ID:           q.ID,
		Text:         q.Text,
		Type:         q.Type(),
		Answers:      answers,
		FIBSentence:  q.FIBSentence(),
		Hint:         q.Hint,
		KnowMore:     q.KnowMore,
		KnowMoreText: q.KnowMoreText,
		ImageURL:     q.ImageURL,
		YouTubeURL:   q.YouTubeURL,
	}
}

type sessionResult struct {
	Percentage   int                 `json:"percentage"`
	Passed       bool                `json:"passed"`
	WrongAnswers []stats.WrongAnswer `json:"wrongAnswers"`
}

type sessionView struct {
	ID       string         `json:"id"`
	TopicID  string         `json:"topicId"`
	Index    int            `json:"currentQuestionIndex"`
	Total    int            `json:"totalQuestions"`
	Question *playQuestion  `json:"question,omitempty"`
	Answered bool           `json:"questionAnswered"`
	Correct  int            `json:"correctAnswers"`
	Score    int            `json:"quizScore"`
	XP       int            `json:"xpEarned"`
	TimeLeft int            `json:"timeLeft"`
	Done     bool           `json:"done"`
	Result   *sessionResult `json:"result,omitempty"`
}

func viewOf(s *session.Session) sessionView {
	v := sessionView{
		ID:       s.ID,
		TopicID:  s.TopicID,
		Index:    s.Index,
		Total:    len(s.Questions),
		Answered: s.Answered,
		Correct:  s.Correct,
		Score:    s.Score,
		XP:       s.XP,
		TimeLeft: s.TimeLeft,
		Done:     s.Done(),
	}
	if q, ok := s.Current(); ok {
		v.Question = toPlay(q)
	}
	if v.Done {
		v.Result = &sessionResult{
			Percentage:   s.Percentage(),
			Passed:       s.Passed(),
			WrongAnswers: append([]stats.WrongAnswer{}, s.Wrong...),
		}
	}
	return v
}

// QuizDeps is what the session handlers need.
type QuizDeps struct {
	Catalog  catalog.Catalog
	Source   QuestionSource
	Sessions *session.Manager
	Grader   grading.Grader
	Stats    stats.Store
	Activity *activity.Repo // optional
	Log      *slog.Logger
	Now      func() time.Time
}

// outcome is what a session call leaves behind for the stats store. It is
// captured under the manager lock and written after it is released.
type outcome struct {
	player   string
	xp       int
	progress *stats.Progress
	finished *session.Session
}

func (d QuizDeps) logger() *slog.Logger {
	if d.Log == nil {
		return slog.Default()
	}
	return d.Log
}

func (d QuizDeps) record(ctx context.Context, o outcome) {
	log := d.logger()
	if o.xp > 0 {
		if err := d.Stats.AddXP(ctx, o.player, o.xp); err != nil {
			log.Error("add xp", "player", o.player, "err", err)
		}
	}
	if o.progress != nil {
		if err := d.Stats.SaveProgress(ctx, o.player, *o.progress); err != nil {
			log.Error("save progress", "player", o.player, "err", err)
		}
	}
	s := o.finished
	if s == nil {
		return
	}
	pct := s.Percentage()
	steps := []struct {
		what string
		fn   func() error
	}{
		{"update best score", func() error { return d.Stats.UpdateBestScore(ctx, o.player, s.TopicID, pct) }},
		{"increment quizzes", func() error { return d.Stats.IncrementQuizzes(ctx, o.player) }},
		{"save wrong answers", func() error { return d.Stats.SaveWrongAnswers(ctx, o.player, s.Wrong) }},
		{"clear progress", func() error { return d.Stats.ClearProgress(ctx, o.player) }},
		{"update streak", func() error { _, err := d.Stats.UpdateStreak(ctx, o.player, d.now()); return err }},
	}
	for _, st := range steps {
		if err := st.fn(); err != nil {
			log.Error(st.what, "player", o.player, "err", err)
		}
	}
	if d.Activity != nil {
		ev := activity.QuizFinished{Correct: s.Correct, Total: len(s.Questions), Percentage: pct, Passed: s.Passed(), XP: s.XP}
		if err := d.Activity.Append(ctx, o.player, activity.TypeQuizFinished, s.TopicID, ev); err != nil {
			log.Error("append activity", "player", o.player, "err", err)
		}
	}
	log.Info("quiz finished", "player", o.player, "topic", s.TopicID, "percentage", pct, "passed", s.Passed())
}

func (d QuizDeps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// use runs fn on the caller's session, answers with the resulting view and
// stores whatever the call changed.
func (d QuizDeps) use(w http.ResponseWriter, r *http.Request, fn func(s *session.Session, o *outcome) (any, error)) {
	player := auth.SubjectFromContext(r.Context())
	o := outcome{player: player}
	var body any
	err := d.Sessions.With(chi.URLParam(r, "sessionID"), player, func(s *session.Session) error {
		var err error
		body, err = fn(s, &o)
		// The clock can end a quiz on any call, including a failing one.
		if s.MarkRecorded() {
			snap := *s
			snap.Wrong = append([]stats.WrongAnswer(nil), s.Wrong...)
			o.finished = &snap
			o.progress = nil
		}
		return err
	})
	d.record(r.Context(), o)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, body)
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrFinished),
		errors.Is(err, session.ErrAlreadyAnswered),
		errors.Is(err, session.ErrNotAnswered):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, session.ErrNoSelection),
		errors.Is(err, grading.ErrResponseType),
		errors.Is(err, grading.ErrIncompleteSequence),
		errors.Is(err, grading.ErrDuplicatePosition),
		errors.Is(err, grading.ErrPositionRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// POST /api/sessions  { "topicId": "space", "randomize": true, "worksheet": 2 }
func StartSessionHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TopicID   string `json:"topicId"`
			Randomize *bool  `json:"randomize"`
			Worksheet *int   `json:"worksheet"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		t, ok := lookupTopic(w, d.Catalog, req.TopicID)
		if !ok {
			return
		}
		if req.Worksheet != nil {
			t.WorksheetNumber = req.Worksheet
		}
		qs := d.Source.Questions(r.Context(), t)
		if len(qs) == 0 {
			http.Error(w, "no questions for topic", http.StatusUnprocessableEntity)
			return
		}
		randomize := req.Randomize == nil || *req.Randomize
		s := d.Sessions.Start(auth.SubjectFromContext(r.Context()), t.ID, qs, randomize)
		d.logger().Debug("quiz started", "topic", t.ID, "questions", len(qs), "active", d.Sessions.Len())
		respondJSON(w, http.StatusCreated, viewOf(s))
	}
}

// GET /api/sessions/{sessionID}
func GetSessionHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.use(w, r, func(s *session.Session, _ *outcome) (any, error) {
			return viewOf(s), nil
		})
	}
}

// POST /api/sessions/{sessionID}/answer
//
//	{ "answer": "B" }                         MCQ option id, or typed text
//	{ "positions": { "1": "2", "2": "1" } }    sequence item id -> position
func AnswerHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answer    string            `json:"answer"`
			Positions map[string]string `json:"positions"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		var positions map[string]int
		if len(req.Positions) > 0 {
			pos, err := grading.ParsePositions(req.Positions)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			positions = pos
		}
		d.use(w, r, func(s *session.Session, o *outcome) (any, error) {
			selected := req.Answer
			var response any
			if positions != nil {
				q, ok := s.Current()
				if !ok {
					return nil, session.ErrFinished
				}
				// The answer log keeps the player's order, e.g. "2,1,3".
				selected = grading.SequenceString(positions, len(q.Answers()))
				response = positions
			}
			if selected == "" {
				return nil, session.ErrNoSelection
			}
			if err := s.Select(selected); err != nil {
				return nil, err
			}
			res, err := s.Submit(d.Grader, response)
			if err != nil {
				return nil, err
			}
			if res.Correct {
				o.xp = session.XPPerAnswer
			}
			p := s.Progress()
			p.Timestamp = d.now().UnixMilli()
			o.progress = &p
			return map[string]any{"result": res, "session": viewOf(s)}, nil
		})
	}
}

// POST /api/sessions/{sessionID}/know-more
func KnowMoreHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.use(w, r, func(s *session.Session, _ *outcome) (any, error) {
			q, ok := s.Current()
			if !ok {
				return nil, session.ErrFinished
			}
			s.MarkKnowMoreUsed()
			return map[string]string{"knowMore": q.KnowMore, "knowMoreText": q.KnowMoreText}, nil
		})
	}
}

// POST /api/sessions/{sessionID}/next
func NextQuestionHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.use(w, r, func(s *session.Session, _ *outcome) (any, error) {
			if err := s.Next(); err != nil {
				return nil, err
			}
			return viewOf(s), nil
		})
	}
}
