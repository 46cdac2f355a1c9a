// Package session runs one player's pass through a topic's questions.
package session

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/mind-engage/quizsheet/internal/grading"
	"github.com/mind-engage/quizsheet/internal/quiz"
	"github.com/mind-engage/quizsheet/internal/stats"
)

const (
	TimeLimit       = 150 // seconds for the whole quiz
	PointsPerAnswer = 10
	XPPerAnswer     = 5
	PassPercentage  = 60
)

var (
	ErrFinished        = errors.New("quiz is finished")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNotAnswered     = errors.New("answer the question first")
	ErrNoSelection     = errors.New("no answer selected")
)

type Session struct {
	ID        string          `json:"id"`
	Player    string          `json:"player"`
	TopicID   string          `json:"topicId"`
	Questions []quiz.Question `json:"questions"`
	StartedAt time.Time       `json:"startedAt"`

	Index        int                 `json:"currentQuestionIndex"`
	Selected     string              `json:"selectedAnswer,omitempty"`
	Answered     bool                `json:"questionAnswered"`
	KnowMoreUsed bool                `json:"usedKnowMoreBeforeAnswer"`
	Answers      []stats.UserAnswer  `json:"userAnswers"`
	Wrong        []stats.WrongAnswer `json:"wrongAnswers"`
	Correct      int                 `json:"correctAnswers"`
	Score        int                 `json:"quizScore"`
	XP           int                 `json:"xpEarned"`
	TimeLeft     int                 `json:"timeLeft"`

	recorded bool
}

// New starts a session over a copy of questions, shuffled when rng is set.
func New(id, player, topicID string, questions []quiz.Question, rng *rand.Rand, now time.Time) *Session {
	qs := append([]quiz.Question(nil), questions...)
	if rng != nil {
		rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	}
	return &Session{
		ID:        id,
		Player:    player,
		TopicID:   topicID,
		Questions: qs,
		StartedAt: now,
		Answers:   []stats.UserAnswer{},
		Wrong:     []stats.WrongAnswer{},
		TimeLeft:  TimeLimit,
	}
}

// Current is the question being asked, if any.
func (s *Session) Current() (quiz.Question, bool) {
	if s.Done() {
		return quiz.Question{}, false
	}
	return s.Questions[s.Index], true
}

func (s *Session) Done() bool {
	return s.Index >= len(s.Questions) || s.TimeLeft == 0
}

func (s *Session) Select(answer string) error {
	if s.Done() {
		return ErrFinished
	}
	if s.Answered {
		return ErrAlreadyAnswered
	}
	s.Selected = answer
	return nil
}

// MarkKnowMoreUsed records that the player opened the explanation before
// answering; the current answer will then be graded wrong.
func (s *Session) MarkKnowMoreUsed() {
	if !s.Answered && !s.Done() {
		s.KnowMoreUsed = true
	}
}

// Submit grades the selected answer. response overrides the selection for
// types whose answer is not a single string, e.g. sequence positions.
func (s *Session) Submit(g grading.Grader, response any) (grading.Result, error) {
	q, ok := s.Current()
	if !ok {
		return grading.Result{}, ErrFinished
	}
	if s.Answered {
		return grading.Result{}, ErrAlreadyAnswered
	}
	if response == nil {
		if s.Selected == "" {
			return grading.Result{}, ErrNoSelection
		}
		response = s.Selected
	}
	res, err := g.Grade(q, response)
	if err != nil {
		return grading.Result{}, err
	}
	if s.KnowMoreUsed {
		res.Correct, res.Score = false, 0
	}

	selected := s.Selected
	if str, ok := response.(string); ok {
		selected = str
	}
	s.Answered = true
	s.Answers = append(s.Answers, stats.UserAnswer{QuestionIndex: s.Index, SelectedAnswer: selected, IsCorrect: res.Correct})
	if res.Correct {
		s.Correct++
		s.Score += PointsPerAnswer
		s.XP += XPPerAnswer
	} else {
		s.Wrong = append(s.Wrong, stats.WrongAnswer{
			TopicID:           s.TopicID,
			QuestionID:        q.ID,
			QuestionText:      q.Text,
			CorrectAnswerText: res.Expected,
			UserAnswerText:    q.AnswerText(selected),
		})
	}
	return res, nil
}

func (s *Session) Next() error {
	if s.Done() {
		return ErrFinished
	}
	if !s.Answered {
		return ErrNotAnswered
	}
	s.Index++
	s.Selected = ""
	s.Answered = false
	s.KnowMoreUsed = false
	return nil
}

// Advance sets the clock from wall time.
func (s *Session) Advance(now time.Time) {
	left := TimeLimit - int(now.Sub(s.StartedAt)/time.Second)
	s.TimeLeft = max(0, min(TimeLimit, left))
}

// Percentage is the rounded share of correct answers over all questions.
func (s *Session) Percentage() int {
	if len(s.Questions) == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(len(s.Questions)) * 100))
}

func (s *Session) Passed() bool { return s.Percentage() >= PassPercentage }

// MarkRecorded reports whether a finished session still needs its results
// stored, and flips it so that happens once.
func (s *Session) MarkRecorded() bool {
	if !s.Done() || s.recorded {
		return false
	}
	s.recorded = true
	return true
}

// Progress is the resumable snapshot of the session.
func (s *Session) Progress() stats.Progress {
	return stats.Progress{
		TopicID:              s.TopicID,
		CurrentQuestionIndex: s.Index,
		UserAnswers:          append([]stats.UserAnswer(nil), s.Answers...),
		Score:                s.Score,
	}
}
