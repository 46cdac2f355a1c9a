// Package stats persists per-player progress: XP, best scores, streaks, the
// resumable quiz snapshot and the wrong answers of the last quiz.
package stats

import (
	"context"
	"errors"
	"time"
)

// ProgressTTL is how long a saved quiz can be resumed.
const ProgressTTL = 24 * time.Hour

var ErrNoProgress = errors.New("no saved progress")

type Stats struct {
	XP             int            `json:"xp"`
	BestScores     map[string]int `json:"bestScores"` // topic id -> best percentage
	StreakDays     int            `json:"streakDays"`
	LastActiveDate string         `json:"lastActiveDate"` // YYYY-MM-DD
	TotalQuizzes   int            `json:"totalQuizzes"`
}

type UserAnswer struct {
	QuestionIndex  int    `json:"questionIndex"`
	SelectedAnswer string `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

type Progress struct {
	TopicID              string       `json:"topicId"`
	CurrentQuestionIndex int          `json:"currentQuestionIndex"`
	UserAnswers          []UserAnswer `json:"userAnswers"`
	Score                int          `json:"score"`
	Timestamp            int64        `json:"timestamp"` // unix millis
}

// WrongAnswer is one missed question kept for the review screen.
type WrongAnswer struct {
	TopicID           string `json:"topicId"`
	QuestionID        string `json:"questionId"`
	QuestionText      string `json:"questionText"`
	CorrectAnswerText string `json:"correctAnswerText"`
	UserAnswerText    string `json:"userAnswerText"`
}

type Store interface {
	Get(ctx context.Context, player string) (Stats, error)
	AddXP(ctx context.Context, player string, amount int) error
	UpdateBestScore(ctx context.Context, player, topicID string, percentage int) error
	UpdateStreak(ctx context.Context, player string, today time.Time) (Stats, error)
	IncrementQuizzes(ctx context.Context, player string) error

	SaveProgress(ctx context.Context, player string, p Progress) error
	GetProgress(ctx context.Context, player string) (Progress, error)
	ClearProgress(ctx context.Context, player string) error

	SaveWrongAnswers(ctx context.Context, player string, wrong []WrongAnswer) error
	WrongAnswers(ctx context.Context, player string) ([]WrongAnswer, error)
}

// Recent reports whether p can still be resumed at now.
func (p Progress) Recent(now time.Time) bool {
	return now.UnixMilli()-p.Timestamp < ProgressTTL.Milliseconds()
}

// nextStreak applies the daily streak rule: same day keeps the streak,
// the day after extends it, anything else restarts at 1.
func nextStreak(s Stats, today time.Time) (days int, date string) {
	d := today.UTC().Format(time.DateOnly)
	yesterday := today.UTC().AddDate(0, 0, -1).Format(time.DateOnly)
	switch s.LastActiveDate {
	case d:
		return s.StreakDays, d
	case yesterday:
		return s.StreakDays + 1, d
	}
	return 1, d
}
