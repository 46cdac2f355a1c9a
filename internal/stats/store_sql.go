package stats

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// ensure creates the player row so the UPDATEs below always hit.
func (s *SQLStore) ensure(ctx context.Context, player string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO player_stats (player, updated_at) VALUES ($1, $2)
		ON CONFLICT (player) DO NOTHING`, player, s.now().Unix())
	return err
}

func (s *SQLStore) Get(ctx context.Context, player string) (Stats, error) {
	st := Stats{BestScores: map[string]int{}}
	err := s.db.QueryRowContext(ctx, `SELECT xp, streak_days, last_active_date, total_quizzes
		FROM player_stats WHERE player=$1`, player).
		Scan(&st.XP, &st.StreakDays, &st.LastActiveDate, &st.TotalQuizzes)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Stats{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT topic_id, percentage FROM best_scores WHERE player=$1`, player)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var topic string
		var pct int
		if err := rows.Scan(&topic, &pct); err != nil {
			return Stats{}, err
		}
		st.BestScores[topic] = pct
	}
	return st, rows.Err()
}

func (s *SQLStore) AddXP(ctx context.Context, player string, amount int) error {
	if err := s.ensure(ctx, player); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `UPDATE player_stats SET xp = xp + $1, updated_at=$2 WHERE player=$3`,
		amount, s.now().Unix(), player)
	return err
}

func (s *SQLStore) UpdateBestScore(ctx context.Context, player, topicID string, percentage int) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO best_scores (player, topic_id, percentage) VALUES ($1,$2,$3)
		ON CONFLICT (player, topic_id) DO UPDATE SET percentage = EXCLUDED.percentage
		WHERE EXCLUDED.percentage > best_scores.percentage`,
		player, topicID, percentage)
	return err
}

func (s *SQLStore) UpdateStreak(ctx context.Context, player string, today time.Time) (Stats, error) {
	if err := s.ensure(ctx, player); err != nil {
		return Stats{}, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, err
	}
	defer tx.Rollback()

	var cur Stats
	if err := tx.QueryRowContext(ctx, `SELECT streak_days, last_active_date FROM player_stats WHERE player=$1`, player).
		Scan(&cur.StreakDays, &cur.LastActiveDate); err != nil {
		return Stats{}, err
	}
	days, date := nextStreak(cur, today)
	if _, err := tx.ExecContext(ctx, `UPDATE player_stats SET streak_days=$1, last_active_date=$2, updated_at=$3 WHERE player=$4`,
		days, date, s.now().Unix(), player); err != nil {
		return Stats{}, err
	}
	if err := tx.Commit(); err != nil {
		return Stats{}, err
	}
	return s.Get(ctx, player)
}

func (s *SQLStore) IncrementQuizzes(ctx context.Context, player string) error {
	if err := s.ensure(ctx, player); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `UPDATE player_stats SET total_quizzes = total_quizzes + 1, updated_at=$1 WHERE player=$2`,
		s.now().Unix(), player)
	return err
}

func (s *SQLStore) SaveProgress(ctx context.Context, player string, p Progress) error {
	if p.UserAnswers == nil {
		p.UserAnswers = []UserAnswer{}
	}
	buf, err := json.Marshal(p.UserAnswers)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quiz_progress (player, topic_id, question_index, answers_json, score, saved_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (player) DO UPDATE SET topic_id=EXCLUDED.topic_id, question_index=EXCLUDED.question_index,
			answers_json=EXCLUDED.answers_json, score=EXCLUDED.score, saved_at=EXCLUDED.saved_at`,
		player, p.TopicID, p.CurrentQuestionIndex, string(buf), p.Score, s.now().UnixMilli())
	return err
}

// GetProgress returns ErrNoProgress when nothing is saved or the snapshot is
// older than ProgressTTL.
func (s *SQLStore) GetProgress(ctx context.Context, player string) (Progress, error) {
	var p Progress
	var answers string
	err := s.db.QueryRowContext(ctx, `SELECT topic_id, question_index, answers_json, score, saved_at
		FROM quiz_progress WHERE player=$1`, player).
		Scan(&p.TopicID, &p.CurrentQuestionIndex, &answers, &p.Score, &p.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return Progress{}, ErrNoProgress
	}
	if err != nil {
		return Progress{}, err
	}
	if !p.Recent(s.now()) {
		return Progress{}, ErrNoProgress
	}
	if err := json.Unmarshal([]byte(answers), &p.UserAnswers); err != nil {
		return Progress{}, fmt.Errorf("progress answers: %w", err)
	}
	return p, nil
}

func (s *SQLStore) ClearProgress(ctx context.Context, player string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM quiz_progress WHERE player=$1`, player)
	return err
}

// SaveWrongAnswers replaces the player's review list.
func (s *SQLStore) SaveWrongAnswers(ctx context.Context, player string, wrong []WrongAnswer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM wrong_answers WHERE player=$1`, player); err != nil {
		return err
	}
	for i, w := range wrong {
		if _, err := tx.ExecContext(ctx, `INSERT INTO wrong_answers
			(player, seq, topic_id, question_id, question_text, correct_answer_text, user_answer_text)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			player, i, w.TopicID, w.QuestionID, w.QuestionText, w.CorrectAnswerText, w.UserAnswerText); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) WrongAnswers(ctx context.Context, player string) ([]WrongAnswer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT topic_id, question_id, question_text, correct_answer_text, user_answer_text
		FROM wrong_answers WHERE player=$1 ORDER BY seq`, player)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []WrongAnswer{}
	for rows.Next() {
		var w WrongAnswer
		if err := rows.Scan(&w.TopicID, &w.QuestionID, &w.QuestionText, &w.CorrectAnswerText, &w.UserAnswerText); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
