// Package activity keeps an append-only log of finished quizzes for the
// parent dashboard. Offsets only grow, so readers page with "after".
package activity

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

const TypeQuizFinished = "quiz.finished"

const maxPage = 200

type Event struct {
	Offset    int64           `json:"offset"`
	Player    string          `json:"player"`
	Type      string          `json:"type"`
	TopicID   string          `json:"topicId,omitempty"`
	Data      json.RawMessage `json:"data"`
	CreatedAt int64           `json:"createdAt"` // unix millis
}

// QuizFinished is the payload of a TypeQuizFinished event.
type QuizFinished struct {
	Correct    int  `json:"correct"`
	Total      int  `json:"total"`
	Percentage int  `json:"percentage"`
	Passed     bool `json:"passed"`
	XP         int  `json:"xp"`
}

type Repo struct {
	db  *sql.DB
	now func() time.Time
}

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db, now: time.Now} }

// Append stores e with the current time. data is encoded as JSON.
func (r *Repo) Append(ctx context.Context, player, typ, topicID string, data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO event_log (player, typ, topic_id, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		player, typ, topicID, string(b), r.now().UnixMilli())
	return err
}

// Since returns up to limit events with an offset above after, oldest first.
// An empty player matches everyone.
func (r *Repo) Since(ctx context.Context, after int64, player string, limit int) ([]Event, error) {
	if limit <= 0 || limit > maxPage {
		limit = maxPage
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT offset_id, player, typ, topic_id, data, created_at FROM event_log
		 WHERE offset_id > $1 AND ($2 = '' OR player = $2)
		 ORDER BY offset_id LIMIT $3`, after, player, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var e Event
		var data string
		if err := rows.Scan(&e.Offset, &e.Player, &e.Type, &e.TopicID, &data, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Data = json.RawMessage(data)
		out = append(out, e)
	}
	return out, rows.Err()
}
