package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:quizsheet.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/quizsheet?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS player_stats (
  player TEXT PRIMARY KEY,
  xp INTEGER NOT NULL DEFAULT 0,
  streak_days INTEGER NOT NULL DEFAULT 0,
  last_active_date TEXT NOT NULL DEFAULT '',
  total_quizzes INTEGER NOT NULL DEFAULT 0,
  updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS best_scores (
  player TEXT NOT NULL,
  topic_id TEXT NOT NULL,
  percentage INTEGER NOT NULL,
  PRIMARY KEY (player, topic_id)
);

CREATE TABLE IF NOT EXISTS quiz_progress (
  player TEXT PRIMARY KEY,
  topic_id TEXT NOT NULL,
  question_index INTEGER NOT NULL,
  answers_json TEXT NOT NULL,
  score INTEGER NOT NULL,
  saved_at INTEGER NOT NULL -- unix millis
);

CREATE TABLE IF NOT EXISTS wrong_answers (
  player TEXT NOT NULL,
  seq INTEGER NOT NULL,
  topic_id TEXT NOT NULL,
  question_id TEXT NOT NULL,
  question_text TEXT NOT NULL,
  correct_answer_text TEXT NOT NULL,
  user_answer_text TEXT NOT NULL,
  PRIMARY KEY (player, seq)
);

CREATE TABLE IF NOT EXISTS event_log (
  offset_id INTEGER PRIMARY KEY AUTOINCREMENT,
  player TEXT NOT NULL,
  typ TEXT NOT NULL, -- e.g. quiz.finished
  topic_id TEXT NOT NULL DEFAULT '',
  data TEXT NOT NULL, -- JSON payload
  created_at INTEGER NOT NULL -- unix millis
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS player_stats (
  player TEXT PRIMARY KEY,
  xp INTEGER NOT NULL DEFAULT 0,
  streak_days INTEGER NOT NULL DEFAULT 0,
  last_active_date TEXT NOT NULL DEFAULT '',
  total_quizzes INTEGER NOT NULL DEFAULT 0,
  updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS best_scores (
  player TEXT NOT NULL,
  topic_id TEXT NOT NULL,
  percentage INTEGER NOT NULL,
  PRIMARY KEY (player, topic_id)
);

CREATE TABLE IF NOT EXISTS quiz_progress (
  player TEXT PRIMARY KEY,
  topic_id TEXT NOT NULL,
  question_index INTEGER NOT NULL,
  answers_json TEXT NOT NULL,
  score INTEGER NOT NULL,
  saved_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS wrong_answers (
  player TEXT NOT NULL,
  seq INTEGER NOT NULL,
  topic_id TEXT NOT NULL,
  question_id TEXT NOT NULL,
  question_text TEXT NOT NULL,
  correct_answer_text TEXT NOT NULL,
  user_answer_text TEXT NOT NULL,
  PRIMARY KEY (player, seq)
);

CREATE TABLE IF NOT EXISTS event_log (
  offset_id BIGSERIAL PRIMARY KEY,
  player TEXT NOT NULL,
  typ TEXT NOT NULL,
  topic_id TEXT NOT NULL DEFAULT '',
  data TEXT NOT NULL,
  created_at BIGINT NOT NULL
);
`
