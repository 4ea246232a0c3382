// Package store handles SQLite persistence of study sessions.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/fiszki/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			deck_path TEXT NOT NULL,
			unit TEXT NOT NULL,
			correct INTEGER NOT NULL,
			wrong INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_word_stats (
			session_id INTEGER NOT NULL,
			item_id TEXT NOT NULL,
			word TEXT NOT NULL,
			correct INTEGER NOT NULL,
			wrong INTEGER NOT NULL,
			PRIMARY KEY (session_id, item_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_session_word_stats_item ON session_word_stats(item_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a finished session and its per-word tallies.
// Sessions without answers are not stored and return id 0.
func (s *Store) InsertSession(ctx context.Context, summary model.SessionSummary) (id int64, err error) {
	if summary.WordsReviewed() == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, deck_path, unit, correct, wrong, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		summary.StartedAt.UTC().Format(time.RFC3339Nano),
		summary.EndedAt.UTC().Format(time.RFC3339Nano),
		summary.DeckPath,
		summary.Unit,
		summary.Correct,
		summary.Wrong,
		summary.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(summary.Words) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO session_word_stats (session_id, item_id, word, correct, wrong)
			 VALUES (?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, w := range summary.Words {
			key := w.ItemID
			if key == "" {
				key = w.Word
			}
			if _, err = stmt.ExecContext(ctx, id, key, w.Word, w.Correct, w.Wrong); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListSessions returns session aggregates filtered by stats config, oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Unit != "" {
		clauses = append(clauses, "unit = ?")
		args = append(args, cfg.Unit)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, unit, correct, wrong, duration_ms
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.Unit, &agg.Correct, &agg.Wrong, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	return sessions, nil
}

// ListWordAggregatesForSessions sums per-word answers across sessions.
func (s *Store) ListWordAggregatesForSessions(ctx context.Context, sessionIDs []int64) ([]model.WordAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(sessionIDs))
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT item_id, MAX(word) AS word, SUM(correct) AS correct, SUM(wrong) AS wrong
		FROM session_word_stats
		WHERE session_id IN (%s)
		GROUP BY item_id
		ORDER BY word`, strings.Join(placeholders, ","))
	return s.queryWordAggregates(ctx, query, args...)
}

// GetWeakWords returns the n words with the highest error rate over the
// most recent window sessions.
func (s *Store) GetWeakWords(ctx context.Context, window, n int) ([]model.WordAggregate, error) {
	if window <= 0 || n <= 0 {
		return nil, nil
	}
	query := `WITH recent_sessions AS (
		SELECT id FROM sessions
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT ws.item_id, MAX(ws.word) AS word, SUM(ws.correct) AS correct, SUM(ws.wrong) AS wrong
	FROM session_word_stats ws
	JOIN recent_sessions r ON r.id = ws.session_id
	GROUP BY ws.item_id
	HAVING SUM(ws.wrong) > 0
	ORDER BY CAST(SUM(ws.wrong) AS REAL) / (SUM(ws.correct) + SUM(ws.wrong)) DESC, SUM(ws.wrong) DESC, word ASC
	LIMIT ?`
	return s.queryWordAggregates(ctx, query, window, n)
}

func (s *Store) queryWordAggregates(ctx context.Context, query string, args ...any) ([]model.WordAggregate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.WordAggregate
	for rows.Next() {
		var agg model.WordAggregate
		if err := rows.Scan(&agg.ItemID, &agg.Word, &agg.Correct, &agg.Wrong); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// TopUnits returns the n units with the most answers across all sessions.
func (s *Store) TopUnits(ctx context.Context, n int) ([]model.UnitTotal, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT unit, SUM(correct + wrong) AS reviewed
		 FROM sessions
		 GROUP BY unit
		 ORDER BY reviewed DESC, unit ASC
		 LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.UnitTotal
	for rows.Next() {
		var total model.UnitTotal
		if err := rows.Scan(&total.Unit, &total.WordsReviewed); err != nil {
			return nil, err
		}
		result = append(result, total)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
