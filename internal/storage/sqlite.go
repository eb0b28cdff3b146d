// Package storage provides the persistence backends of the runner profile.
// The default backend is SQLite through the pure-Go modernc.org/sqlite
// driver; a legacy XML file and a Redis leaderboard mirror are also provided.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/boko-runner/internal/profile"
)

// Store manages the SQLite database holding the profile and the game history.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// RunStats contains aggregated statistics over the game history.
type RunStats struct {
	Games      int
	BestScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string, logger *log.Logger) (*Store, error) {
	path, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}
	store := &Store{db: db, logger: logger}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// expandHome expands a leading ~ to the home directory.
func expandHome(path string) (string, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS stats (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS shop_items (
			id TEXT PRIMARY KEY,
			bought_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			difficulty INTEGER NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(difficulty, score DESC);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			difficulty INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			distance INTEGER NOT NULL DEFAULT 0,
			enemies INTEGER NOT NULL DEFAULT 0,
			flattened INTEGER NOT NULL DEFAULT 0,
			coins INTEGER NOT NULL DEFAULT 0,
			coins_value INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			played_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_played_at ON runs(played_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the profile. An empty database yields the default profile.
// Malformed rows are skipped and logged.
func (s *Store) Load(ctx context.Context) (profile.Data, error) {
	data := profile.DefaultData()

	settings, err := s.queryPairs(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return profile.DefaultData(), err
	}
	var bad []string
	data.Settings, bad = decodeSettings(settings)
	for _, key := range bad {
		s.logger.Warn("discarding invalid setting", "key", key, "value", settings[key])
	}

	stats, err := s.queryPairs(ctx, "SELECT key, value FROM stats")
	if err != nil {
		return profile.DefaultData(), err
	}
	for key, raw := range stats {
		n, err := parseCount(raw)
		if err != nil {
			s.logger.Warn("discarding invalid stat", "key", key, "value", raw)
			continue
		}
		data.Stats.Set(key, n)
	}

	owned, err := s.queryPairs(ctx, "SELECT id, '' FROM shop_items")
	if err != nil {
		return profile.DefaultData(), err
	}
	for _, it := range profile.Catalogue {
		if _, ok := owned[string(it.ID)]; ok {
			data.Owned = append(data.Owned, it.ID)
		}
	}

	for _, diff := range profile.Difficulties {
		scores, err := s.TopScores(ctx, diff, profile.MaxScores)
		if err != nil {
			return profile.DefaultData(), err
		}
		data.Scores[diff] = scores
	}

	return data, nil
}

func (s *Store) queryPairs(ctx context.Context, query string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profile: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Save replaces the stored profile in a single transaction.
func (s *Store) Save(ctx context.Context, d profile.Data) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	settings := encodeSettings(d.Settings)
	for _, key := range settingKeys {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, settings[key],
		); err != nil {
			return fmt.Errorf("storage: cannot save setting %s: %w", key, err)
		}
	}

	for _, key := range profile.StatKeys {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stats (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, d.Stats.Get(key),
		); err != nil {
			return fmt.Errorf("storage: cannot save stat %s: %w", key, err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM shop_items WHERE id NOT IN (SELECT value FROM json_each(?))", ownedJSON(d.Owned)); err != nil {
		return fmt.Errorf("storage: cannot prune shop items: %w", err)
	}
	for _, id := range d.Owned {
		if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO shop_items (id) VALUES (?)", string(id)); err != nil {
			return fmt.Errorf("storage: cannot save shop item %s: %w", id, err)
		}
	}

	for _, diff := range profile.Difficulties {
		if err := saveScores(ctx, tx, diff, d.Scores[diff]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit profile: %w", err)
	}
	return nil
}

// saveScores keeps the rows of scores still on the leaderboard so their
// creation time survives, and replaces the rest.
func saveScores(ctx context.Context, tx *sql.Tx, diff profile.Difficulty, scores []int) error {
	keep := make(map[int]bool, len(scores))
	for _, sc := range scores {
		keep[sc] = true
	}

	rows, err := tx.QueryContext(ctx, "SELECT id, score FROM scores WHERE difficulty = ?", int(diff))
	if err != nil {
		return fmt.Errorf("storage: cannot query scores: %w", err)
	}
	var stale []int64
	present := make(map[int]bool)
	for rows.Next() {
		var id int64
		var score int
		if err := rows.Scan(&id, &score); err != nil {
			rows.Close()
			return fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if !keep[score] || present[score] {
			stale = append(stale, id)
			continue
		}
		present[score] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("storage: row iteration error: %w", err)
	}

	for _, id := range stale {
		if _, err := tx.ExecContext(ctx, "DELETE FROM scores WHERE id = ?", id); err != nil {
			return fmt.Errorf("storage: cannot delete score: %w", err)
		}
	}
	for _, sc := range scores {
		if present[sc] {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO scores (difficulty, score) VALUES (?, ?)",
			int(diff), sc,
		); err != nil {
			return fmt.Errorf("storage: cannot save score: %w", err)
		}
	}
	return nil
}

func ownedJSON(ids []profile.ItemID) string {
	b := []byte{'['}
	for i, id := range ids {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendQuote(b, string(id))
	}
	return string(append(b, ']'))
}

// TopScores returns the best scores of a difficulty in ascending order.
// Zero scores are never returned.
func (s *Store) TopScores(ctx context.Context, diff profile.Difficulty, limit int) ([]int, error) {
	if limit <= 0 {
		limit = profile.MaxScores
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT score
		 FROM scores
		 WHERE difficulty = ? AND score > 0
		 ORDER BY score DESC
		 LIMIT ?`,
		int(diff), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var sc int
		if err := rows.Scan(&sc); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		scores = append([]int{sc}, scores...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return scores, nil
}

// RecordRun appends a finished game to the history.
func (s *Store) RecordRun(ctx context.Context, r profile.GameRecord) error {
	playedAt := r.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs
		 (difficulty, score, distance, enemies, flattened, coins, coins_value, duration_ms, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int(r.Difficulty),
		r.Score,
		r.Distance,
		r.Enemies,
		r.Flattened,
		r.Coins,
		r.CoinsValue,
		r.Duration.Milliseconds(),
		playedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent games, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]profile.GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT difficulty, score, distance, enemies, flattened, coins, coins_value, duration_ms, played_at
		 FROM runs
		 ORDER BY played_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []profile.GameRecord
	for rows.Next() {
		var r profile.GameRecord
		var diff int
		var durationMS int64
		var playedAt any
		if err := rows.Scan(
			&diff,
			&r.Score,
			&r.Distance,
			&r.Enemies,
			&r.Flattened,
			&r.Coins,
			&r.CoinsValue,
			&durationMS,
			&playedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Difficulty = profile.Difficulty(diff)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.PlayedAt = parseTime(playedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Stats aggregates the game history of a difficulty.
func (s *Store) Stats(ctx context.Context, diff profile.Difficulty) (*RunStats, error) {
	stats := &RunStats{}
	var lastPlayed any

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(played_at)
		 FROM runs WHERE difficulty = ?`,
		int(diff),
	).Scan(&stats.Games, &stats.BestScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

const timeLayout = "2006-01-02 15:04:05"

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
