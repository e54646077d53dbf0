// Package storage provides SQLite-based persistence for finished-game
// results. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Only outcomes are stored, never in-progress game state.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// ResultEntry represents a single won game.
type ResultEntry struct {
	ID        int64
	Board     string // board signature, e.g. "9x9+10"
	Millis    int64  // elapsed play time in milliseconds
	CreatedAt time.Time
}

// BoardKey builds the signature under which results for a board shape are
// grouped: "<width>x<height>+<mines>".
func BoardKey(width, height, mineCount int) string {
	return fmt.Sprintf("%dx%d+%d", width, height, mineCount)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			board TEXT NOT NULL,
			millis INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_board ON results(board);
		CREATE INDEX IF NOT EXISTS idx_results_best ON results(board, millis ASC);
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

// SaveResult records a won game for the given board signature.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(board string, millis int64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO results (board, millis) VALUES (?, ?)",
		board, millis,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopTimes retrieves the best N times for the given board signature.
// Results are ordered fastest first.
func (s *Store) TopTimes(board string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, board, millis, created_at
		 FROM results
		 WHERE board = ?
		 ORDER BY millis ASC
		 LIMIT ?`,
		board, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Board, &e.Millis, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseCreatedAt(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestTime returns the fastest time in milliseconds for the given board
// signature. Returns 0 if no results exist.
func (s *Store) BestTime(board string) (int64, error) {
	var millis sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(millis) FROM results WHERE board = ?",
		board,
	).Scan(&millis)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !millis.Valid {
		return 0, nil
	}

	return millis.Int64, nil
}

// Boards returns the distinct board signatures that have recorded results,
// most recently played first.
func (s *Store) Boards() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT board FROM results GROUP BY board ORDER BY MAX(created_at) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query boards: %w", err)
	}
	defer rows.Close()

	var boards []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		boards = append(boards, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return boards, nil
}

// ClearResults deletes all results for the given board signature.
func (s *Store) ClearResults(board string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE board = ?", board)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// BoardStats contains aggregated statistics for a board signature.
type BoardStats struct {
	Board      string
	GamesWon   int
	BestMillis int64
	AvgMillis  float64
	LastPlayed time.Time
}

// GetBoardStats retrieves aggregated statistics for a board signature.
func (s *Store) GetBoardStats(board string) (*BoardStats, error) {
	stats := &BoardStats{Board: board}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(millis), 0), COALESCE(AVG(millis), 0)
		 FROM results WHERE board = ?`,
		board,
	).Scan(&stats.GamesWon, &stats.BestMillis, &stats.AvgMillis)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get board stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM results WHERE board = ? ORDER BY created_at DESC LIMIT 1`,
		board,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseCreatedAt(lastPlayed)
	}

	return stats, nil
}

// parseCreatedAt handles both time.Time and string datetimes from SQLite.
func parseCreatedAt(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
