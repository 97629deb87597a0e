package highscore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/tomz197/snake/internal/game"
	_ "modernc.org/sqlite"
)

// DBStore is a game.ScoreStore and game.ScoreRecorder backed by a SQLite
// database. It suits the servers, where many sessions share one best score
// and every finished game is recorded in the scores table.
type DBStore struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenDBStore opens (creating if needed) the database at path.
func OpenDBStore(path string, logger *log.Logger) (*DBStore, error) {
	if logger == nil {
		logger = log.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One writer keeps SQLite from returning SQLITE_BUSY between sessions.
	db.SetMaxOpenConns(1)

	s := &DBStore{db: db, logger: logger}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *DBStore) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS high_score (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			score INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			date DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// Close releases the database.
func (s *DBStore) Close() error { return s.db.Close() }

// Load returns the stored best score, or 0 if none has been saved.
func (s *DBStore) Load() int {
	var score int
	err := s.db.QueryRow(`SELECT score FROM high_score WHERE id = 1`).Scan(&score)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Debug("high score not loaded", "err", err)
		}
		return 0
	}
	return score
}

// Save raises the best score if score beats it. Failures are logged and
// otherwise ignored.
func (s *DBStore) Save(score int) {
	_, err := s.db.Exec(`INSERT INTO high_score (id, score) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET score = excluded.score WHERE excluded.score > high_score.score`, score)
	if err != nil {
		s.logger.Debug("high score not saved", "err", err)
	}
}

// Record adds a finished session to the scores table. Failures are logged
// and otherwise ignored.
func (s *DBStore) Record(score int) {
	if _, err := s.db.Exec(`INSERT INTO scores (score) VALUES (?)`, score); err != nil {
		s.logger.Debug("score not recorded", "err", err)
	}
}

// Top returns up to n recorded scores, best first.
func (s *DBStore) Top(n int) ([]int, error) {
	rows, err := s.db.Query(`SELECT score FROM scores ORDER BY score DESC, id ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		out = append(out, score)
	}
	return out, rows.Err()
}

// Open returns a DBStore when dbPath is set and a FileStore for filePath
// otherwise.
func Open(dbPath, filePath string, logger *log.Logger) (game.ScoreStore, func() error, error) {
	if dbPath == "" {
		return NewFileStore(filePath, logger), func() error { return nil }, nil
	}
	s, err := OpenDBStore(dbPath, logger)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}
