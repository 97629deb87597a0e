// Package highscore persists the best score, either as plain decimal text
// in a file or in a SQLite database.
package highscore

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	flock "github.com/theckman/go-flock"
	"github.com/tomz197/snake/internal/config"
)

// FileStore is a game.ScoreStore backed by a single text file. It is safe
// for concurrent use and holds an advisory lock on a sibling ".lock" file
// while reading or writing, so several processes may share one path.
// Save never lowers the stored value.
type FileStore struct {
	path   string
	lock   *flock.Flock
	logger *log.Logger
	mu     sync.Mutex
}

// NewFileStore creates a store for path. An empty path selects
// config.DefaultHighScorePath; a nil logger selects log.Default().
func NewFileStore(path string, logger *log.Logger) *FileStore {
	if path == "" {
		path = config.DefaultHighScorePath
	}
	if logger == nil {
		logger = log.Default()
	}
	return &FileStore{
		path:   path,
		lock:   flock.NewFlock(path + ".lock"),
		logger: logger,
	}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load returns the stored score. A missing, unreadable or malformed file
// yields 0.
func (s *FileStore) Load() int {
	score, err := s.locked(func() (int, error) { return s.read() })
	if err != nil {
		s.logger.Debug("high score not loaded", "path", s.path, "err", err)
		return 0
	}
	return score
}

// Save writes score unless the file already holds a higher one. Failures
// are logged and otherwise ignored.
func (s *FileStore) Save(score int) {
	_, err := s.locked(func() (int, error) {
		if current, err := s.read(); err == nil && current >= score {
			return current, nil
		}
		return score, os.WriteFile(s.path, []byte(strconv.Itoa(score)), 0o644)
	})
	if err != nil {
		s.logger.Debug("high score not saved", "path", s.path, "err", err)
	}
}

// locked runs fn while holding both the in-process mutex and the file lock.
func (s *FileStore) locked(fn func() (int, error)) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return 0, fmt.Errorf("lock %s: %w", s.path, err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Debug("high score unlock failed", "path", s.path, "err", err)
		}
	}()
	return fn()
}

func (s *FileStore) read() (int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, err
	}
	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if score < 0 {
		return 0, fmt.Errorf("parse %s: negative score %d", s.path, score)
	}
	return score, nil
}
