// Package filestore persists memoir projects as one directory per project
// under a data root, each holding project.json, memories.json and
// chapters.json. Every write rewrites the whole backing file; a per-project
// mutex serializes the read-modify-write cycle so concurrent requests
// against the same project cannot lose updates.
package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	projectFile  = "project.json"
	memoriesFile = "memories.json"
	chaptersFile = "chapters.json"
)

// Store reads and writes the per-project JSON files.
type Store struct {
	dataRoot string
	logger   *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	idMu   sync.Mutex
	lastID int64
}

// New creates a store rooted at dataRoot. The directory is created on
// first write, not here, so constructing a store never fails.
func New(dataRoot string, logger *zap.Logger) *Store {
	return &Store{
		dataRoot: dataRoot,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
	}
}

// DataRoot returns the root directory holding the project directories.
func (s *Store) DataRoot() string {
	return s.dataRoot
}

// NextID returns a decimal-string id derived from the current time in
// milliseconds. Ids are strictly increasing even within one millisecond,
// which keeps the all-digits path contract while removing the collision
// risk of raw timestamps.
func (s *Store) NextID() string {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// projectLock returns the mutex serializing writes for one project.
func (s *Store) projectLock(projectID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[projectID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[projectID] = lock
	}
	return lock
}

func (s *Store) projectDir(projectID string) string {
	return filepath.Join(s.dataRoot, projectID)
}

// readJSONFile decodes path into v. A missing file leaves v untouched and
// returns false without error, so absent collections read as empty.
func readJSONFile(path string, v interface{}) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// writeJSONFile replaces path with the pretty-printed encoding of v,
// creating the parent directory if needed.
func writeJSONFile(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
