package filestore

import (
	"path/filepath"

	"memoir-backend/domain/memoir"
	apperrors "memoir-backend/pkg/errors"
	"memoir-backend/pkg/utils"
)

// ListMemories returns the project's memories in stored order. A missing
// collection file reads as empty.
func (s *Store) ListMemories(projectID string) ([]memoir.Memory, error) {
	memories := []memoir.Memory{}
	if _, err := readJSONFile(s.memoriesPath(projectID), &memories); err != nil {
		return nil, apperrors.NewInternalError("read memories").WithCause(err)
	}
	return memories, nil
}

// CreateMemory appends a new memory and rewrites the collection.
func (s *Store) CreateMemory(projectID string, patch memoir.MemoryPatch) (memoir.Memory, error) {
	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	memories, err := s.ListMemories(projectID)
	if err != nil {
		return memoir.Memory{}, err
	}

	memory := patch.Apply(memoir.Memory{CreatedAt: utils.NowISO()})
	memory.ID = s.NextID()

	memories = append(memories, memory)
	if err := writeJSONFile(s.memoriesPath(projectID), memories); err != nil {
		return memoir.Memory{}, apperrors.NewInternalError("write memories").WithCause(err)
	}
	return memory, nil
}

// UpdateMemory patches the memory with the given id. The id is forced back
// to the path parameter and updatedAt is stamped server-side.
func (s *Store) UpdateMemory(projectID, memoryID string, patch memoir.MemoryPatch) (memoir.Memory, error) {
	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	memories, err := s.ListMemories(projectID)
	if err != nil {
		return memoir.Memory{}, err
	}

	for i, m := range memories {
		if m.ID != memoryID {
			continue
		}
		m = patch.Apply(m)
		m.ID = memoryID
		m.UpdatedAt = utils.NowISO()
		memories[i] = m

		if err := writeJSONFile(s.memoriesPath(projectID), memories); err != nil {
			return memoir.Memory{}, apperrors.NewInternalError("write memories").WithCause(err)
		}
		return m, nil
	}
	return memoir.Memory{}, apperrors.NewNotFoundError("memory")
}

// DeleteMemory filters the memory out and rewrites the collection.
// Deleting an id that is not present is not an error.
func (s *Store) DeleteMemory(projectID, memoryID string) error {
	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	memories, err := s.ListMemories(projectID)
	if err != nil {
		return err
	}

	kept := memories[:0]
	for _, m := range memories {
		if m.ID != memoryID {
			kept = append(kept, m)
		}
	}
	if err := writeJSONFile(s.memoriesPath(projectID), kept); err != nil {
		return apperrors.NewInternalError("write memories").WithCause(err)
	}
	return nil
}

func (s *Store) memoriesPath(projectID string) string {
	return filepath.Join(s.projectDir(projectID), memoriesFile)
}
