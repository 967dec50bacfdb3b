package filestore

import (
	"path/filepath"

	"memoir-backend/domain/memoir"
	apperrors "memoir-backend/pkg/errors"
	"memoir-backend/pkg/utils"
)

// ListChapters returns the project's chapters in stored order, which is
// the display order. A missing collection file reads as empty.
func (s *Store) ListChapters(projectID string) ([]memoir.Chapter, error) {
	chapters := []memoir.Chapter{}
	if _, err := readJSONFile(s.chaptersPath(projectID), &chapters); err != nil {
		return nil, apperrors.NewInternalError("read chapters").WithCause(err)
	}
	return chapters, nil
}

// CreateChapter appends a new chapter with an empty memory list and empty
// content unless the caller supplies them.
func (s *Store) CreateChapter(projectID string, patch memoir.ChapterPatch) (memoir.Chapter, error) {
	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	chapters, err := s.ListChapters(projectID)
	if err != nil {
		return memoir.Chapter{}, err
	}

	chapter := patch.Apply(memoir.Chapter{
		MemoryIDs: []string{},
		Content:   "",
		CreatedAt: utils.NowISO(),
	})
	chapter.ID = s.NextID()

	chapters = append(chapters, chapter)
	if err := writeJSONFile(s.chaptersPath(projectID), chapters); err != nil {
		return memoir.Chapter{}, apperrors.NewInternalError("write chapters").WithCause(err)
	}
	return chapter, nil
}

// UpdateChapter patches the chapter with the given id, forcing the id back
// to the path parameter and stamping updatedAt.
func (s *Store) UpdateChapter(projectID, chapterID string, patch memoir.ChapterPatch) (memoir.Chapter, error) {
	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	chapters, err := s.ListChapters(projectID)
	if err != nil {
		return memoir.Chapter{}, err
	}

	for i, c := range chapters {
		if c.ID != chapterID {
			continue
		}
		c = patch.Apply(c)
		c.ID = chapterID
		c.UpdatedAt = utils.NowISO()
		chapters[i] = c

		if err := writeJSONFile(s.chaptersPath(projectID), chapters); err != nil {
			return memoir.Chapter{}, apperrors.NewInternalError("write chapters").WithCause(err)
		}
		return c, nil
	}
	return memoir.Chapter{}, apperrors.NewNotFoundError("chapter")
}

// DeleteChapter filters the chapter out and rewrites the collection.
// Idempotent: deleting an absent id is not an error.
func (s *Store) DeleteChapter(projectID, chapterID string) error {
	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	chapters, err := s.ListChapters(projectID)
	if err != nil {
		return err
	}

	kept := chapters[:0]
	for _, c := range chapters {
		if c.ID != chapterID {
			kept = append(kept, c)
		}
	}
	if err := writeJSONFile(s.chaptersPath(projectID), kept); err != nil {
		return apperrors.NewInternalError("write chapters").WithCause(err)
	}
	return nil
}

// ReorderChapters rewrites the collection with the named ids first, in the
// given order, then any chapters the order list omitted in their original
// relative order. Omission never drops data; unknown ids are ignored.
func (s *Store) ReorderChapters(projectID string, order []string) ([]memoir.Chapter, error) {
	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	chapters, err := s.ListChapters(projectID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]memoir.Chapter, len(chapters))
	for _, c := range chapters {
		byID[c.ID] = c
	}

	mentioned := make(map[string]bool, len(order))
	sorted := make([]memoir.Chapter, 0, len(chapters))
	for _, id := range order {
		if c, ok := byID[id]; ok && !mentioned[id] {
			sorted = append(sorted, c)
			mentioned[id] = true
		}
	}
	for _, c := range chapters {
		if !mentioned[c.ID] {
			sorted = append(sorted, c)
		}
	}

	if err := writeJSONFile(s.chaptersPath(projectID), sorted); err != nil {
		return nil, apperrors.NewInternalError("write chapters").WithCause(err)
	}
	return sorted, nil
}

func (s *Store) chaptersPath(projectID string) string {
	return filepath.Join(s.projectDir(projectID), chaptersFile)
}
