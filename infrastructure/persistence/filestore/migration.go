package filestore

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"memoir-backend/domain/memoir"
	apperrors "memoir-backend/pkg/errors"
)

// Migrate moves a legacy flat layout, where a single project's files sat
// directly under the data root, into a project directory with a freshly
// assigned id. It runs at most once meaningfully and is safe to call on
// every boot: when no legacy project.json exists it does nothing.
func (s *Store) Migrate() error {
	legacy := filepath.Join(s.dataRoot, projectFile)

	var proj memoir.Project
	found, err := readJSONFile(legacy, &proj)
	if err != nil {
		return apperrors.NewInternalError("read legacy project").WithCause(err)
	}
	if !found {
		return nil
	}

	proj.ID = s.NextID()
	dir := s.projectDir(proj.ID)
	if err := writeJSONFile(filepath.Join(dir, projectFile), proj); err != nil {
		return apperrors.NewInternalError("migrate project").WithCause(err)
	}

	// Collections move byte for byte; only the project record is restamped.
	for _, name := range []string{memoriesFile, chaptersFile} {
		src := filepath.Join(s.dataRoot, name)
		data, err := os.ReadFile(src)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return apperrors.NewInternalError("migrate " + name).WithCause(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return apperrors.NewInternalError("migrate " + name).WithCause(err)
		}
		if err := os.Remove(src); err != nil {
			return apperrors.NewInternalError("migrate " + name).WithCause(err)
		}
	}

	if err := os.Remove(legacy); err != nil {
		return apperrors.NewInternalError("remove legacy project").WithCause(err)
	}

	s.logger.Info("migrated legacy flat layout", zap.String("projectID", proj.ID))
	return nil
}
