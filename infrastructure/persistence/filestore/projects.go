package filestore

import (
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"memoir-backend/domain/memoir"
	apperrors "memoir-backend/pkg/errors"
	"memoir-backend/pkg/utils"
)

// ListProjects scans the data root for project directories, injecting the
// directory name as the project id. Newest first; records without a
// createdAt sort last. Unreadable entries are skipped so one corrupt
// project cannot take down the listing.
func (s *Store) ListProjects() ([]memoir.Project, error) {
	entries, err := os.ReadDir(s.dataRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return []memoir.Project{}, nil
		}
		return nil, apperrors.NewInternalError("list projects").WithCause(err)
	}

	projects := []memoir.Project{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		var proj memoir.Project
		found, err := readJSONFile(filepath.Join(s.dataRoot, entry.Name(), projectFile), &proj)
		if err != nil {
			s.logger.Warn("skipping unreadable project", zap.String("dir", entry.Name()), zap.Error(err))
			continue
		}
		if !found {
			continue
		}
		proj.ID = entry.Name()
		projects = append(projects, proj)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt > projects[j].CreatedAt
	})
	return projects, nil
}

// GetProject reads one project record, stamping the id from the path.
func (s *Store) GetProject(projectID string) (memoir.Project, error) {
	var proj memoir.Project
	found, err := readJSONFile(filepath.Join(s.projectDir(projectID), projectFile), &proj)
	if err != nil {
		return memoir.Project{}, apperrors.NewInternalError("read project").WithCause(err)
	}
	if !found {
		return memoir.Project{}, apperrors.NewNotFoundError("project")
	}
	proj.ID = projectID
	return proj, nil
}

// CreateProject provisions a new project directory with the project record
// and empty memory and chapter collections. Caller fields win over the
// defaults; the id never does.
func (s *Store) CreateProject(patch memoir.ProjectPatch) (memoir.Project, error) {
	proj := patch.Apply(memoir.Project{
		CreatedAt:         utils.NowISO(),
		InterviewStage:    0,
		InterviewQuestion: 0,
	})
	proj.ID = s.NextID()

	lock := s.projectLock(proj.ID)
	lock.Lock()
	defer lock.Unlock()

	dir := s.projectDir(proj.ID)
	if err := writeJSONFile(filepath.Join(dir, projectFile), proj); err != nil {
		return memoir.Project{}, apperrors.NewInternalError("create project").WithCause(err)
	}
	for _, name := range []string{memoriesFile, chaptersFile} {
		if err := writeJSONFile(filepath.Join(dir, name), []struct{}{}); err != nil {
			return memoir.Project{}, apperrors.NewInternalError("create project").WithCause(err)
		}
	}

	s.logger.Info("project created", zap.String("projectID", proj.ID))
	return proj, nil
}

// UpdateProject applies a patch to the stored record and stamps updatedAt.
func (s *Store) UpdateProject(projectID string, patch memoir.ProjectPatch) (memoir.Project, error) {
	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	proj, err := s.GetProject(projectID)
	if err != nil {
		return memoir.Project{}, err
	}

	proj = patch.Apply(proj)
	proj.ID = projectID
	proj.UpdatedAt = utils.NowISO()

	if err := writeJSONFile(filepath.Join(s.projectDir(projectID), projectFile), proj); err != nil {
		return memoir.Project{}, apperrors.NewInternalError("update project").WithCause(err)
	}
	return proj, nil
}

// DeleteProject removes the whole project directory. Deleting a project
// that does not exist is not an error.
func (s *Store) DeleteProject(projectID string) error {
	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	if err := os.RemoveAll(s.projectDir(projectID)); err != nil {
		return apperrors.NewInternalError("delete project").WithCause(err)
	}
	s.logger.Info("project deleted", zap.String("projectID", projectID))
	return nil
}
