package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "memoir-backend/pkg/errors"
)

// MaxUploadSize is the server-side cap on one uploaded image.
const MaxUploadSize = 5 * 1024 * 1024

// allowedImageExts maps accepted MIME types, determined by content
// sniffing rather than the client-supplied header, to their extension.
var allowedImageExts = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// UploadService stores uploaded images under a per-project directory.
type UploadService struct {
	uploadRoot string
	logger     *zap.Logger
}

// NewUploadService creates the service rooted at uploadRoot.
func NewUploadService(uploadRoot string, logger *zap.Logger) *UploadService {
	return &UploadService{uploadRoot: uploadRoot, logger: logger}
}

// Save validates and persists one image, returning its relative URL of the
// form uploads/<projectID>/<generated-name>.
func (s *UploadService) Save(projectID string, file io.Reader, declaredSize int64) (string, error) {
	if declaredSize > MaxUploadSize {
		return "", apperrors.NewValidationError("File too large (max 5MB)")
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return "", apperrors.NewInternalError("read upload").WithCause(err)
	}
	if len(data) > MaxUploadSize {
		return "", apperrors.NewValidationError("File too large (max 5MB)")
	}

	mime := mimetype.Detect(data).String()
	ext, ok := allowedImageExts[mime]
	if !ok {
		return "", apperrors.NewValidationError(
			fmt.Sprintf("Invalid image type: %s. Allowed: jpg, png, gif, webp", mime))
	}

	dir := filepath.Join(s.uploadRoot, projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.NewInternalError("create upload directory").WithCause(err)
	}

	name := fmt.Sprintf("%s_%d.%s", uuid.NewString(), time.Now().Unix(), ext)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", apperrors.NewInternalError("save upload").WithCause(err)
	}

	s.logger.Info("image uploaded",
		zap.String("projectID", projectID),
		zap.String("file", name),
		zap.Int("bytes", len(data)),
	)
	return "uploads/" + projectID + "/" + name, nil
}
