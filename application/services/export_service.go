package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"memoir-backend/domain/memoir"
	"memoir-backend/infrastructure/persistence/filestore"
	apperrors "memoir-backend/pkg/errors"
	"memoir-backend/pkg/utils"
)

// Document is a rendered export ready to be sent as a download.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Backup is the full-fidelity JSON export shape.
type Backup struct {
	Project    memoir.Project   `json:"project"`
	Memories   []memoir.Memory  `json:"memories"`
	Chapters   []memoir.Chapter `json:"chapters"`
	ExportedAt string           `json:"exportedAt"`
}

// ExportService renders a stored project into downloadable documents.
type ExportService struct {
	store      *filestore.Store
	uploadRoot string
	logger     *zap.Logger
}

// NewExportService creates the service. uploadRoot is where inline image
// references of the form uploads/<project>/<file> resolve to.
func NewExportService(store *filestore.Store, uploadRoot string, logger *zap.Logger) *ExportService {
	return &ExportService{store: store, uploadRoot: uploadRoot, logger: logger}
}

// JSON renders the complete project state as a backup document.
func (s *ExportService) JSON(projectID string) (Document, error) {
	project, memories, chapters, err := s.load(projectID)
	if err != nil {
		return Document{}, err
	}

	body, err := json.MarshalIndent(Backup{
		Project:    project,
		Memories:   memories,
		Chapters:   chapters,
		ExportedAt: utils.NowISO(),
	}, "", "  ")
	if err != nil {
		return Document{}, apperrors.NewInternalError("encode backup").WithCause(err)
	}

	return Document{
		Filename:    "memoir-backup.json",
		ContentType: "application/json; charset=utf-8",
		Body:        body,
	}, nil
}

// Text renders the memoir as plain text: a title and author header, then
// each chapter between 40-character delimiter lines. Chapter content is
// written verbatim, HTML tags included.
func (s *ExportService) Text(projectID string) (Document, error) {
	project, _, chapters, err := s.load(projectID)
	if err != nil {
		return Document{}, err
	}

	title := project.Title
	if title == "" {
		title = "My Memoir"
	}
	author := project.Author
	if author == "" {
		author = "Anonymous"
	}

	sep := strings.Repeat("=", 40)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nby %s\n\n", title, author)
	for i, ch := range chapters {
		chTitle := ch.Title
		if chTitle == "" {
			chTitle = "Untitled"
		}
		content := ch.Content
		if content == "" {
			content = "(No content yet)"
		}
		fmt.Fprintf(&b, "%s\nChapter %d: %s\n%s\n\n%s\n\n", sep, i+1, chTitle, sep, content)
	}

	return Document{
		Filename:    sanitizeFilename(title) + ".txt",
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(b.String()),
	}, nil
}

// HTML renders a self-contained styled document. The table of contents is
// included only when there is more than one chapter, and inline images
// referencing the uploads directory are rewritten to base64 data URIs.
func (s *ExportService) HTML(projectID string) (Document, error) {
	project, _, chapters, err := s.load(projectID)
	if err != nil {
		return Document{}, err
	}

	title := html.EscapeString(project.Title)
	if project.Title == "" {
		title = "My Memoir"
	}
	author := html.EscapeString(project.Author)

	var toc, body strings.Builder
	for i, ch := range chapters {
		chTitle := html.EscapeString(ch.Title)
		if ch.Title == "" {
			chTitle = fmt.Sprintf("Chapter %d", i+1)
		}
		content := ch.Content
		if content == "" {
			content = "<p><em>No content yet.</em></p>"
		}
		content = s.embedImages(content)

		fmt.Fprintf(&toc, `<li><a href="#ch%d">%s</a></li>`, i, chTitle)
		fmt.Fprintf(&body, `<div class="chapter" id="ch%d"><h2>%s</h2><div>%s</div></div>`, i, chTitle, content)
	}

	authorLine := ""
	if author != "" {
		authorLine = fmt.Sprintf(`<p class="author">by %s</p>`, author)
	}
	tocSection := ""
	if len(chapters) > 1 {
		tocSection = fmt.Sprintf(`<div class="toc"><h3>Table of Contents</h3><ul>%s</ul></div>`, toc.String())
	}

	doc := fmt.Sprintf(htmlShell, title, title, authorLine, tocSection, body.String())

	filenameBase := project.Title
	if filenameBase == "" {
		filenameBase = "memoir"
	}
	return Document{
		Filename:    sanitizeFilename(filenameBase) + ".html",
		ContentType: "text/html; charset=utf-8",
		Body:        []byte(doc),
	}, nil
}

func (s *ExportService) load(projectID string) (memoir.Project, []memoir.Memory, []memoir.Chapter, error) {
	project, err := s.store.GetProject(projectID)
	if err != nil {
		return memoir.Project{}, nil, nil, err
	}
	memories, err := s.store.ListMemories(projectID)
	if err != nil {
		return memoir.Project{}, nil, nil, err
	}
	chapters, err := s.store.ListChapters(projectID)
	if err != nil {
		return memoir.Project{}, nil, nil, err
	}
	return project, memories, chapters, nil
}

var imgTagRe = regexp.MustCompile(`(?i)<img\s([^>]*?)src=["'](uploads/[^"']+)["']([^>]*?)>`)

// embedImages rewrites <img src="uploads/..."> references to base64 data
// URIs when the file exists on disk. Missing files keep their original
// reference; an export never fails over an image.
func (s *ExportService) embedImages(content string) string {
	return imgTagRe.ReplaceAllStringFunc(content, func(tag string) string {
		m := imgTagRe.FindStringSubmatch(tag)
		rel := strings.TrimPrefix(m[2], "uploads/")
		if strings.Contains(rel, "..") {
			return tag
		}

		path := filepath.Join(s.uploadRoot, filepath.FromSlash(rel))
		data, err := os.ReadFile(path)
		if err != nil {
			return tag
		}
		mime := mimetype.Detect(data).String()
		return fmt.Sprintf(`<img %ssrc="data:%s;base64,%s"%s>`, m[1], mime, base64.StdEncoding.EncodeToString(data), m[3])
	})
}

var nonAlphanumRe = regexp.MustCompile(`[^a-zA-Z0-9]`)

// sanitizeFilename derives a download filename from a project title.
func sanitizeFilename(title string) string {
	return nonAlphanumRe.ReplaceAllString(title, "_")
}

// htmlShell is the self-contained export document. Placeholders are, in
// order: head title, page title, author line, toc section, chapter body.
const htmlShell = `<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8"><title>%s</title>
<style>
@import url('https://fonts.googleapis.com/css2?family=Lora:ital,wght@0,400;0,600;1,400&display=swap');
body{font-family:'Lora',serif;max-width:700px;margin:0 auto;padding:40px 20px;color:#2C2C2C;background:#FAF8F5;line-height:1.8}
h1{text-align:center;font-size:2.4em;margin-bottom:0.2em}
.author{text-align:center;font-size:1.2em;color:#666;margin-bottom:2em}
h2{font-size:1.6em;margin-top:2em;padding-top:1em;border-top:1px solid #ddd}
.toc{margin:2em 0;padding:1.5em;background:#f5f0eb;border-radius:8px}
.toc h3{margin-top:0}.toc ul{list-style:none;padding-left:0}
.toc li{margin:0.5em 0}.toc a{color:#2D6A4F;text-decoration:none}
.chapter{margin-bottom:3em}
blockquote{border-left:3px solid #2D6A4F;margin-left:0;padding-left:1em;color:#555;font-style:italic}
img{max-width:100%%;height:auto;border-radius:6px;margin:0.8em 0;display:block}
@media print{body{padding:0;background:white}.toc{page-break-after:always}}
</style></head><body>
<h1>%s</h1>
%s
%s
%s
</body></html>`
