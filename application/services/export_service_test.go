package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"memoir-backend/domain/memoir"
	"memoir-backend/infrastructure/persistence/filestore"
	apperrors "memoir-backend/pkg/errors"
	"memoir-backend/pkg/utils"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 13}

func strPtr(s string) *string { return &s }

type exportFixture struct {
	store   *filestore.Store
	export  *ExportService
	project memoir.Project
	uploads string
}

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()
	store := filestore.New(t.TempDir(), zap.NewNop())
	uploads := t.TempDir()

	proj, err := store.CreateProject(memoir.ProjectPatch{
		Title:  strPtr("My Wild Life!"),
		Author: strPtr("Ada Lovelace"),
	})
	require.NoError(t, err)

	return &exportFixture{
		store:   store,
		export:  NewExportService(store, uploads, zap.NewNop()),
		project: proj,
		uploads: uploads,
	}
}

func (f *exportFixture) addChapter(t *testing.T, title, content string) memoir.Chapter {
	t.Helper()
	ch, err := f.store.CreateChapter(f.project.ID, memoir.ChapterPatch{
		Title:   strPtr(title),
		Content: strPtr(content),
	})
	require.NoError(t, err)
	return ch
}

func TestExportJSON_RoundTrip(t *testing.T) {
	f := newExportFixture(t)
	mem, err := f.store.CreateMemory(f.project.ID, memoir.MemoryPatch{Answer: strPtr("the sea")})
	require.NoError(t, err)
	ch := f.addChapter(t, "Beginnings", "<p>Once</p>")

	doc, err := f.export.JSON(f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, "memoir-backup.json", doc.Filename)

	var backup Backup
	require.NoError(t, json.Unmarshal(doc.Body, &backup))
	assert.Equal(t, f.project.ID, backup.Project.ID)
	require.Len(t, backup.Memories, 1)
	assert.Equal(t, mem.ID, backup.Memories[0].ID)
	require.Len(t, backup.Chapters, 1)
	assert.Equal(t, ch.ID, backup.Chapters[0].ID)

	_, err = utils.ParseISO(backup.ExportedAt)
	assert.NoError(t, err, "exportedAt must parse as a timestamp")
}

func TestExportText(t *testing.T) {
	f := newExportFixture(t)
	f.addChapter(t, "Beginnings", "<p>Once upon a time</p>")
	f.addChapter(t, "", "")

	doc, err := f.export.Text(f.project.ID)
	require.NoError(t, err)

	assert.Equal(t, "My_Wild_Life_.txt", doc.Filename)
	assert.Equal(t, "text/plain; charset=utf-8", doc.ContentType)

	text := string(doc.Body)
	sep := strings.Repeat("=", 40)
	assert.True(t, strings.HasPrefix(text, "My Wild Life!\nby Ada Lovelace\n\n"))
	assert.Contains(t, text, sep+"\nChapter 1: Beginnings\n"+sep)
	assert.Contains(t, text, "<p>Once upon a time</p>", "HTML passes through verbatim")
	assert.Contains(t, text, "Chapter 2: Untitled")
	assert.Contains(t, text, "(No content yet)")
}

func TestExportText_Defaults(t *testing.T) {
	store := filestore.New(t.TempDir(), zap.NewNop())
	proj, err := store.CreateProject(memoir.ProjectPatch{})
	require.NoError(t, err)

	export := NewExportService(store, t.TempDir(), zap.NewNop())
	doc, err := export.Text(proj.ID)
	require.NoError(t, err)

	assert.Equal(t, "My_Memoir.txt", doc.Filename)
	assert.True(t, strings.HasPrefix(string(doc.Body), "My Memoir\nby Anonymous\n\n"))
}

func TestExportHTML_TableOfContents(t *testing.T) {
	t.Run("single chapter omits the toc", func(t *testing.T) {
		f := newExportFixture(t)
		f.addChapter(t, "Only One", "<p>alone</p>")

		doc, err := f.export.HTML(f.project.ID)
		require.NoError(t, err)
		assert.NotContains(t, string(doc.Body), "Table of Contents")
	})

	t.Run("two chapters include an anchored toc", func(t *testing.T) {
		f := newExportFixture(t)
		f.addChapter(t, "One", "")
		f.addChapter(t, "Two", "")

		doc, err := f.export.HTML(f.project.ID)
		require.NoError(t, err)

		html := string(doc.Body)
		assert.Contains(t, html, "Table of Contents")
		assert.Contains(t, html, `<a href="#ch0">One</a>`)
		assert.Contains(t, html, `<a href="#ch1">Two</a>`)
		assert.Contains(t, html, `id="ch0"`)
		assert.Contains(t, html, `id="ch1"`)
	})
}

func TestExportHTML_EscapingAndDefaults(t *testing.T) {
	store := filestore.New(t.TempDir(), zap.NewNop())
	proj, err := store.CreateProject(memoir.ProjectPatch{Title: strPtr("Me & You <3")})
	require.NoError(t, err)
	_, err = store.CreateChapter(proj.ID, memoir.ChapterPatch{})
	require.NoError(t, err)

	export := NewExportService(store, t.TempDir(), zap.NewNop())
	doc, err := export.HTML(proj.ID)
	require.NoError(t, err)

	html := string(doc.Body)
	assert.Contains(t, html, "Me &amp; You &lt;3", "titles are escaped")
	assert.Contains(t, html, "Chapter 1", "untitled chapters get a positional title")
	assert.Contains(t, html, "<p><em>No content yet.</em></p>")
	assert.Equal(t, "Me___You__3.html", doc.Filename)
}

func TestExportHTML_EmbedsUploadedImages(t *testing.T) {
	f := newExportFixture(t)

	dir := filepath.Join(f.uploads, f.project.ID)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.png"), pngBytes, 0o644))

	f.addChapter(t, "Pictures",
		`<img class="photo" src="uploads/`+f.project.ID+`/photo.png" alt="me">`+
			`<img src="uploads/`+f.project.ID+`/missing.png">`+
			`<img src="https://example.com/external.png">`)

	doc, err := f.export.HTML(f.project.ID)
	require.NoError(t, err)

	html := string(doc.Body)
	assert.Contains(t, html, `src="data:image/png;base64,`, "existing upload becomes a data URI")
	assert.Contains(t, html, `class="photo"`, "surrounding attributes survive")
	assert.Contains(t, html, `src="uploads/`+f.project.ID+`/missing.png"`, "missing file keeps its reference")
	assert.Contains(t, html, `src="https://example.com/external.png"`, "external images are untouched")
}

func TestExport_UnknownProject(t *testing.T) {
	f := newExportFixture(t)
	_, err := f.export.JSON("999999")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "My_Wild_Life_", sanitizeFilename("My Wild Life!"))
	assert.Equal(t, "abc123", sanitizeFilename("abc123"))
	assert.Equal(t, "___", sanitizeFilename("日本語"))
}
