package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"memoir-backend/application/services"
	"memoir-backend/domain/memoir"
	"memoir-backend/infrastructure/persistence/filestore"
	"memoir-backend/pkg/observability"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 13}

func newTestServer(t *testing.T) (*httptest.Server, *filestore.Store) {
	t.Helper()

	logger := zap.NewNop()
	store := filestore.New(t.TempDir(), logger)
	uploadRoot := t.TempDir()

	router := NewRouter(Options{
		Store:      store,
		Assist:     services.NewAssistService(nil, logger),
		Export:     services.NewExportService(store, uploadRoot, logger),
		Upload:     services.NewUploadService(uploadRoot, logger),
		Metrics:    observability.NewMetrics(),
		Logger:     logger,
		UploadRoot: uploadRoot,
		EnableCORS: true,
	})

	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv, store
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestProjectEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/projects",
		map[string]string{"title": "My Life", "author": "Ada"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var proj memoir.Project
	require.NoError(t, json.Unmarshal(body, &proj))
	assert.Regexp(t, `^\d+$`, proj.ID)
	assert.Equal(t, "My Life", proj.Title)

	t.Run("listing includes the new project", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/projects", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var projects []memoir.Project
		require.NoError(t, json.Unmarshal(body, &projects))
		require.Len(t, projects, 1)
		assert.Equal(t, proj.ID, projects[0].ID)
	})

	t.Run("update cannot change the id", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPut, srv.URL+"/api/projects/"+proj.ID,
			map[string]string{"title": "Renamed"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated memoir.Project
		require.NoError(t, json.Unmarshal(body, &updated))
		assert.Equal(t, proj.ID, updated.ID)
		assert.Equal(t, "Renamed", updated.Title)
		assert.NotEmpty(t, updated.UpdatedAt)
	})

	t.Run("non-numeric project id fails before storage", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/projects/not-a-number", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"error":"Invalid project ID"}`, string(body))
	})

	t.Run("unknown project is 404", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/projects/1", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"error":"project not found"}`, string(body))
	})

	t.Run("unsupported method is 405", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPatch, srv.URL+"/api/projects/"+proj.ID, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("delete removes the project", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodDelete, srv.URL+"/api/projects/"+proj.ID, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"ok":true}`, string(body))

		resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/projects/"+proj.ID, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestMemoryEndpoints(t *testing.T) {
	srv, store := newTestServer(t)
	proj, err := store.CreateProject(memoir.ProjectPatch{})
	require.NoError(t, err)
	base := srv.URL + "/api/projects/" + proj.ID + "/memories"

	resp, body := doJSON(t, http.MethodPost, base, map[string]interface{}{
		"stage":         "Childhood",
		"stageId":       "childhood",
		"stageIndex":    0,
		"questionIndex": 2,
		"question":      "What games did you play?",
		"answer":        "Hide and seek.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var mem memoir.Memory
	require.NoError(t, json.Unmarshal(body, &mem))
	assert.Regexp(t, `^\d+$`, mem.ID)
	assert.Equal(t, "childhood", mem.StageID)

	t.Run("update merges and stamps updatedAt", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPut, base+"/"+mem.ID,
			map[string]string{"answer": "Hide and seek, mostly."})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated memoir.Memory
		require.NoError(t, json.Unmarshal(body, &updated))
		assert.Equal(t, mem.ID, updated.ID)
		assert.Equal(t, "Hide and seek, mostly.", updated.Answer)
		assert.Equal(t, "What games did you play?", updated.Question)
		assert.NotEmpty(t, updated.UpdatedAt)
	})

	t.Run("update of unknown memory is 404", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPut, base+"/0", map[string]string{"answer": "x"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("delete twice is not an error", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodDelete, base+"/"+mem.ID, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp, _ = doJSON(t, http.MethodDelete, base+"/"+mem.ID, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestChapterReorderEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	proj, err := store.CreateProject(memoir.ProjectPatch{})
	require.NoError(t, err)

	var ids []string
	for _, title := range []string{"A", "B", "C"} {
		title := title
		ch, err := store.CreateChapter(proj.ID, memoir.ChapterPatch{Title: &title})
		require.NoError(t, err)
		ids = append(ids, ch.ID)
	}

	resp, body := doJSON(t, http.MethodPut, srv.URL+"/api/projects/"+proj.ID+"/chapters/reorder",
		map[string][]string{"order": {ids[2], ids[0]}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var chapters []memoir.Chapter
	require.NoError(t, json.Unmarshal(body, &chapters))
	require.Len(t, chapters, 3)
	assert.Equal(t, ids[2], chapters[0].ID)
	assert.Equal(t, ids[0], chapters[1].ID)
	assert.Equal(t, ids[1], chapters[2].ID)

	t.Run("missing order is 400", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPut, srv.URL+"/api/projects/"+proj.ID+"/chapters/reorder",
			map[string]string{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAssistEndpoints_NoKeyConfigured(t *testing.T) {
	srv, store := newTestServer(t)
	proj, err := store.CreateProject(memoir.ProjectPatch{})
	require.NoError(t, err)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/projects/"+proj.ID+"/ai/polish",
		map[string]string{"text": "polish me"})
	require.Equal(t, http.StatusOK, resp.StatusCode, "AI failures are payloads, not HTTP errors")

	var result services.AssistResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Empty(t, result.Text)
	assert.Contains(t, result.Error, "API key not configured")

	t.Run("unknown action is 404", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/projects/"+proj.ID+"/ai/teleport",
			map[string]string{"text": "x"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestExportEndpoints(t *testing.T) {
	srv, store := newTestServer(t)
	title := "My Memoir"
	proj, err := store.CreateProject(memoir.ProjectPatch{Title: &title})
	require.NoError(t, err)

	t.Run("text export is an attachment", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/projects/"+proj.ID+"/export/text", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "My_Memoir.txt")
		assert.True(t, strings.HasPrefix(string(body), "My Memoir\n"))
	})

	t.Run("json export round-trips", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/projects/"+proj.ID+"/export/json", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var backup services.Backup
		require.NoError(t, json.Unmarshal(body, &backup))
		assert.Equal(t, proj.ID, backup.Project.ID)
		assert.NotEmpty(t, backup.ExportedAt)
	})

	t.Run("unknown format is 404", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/projects/"+proj.ID+"/export/pdf", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUploadEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	proj, err := store.CreateProject(memoir.ProjectPatch{})
	require.NoError(t, err)
	url := srv.URL + "/api/projects/" + proj.ID + "/upload"

	postMultipart := func(t *testing.T, field string, content []byte) (*http.Response, []byte) {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile(field, "photo.png")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		resp, err := http.Post(url, mw.FormDataContentType(), &buf)
		require.NoError(t, err)
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp, data
	}

	t.Run("accepts a png", func(t *testing.T) {
		resp, body := postMultipart(t, "image", pngBytes)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

		var result map[string]string
		require.NoError(t, json.Unmarshal(body, &result))
		assert.True(t, strings.HasPrefix(result["url"], "uploads/"+proj.ID+"/"))
	})

	t.Run("missing image field is 400", func(t *testing.T) {
		resp, body := postMultipart(t, "file", pngBytes)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"error":"No image received"}`, string(body))
	})

	t.Run("non-image payload is 400", func(t *testing.T) {
		resp, body := postMultipart(t, "image", []byte("just some text"))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(body), "Invalid image type")
	})
}

func TestOperationalEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy"}`, string(body))

	t.Run("metrics expose request counts", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/metrics", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "http_requests_total")
	})

	t.Run("unmatched api path is a json 404", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/nope", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"error":"Not found"}`, string(body))
	})
}
