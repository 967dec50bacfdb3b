package memoir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestProjectPatch_Apply(t *testing.T) {
	base := Project{
		ID:        "100",
		Title:     "My Life",
		Author:    "Ada",
		CreatedAt: "2024-01-01T00:00:00.000Z",
	}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		assert.Equal(t, base, ProjectPatch{}.Apply(base))
	})

	t.Run("set fields override, unset fields survive", func(t *testing.T) {
		got := ProjectPatch{
			Title:          strPtr("A New Title"),
			InterviewStage: intPtr(3),
		}.Apply(base)

		assert.Equal(t, "A New Title", got.Title)
		assert.Equal(t, 3, got.InterviewStage)
		assert.Equal(t, "Ada", got.Author)
		assert.Equal(t, base.CreatedAt, got.CreatedAt)
		assert.Equal(t, "100", got.ID)
	})

	t.Run("explicit empty string clears a field", func(t *testing.T) {
		got := ProjectPatch{Author: strPtr("")}.Apply(base)
		assert.Empty(t, got.Author)
	})
}

func TestMemoryPatch_Apply(t *testing.T) {
	base := Memory{
		ID:       "200",
		Stage:    "Childhood",
		Question: "What is your earliest memory?",
		Answer:   "The sea.",
	}

	got := MemoryPatch{Answer: strPtr("The sea, and my grandmother's kitchen.")}.Apply(base)
	assert.Equal(t, "The sea, and my grandmother's kitchen.", got.Answer)
	assert.Equal(t, "Childhood", got.Stage)
	assert.Equal(t, "What is your earliest memory?", got.Question)
}

func TestChapterPatch_Apply(t *testing.T) {
	base := Chapter{
		ID:        "300",
		Title:     "Beginnings",
		MemoryIDs: []string{"1", "2"},
		Content:   "<p>Once</p>",
	}

	t.Run("memory ids replaced wholesale", func(t *testing.T) {
		ids := []string{"2"}
		got := ChapterPatch{MemoryIDs: &ids}.Apply(base)
		assert.Equal(t, []string{"2"}, got.MemoryIDs)
		assert.Equal(t, "<p>Once</p>", got.Content)
	})

	t.Run("content can be cleared", func(t *testing.T) {
		got := ChapterPatch{Content: strPtr("")}.Apply(base)
		assert.Empty(t, got.Content)
		assert.Equal(t, []string{"1", "2"}, got.MemoryIDs)
	})

	t.Run("summary is settable independently", func(t *testing.T) {
		got := ChapterPatch{Summary: strPtr("A short recap.")}.Apply(base)
		assert.Equal(t, "A short recap.", got.Summary)
		assert.Equal(t, "Beginnings", got.Title)
	})
}
