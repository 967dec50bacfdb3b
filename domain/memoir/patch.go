package memoir

// Patch types carry partial updates with explicit optional fields. A nil
// field leaves the stored value untouched. IDs and server timestamps are
// deliberately absent: they are always derived server-side.

// ProjectPatch is a partial update to a project record.
type ProjectPatch struct {
	Title             *string `json:"title" validate:"omitempty,max=200"`
	Author            *string `json:"author" validate:"omitempty,max=200"`
	InterviewStage    *int    `json:"interviewStage" validate:"omitempty,min=0"`
	InterviewQuestion *int    `json:"interviewQuestion" validate:"omitempty,min=0"`
}

// Apply merges the patch into p field by field and returns the result.
func (patch ProjectPatch) Apply(p Project) Project {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Author != nil {
		p.Author = *patch.Author
	}
	if patch.InterviewStage != nil {
		p.InterviewStage = *patch.InterviewStage
	}
	if patch.InterviewQuestion != nil {
		p.InterviewQuestion = *patch.InterviewQuestion
	}
	return p
}

// MemoryPatch is a partial update to a memory record.
type MemoryPatch struct {
	Stage         *string `json:"stage"`
	StageID       *string `json:"stageId"`
	StageIndex    *int    `json:"stageIndex" validate:"omitempty,min=0"`
	QuestionIndex *int    `json:"questionIndex" validate:"omitempty,min=0"`
	Question      *string `json:"question"`
	Answer        *string `json:"answer"`
}

// Apply merges the patch into m field by field and returns the result.
func (patch MemoryPatch) Apply(m Memory) Memory {
	if patch.Stage != nil {
		m.Stage = *patch.Stage
	}
	if patch.StageID != nil {
		m.StageID = *patch.StageID
	}
	if patch.StageIndex != nil {
		m.StageIndex = *patch.StageIndex
	}
	if patch.QuestionIndex != nil {
		m.QuestionIndex = *patch.QuestionIndex
	}
	if patch.Question != nil {
		m.Question = *patch.Question
	}
	if patch.Answer != nil {
		m.Answer = *patch.Answer
	}
	return m
}

// ChapterPatch is a partial update to a chapter record.
type ChapterPatch struct {
	Title     *string   `json:"title" validate:"omitempty,max=200"`
	Summary   *string   `json:"summary"`
	MemoryIDs *[]string `json:"memoryIds"`
	Content   *string   `json:"content"`
}

// Apply merges the patch into c field by field and returns the result.
func (patch ChapterPatch) Apply(c Chapter) Chapter {
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Summary != nil {
		c.Summary = *patch.Summary
	}
	if patch.MemoryIDs != nil {
		c.MemoryIDs = *patch.MemoryIDs
	}
	if patch.Content != nil {
		c.Content = *patch.Content
	}
	return c
}
