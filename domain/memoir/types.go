// Package memoir defines the persisted entities of a memoir project.
package memoir

// Project is the top-level record for one memoir. Its ID doubles as the
// name of the directory holding the project's files, so it is assigned by
// the server and never taken from a client payload.
type Project struct {
	ID                string `json:"id"`
	Title             string `json:"title,omitempty"`
	Author            string `json:"author,omitempty"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt,omitempty"`
	InterviewStage    int    `json:"interviewStage"`
	InterviewQuestion int    `json:"interviewQuestion"`
}

// Memory is one answered interview question, tagged with the life stage
// it belongs to and its position within the guided interview.
type Memory struct {
	ID            string `json:"id"`
	Stage         string `json:"stage,omitempty"`
	StageID       string `json:"stageId,omitempty"`
	StageIndex    int    `json:"stageIndex"`
	QuestionIndex int    `json:"questionIndex"`
	Question      string `json:"question,omitempty"`
	Answer        string `json:"answer,omitempty"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

// Chapter is an ordered, titled container of memory references plus the
// written content. MemoryIDs are soft references: a referenced memory may
// have been deleted, and readers skip dangling ids silently.
type Chapter struct {
	ID        string   `json:"id"`
	Title     string   `json:"title,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	MemoryIDs []string `json:"memoryIds"`
	Content   string   `json:"content"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}
