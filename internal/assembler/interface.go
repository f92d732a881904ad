package assembler

import (
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

// Assembler merges per-chunk partial artifacts into one ProcessedContent,
// enforcing the configured output caps.
type Assembler interface {
	Assemble(partials []model.PartialContent, failedChunks int, videoDuration time.Duration) *model.ProcessedContent
}

// Limits caps the size of each artifact field.
type Limits struct {
	SummaryWords       int
	Chapters           int
	KeyConcepts        int
	MainTopics         int
	LearningObjectives int
	ReviewQuestions    int
}
