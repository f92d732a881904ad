package model

import (
	"strings"
	"time"
)

// SourceKind describes how a transcript was produced.
type SourceKind string

const (
	SourceManual        SourceKind = "manual"
	SourceAutoGenerated SourceKind = "auto_generated"
	SourceTranslated    SourceKind = "translated"
)

// Status marks whether an artifact contains everything the model produced
// or only what survived per-chunk failures.
type Status string

const (
	StatusComplete Status = "complete"
	StatusPartial  Status = "partial"
)

// VideoInfo is the metadata extracted alongside the transcript.
type VideoInfo struct {
	ID       string
	Title    string
	Channel  string
	Duration time.Duration
}

// TranscriptSegment is one timed caption line.
type TranscriptSegment struct {
	Start time.Duration
	Text  string
}

// Transcript is an immutable fetched transcript. Language and Kind reflect
// what was actually selected, so callers can detect a language fallback.
type Transcript struct {
	VideoID  string
	Language string
	Kind     SourceKind
	Segments []TranscriptSegment
}

// Text joins all segment texts with newlines.
func (t *Transcript) Text() string {
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, "\n")
}

// TimeAt returns the start time of the segment containing the given byte
// offset into Text(). Offsets past the end map to the last segment.
func (t *Transcript) TimeAt(offset int) time.Duration {
	pos := 0
	for i, seg := range t.Segments {
		end := pos + len(seg.Text)
		if offset <= end || i == len(t.Segments)-1 {
			return seg.Start
		}
		pos = end + 1 // the joining newline
	}
	return 0
}

// Duration returns the start time of the last segment, a lower bound on
// the video duration usable when metadata is missing.
func (t *Transcript) Duration() time.Duration {
	if len(t.Segments) == 0 {
		return 0
	}
	return t.Segments[len(t.Segments)-1].Start
}

// Chunk is a bounded slice of the transcript text. Start and End are byte
// offsets into the chunked text; chunks are contiguous and in order.
// Offset is the video time at which the chunk begins, annotated by the
// pipeline after chunking.
type Chunk struct {
	Index  int
	Text   string
	Start  int
	End    int
	Offset time.Duration
}

// KeyConcept is a term the model considered important. Higher
// ImportanceRank means more important.
type KeyConcept struct {
	Term           string `json:"term"`
	Explanation    string `json:"explanation"`
	ImportanceRank int    `json:"importance_rank"`
}

// Chapter is a titled section of the lecture.
type Chapter struct {
	Title   string
	Start   time.Duration
	Summary string
}

// PartialContent is the structured output for a single chunk, pre-merge.
// A chunk that exhausted its retries leaves a zero PartialContent.
type PartialContent struct {
	Summary            string
	KeyConcepts        []KeyConcept
	Chapters           []Chapter
	MainTopics         []string
	LearningObjectives []string
	ReviewQuestions    []string
}

// Empty reports whether the partial carries no content at all.
func (p *PartialContent) Empty() bool {
	return p.Summary == "" &&
		len(p.KeyConcepts) == 0 &&
		len(p.Chapters) == 0 &&
		len(p.MainTopics) == 0 &&
		len(p.LearningObjectives) == 0 &&
		len(p.ReviewQuestions) == 0
}

// ProcessedContent is the final assembled study-note artifact. It is
// immutable once assembled; consumers only read it.
type ProcessedContent struct {
	Summary            string
	KeyConcepts        []KeyConcept
	Chapters           []Chapter
	MainTopics         []string
	LearningObjectives []string
	ReviewQuestions    []string
	Status             Status
}

// NormalizeTerm lower-cases and collapses whitespace for deduplication.
func NormalizeTerm(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
