package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

// Notetaker runs the full pipeline for one video: transcript, chunking,
// model processing, assembly, and optional persistence/export.
type Notetaker interface {
	Process(ctx context.Context, req Request) (*Result, error)
}

// Request identifies the video and any per-run overrides.
type Request struct {
	VideoRef string // URL or bare video ID
	Language string // preferred transcript language; empty uses config
	Title    string // overrides the video title in the notes
}

// Result carries everything a caller may want after a run. Content is
// always set on success, even when persistence failed; PersistErr then
// records why the page write did not happen.
type Result struct {
	Video        *model.VideoInfo
	Transcript   *model.Transcript
	Content      *model.ProcessedContent
	NotionURL    string
	ExportPaths  []string
	FailedChunks int
	PersistErr   error
}
