package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/chunker"
)

// Process runs the pipeline stages in sequence. Fatal errors are an
// unavailable transcript and all chunks failing; a failed page write is
// reported in the result with the artifact retained so the caller can
// retry persistence manually.
func (n *implNotetaker) Process(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()

	n.logger.Info(ctx, "========================================")
	n.logger.Info(ctx, "Starting lecture notes pipeline: %s", req.VideoRef)
	n.logger.Info(ctx, "========================================")

	language := req.Language
	if language == "" {
		language = n.cfg.YouTube.Language
	}

	// Step 1: Fetch transcript with language fallback
	transcript, video, err := n.source.Fetch(ctx, req.VideoRef, language)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}
	if req.Title != "" {
		video.Title = req.Title
	}

	// Step 2: Chunk the transcript text
	text := transcript.Text()
	chunks := chunker.Split(text, n.cfg.Notes.ChunkSize)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("transcript for %s is empty after chunking", transcript.VideoID)
	}
	for i := range chunks {
		chunks[i].Offset = transcript.TimeAt(chunks[i].Start)
	}
	n.logger.Info(ctx, "Transcript: %d segments, %d chars, %d chunks (language=%s, kind=%s)",
		len(transcript.Segments), len(text), len(chunks), transcript.Language, transcript.Kind)

	// Step 3: Per-chunk model processing
	procResult, err := n.processor.Process(ctx, video, chunks)
	if err != nil {
		return nil, fmt.Errorf("process chunks: %w", err)
	}

	// Step 4: Assemble the artifact
	duration := video.Duration
	if duration == 0 {
		duration = transcript.Duration()
	}
	content := n.assembler.Assemble(procResult.Partials, len(procResult.Failed), duration)

	result := &Result{
		Video:        video,
		Transcript:   transcript,
		Content:      content,
		FailedChunks: len(procResult.Failed),
	}

	// Step 5: Persist to Notion (optional)
	if n.store != nil {
		url, err := n.store.CreatePage(ctx, video, content)
		if err != nil {
			n.logger.Error(ctx, "Failed to persist notes, artifact retained: %v", err)
			result.PersistErr = err
		} else {
			result.NotionURL = url
		}
	}

	// Step 6: Local export (optional)
	if n.exporter != nil {
		paths, err := n.exporter.Export(ctx, video, content)
		if err != nil {
			n.logger.Warn(ctx, "Local export failed: %v", err)
		}
		result.ExportPaths = paths
	}

	n.logger.Info(ctx, "========================================")
	n.logger.Info(ctx, "Pipeline finished: status=%s, %d/%d chunks, took %s",
		content.Status, len(chunks)-len(procResult.Failed), len(chunks), time.Since(startTime).Round(time.Millisecond))
	n.logger.Info(ctx, "========================================")

	return result, nil
}
