package processor

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

// Process sends each chunk to the backend in sequence order and collects
// the partial artifacts. Transient per-chunk failures are retried with
// exponential backoff and absorbed here: a chunk that exhausts its retries
// leaves an empty partial and never blocks the remaining chunks. Only when
// every chunk fails does the pipeline fail.
func (p *implProcessor) Process(ctx context.Context, video *model.VideoInfo, chunks []model.Chunk) (*Result, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunks to process")
	}

	rc := retryConfig{
		MaxAttempts: p.opts.MaxAttempts,
		InitialWait: p.opts.InitialBackoff,
		MaxWait:     p.opts.MaxBackoff,
		Multiplier:  2.0,
	}

	result := &Result{
		Partials: make([]model.PartialContent, len(chunks)),
	}
	var lastErr error

	for i, chunk := range chunks {
		p.logger.Info(ctx, "Processing chunk %d/%d (%d chars, offset %s)",
			i+1, len(chunks), len(chunk.Text), formatOffset(chunk.Offset))

		partial, attempts, err := retryDo(ctx, rc, isTransient, func() (model.PartialContent, error) {
			return p.processChunk(ctx, video, chunk, len(chunks))
		})
		result.Attempts += attempts

		if err != nil {
			p.logger.Warn(ctx, "Chunk %d/%d failed after %d attempts: %v", i+1, len(chunks), attempts, err)
			result.Failed = append(result.Failed, i)
			lastErr = err
			continue
		}

		result.Partials[i] = partial
	}

	if len(result.Failed) == len(chunks) {
		return nil, &AllChunksFailedError{Chunks: len(chunks), LastErr: lastErr}
	}

	if len(result.Failed) > 0 {
		p.logger.Warn(ctx, "Processed %d/%d chunks, %d failed", len(chunks)-len(result.Failed), len(chunks), len(result.Failed))
	} else {
		p.logger.Info(ctx, "Processed all %d chunks (%d backend calls)", len(chunks), result.Attempts)
	}

	return result, nil
}

// processChunk performs one backend call with the per-call timeout and
// parses the response. Timeouts surface as transient errors and feed the
// same retry path as network failures.
func (p *implProcessor) processChunk(ctx context.Context, video *model.VideoInfo, chunk model.Chunk, totalChunks int) (model.PartialContent, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.opts.RequestTimeout)
	defer cancel()

	prompt := buildPrompt(video, chunk, totalChunks, p.opts)

	raw, err := p.backend.Complete(callCtx, prompt)
	if err != nil {
		return model.PartialContent{}, fmt.Errorf("backend call: %w", err)
	}

	return parsePartial(raw)
}
