package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

// Processor drives chunk-by-chunk generative calls and collects the
// partial artifacts in chunk order.
type Processor interface {
	Process(ctx context.Context, video *model.VideoInfo, chunks []model.Chunk) (*Result, error)
}

// Backend is the generative text collaborator. Complete sends one prompt
// and returns the raw model response.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Result holds one partial artifact per chunk, in chunk order. Chunks that
// exhausted their retries leave a zero partial and appear in Failed.
type Result struct {
	Partials []model.PartialContent
	Failed   []int
	Attempts int
}

// ErrMalformedResponse marks a model response that could not be parsed
// into the expected shape. It is transient and retried per chunk.
var ErrMalformedResponse = errors.New("malformed model response")

// AllChunksFailedError is raised only when every chunk exhausted its
// retries. It is fatal for the pipeline.
type AllChunksFailedError struct {
	Chunks  int
	LastErr error
}

func (e *AllChunksFailedError) Error() string {
	return fmt.Sprintf("all %d chunks failed, last error: %v", e.Chunks, e.LastErr)
}

func (e *AllChunksFailedError) Unwrap() error {
	return e.LastErr
}
