package notion

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

// Store persists an assembled artifact as a page in a document store.
// The artifact is consumed read-only.
type Store interface {
	CreatePage(ctx context.Context, video *model.VideoInfo, content *model.ProcessedContent) (string, error)
}

// PersistenceError wraps a failed page write. The artifact is still
// returned to the caller so it is not lost.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist notes: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
