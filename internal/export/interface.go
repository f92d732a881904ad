package export

import (
	"context"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

// Exporter writes the assembled notes to local files and returns the
// paths it created.
type Exporter interface {
	Export(ctx context.Context, video *model.VideoInfo, content *model.ProcessedContent) ([]string, error)
}
