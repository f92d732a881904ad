package transcript

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

// Source resolves a video reference to a transcript in the preferred or
// best-available language, plus the video metadata found alongside it.
type Source interface {
	Fetch(ctx context.Context, videoRef, preferredLanguage string) (*model.Transcript, *model.VideoInfo, error)
}

// UnavailableError means no usable transcript exists for the video.
// It is fatal for the pipeline.
type UnavailableError struct {
	VideoID string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("no transcript available for video %s", e.VideoID)
	}
	return fmt.Sprintf("no transcript available for video %s: %s", e.VideoID, e.Reason)
}
