package watcher

import "context"

// Watcher defines the interface for job directory monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// JobHandler is invoked once per video reference found in a job file
type JobHandler func(ctx context.Context, videoRef string) error
