package watcher

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type implWatcher struct {
	inputDir      string
	handler       JobHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start begins monitoring the input directory for new job files.
// A job file is a .txt file with one video URL or ID per line.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Job watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Drop .txt job files with one video URL per line")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Job watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if event.Op&fsnotify.Create == fsnotify.Create {
				if isJobFile(event.Name) {
					w.logger.Info(ctx, "New job file detected: %s", event.Name)

					// Small delay to ensure file is fully written
					time.Sleep(500 * time.Millisecond)

					if err := w.dispatchJobFile(ctx, event.Name); err != nil {
						w.logger.Error(ctx, "Failed to read job file %s: %v", event.Name, err)
					}
				} else {
					w.logger.Debug(ctx, "Ignoring non-job file: %s", event.Name)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// dispatchJobFile reads each video reference from the job file and hands
// it to the handler, bounded by the concurrency semaphore.
func (w *implWatcher) dispatchJobFile(ctx context.Context, path string) error {
	refs, err := readJobFile(path)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		w.logger.Warn(ctx, "Job file %s has no video references", path)
		return nil
	}
	w.logger.Info(ctx, "Job file %s: %d video(s) queued", path, len(refs))

	for _, ref := range refs {
		// Acquire semaphore slot (blocks if max concurrent reached)
		select {
		case w.semaphore <- struct{}{}:
			w.wg.Add(1)
			go func(videoRef string) {
				defer w.wg.Done()
				defer func() { <-w.semaphore }() // Release semaphore

				if err := w.handler(ctx, videoRef); err != nil {
					w.logger.Error(ctx, "Failed to process %s: %v", videoRef, err)
				}
			}(ref)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// isJobFile checks if the file is a .txt job file
func isJobFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".txt"
}

// readJobFile returns the non-empty, non-comment lines of a job file
func readJobFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var refs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		refs = append(refs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}
