package processor

import (
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

// Options is the processing configuration threaded through per-chunk
// calls. It is immutable for the lifetime of the processor.
type Options struct {
	SummaryLength      int // words
	Chapters           int
	KeyConcepts        int
	MainTopics         int
	LearningObjectives int
	ReviewQuestions    int

	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	RequestTimeout time.Duration
}

type implProcessor struct {
	backend Backend
	opts    Options
	logger  logger.Logger
}

// New creates a Processor using the given generative backend.
func New(backend Backend, opts Options, log logger.Logger) Processor {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = 500 * time.Millisecond
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = 10 * time.Second
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	return &implProcessor{
		backend: backend,
		opts:    opts,
		logger:  log,
	}
}
