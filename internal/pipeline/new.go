package pipeline

import (
	"github.com/nguyentantai21042004/lecture-notes/internal/assembler"
	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/export"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/notion"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcript"
)

type implNotetaker struct {
	cfg       *config.Config
	source    transcript.Source
	processor processor.Processor
	assembler assembler.Assembler
	store     notion.Store    // nil disables persistence
	exporter  export.Exporter // nil disables local export
	logger    logger.Logger
}

// New creates a Notetaker. store and exporter may be nil to disable the
// corresponding output.
func New(
	cfg *config.Config,
	source transcript.Source,
	proc processor.Processor,
	asm assembler.Assembler,
	store notion.Store,
	exporter export.Exporter,
	log logger.Logger,
) Notetaker {
	return &implNotetaker{
		cfg:       cfg,
		source:    source,
		processor: proc,
		assembler: asm,
		store:     store,
		exporter:  exporter,
		logger:    log,
	}
}
