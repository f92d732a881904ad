package assembler

import (
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type implAssembler struct {
	limits Limits
	logger logger.Logger
}

// New creates an Assembler with the given output caps.
func New(limits Limits, log logger.Logger) Assembler {
	return &implAssembler{
		limits: limits,
		logger: log,
	}
}
