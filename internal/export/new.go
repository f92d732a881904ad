package export

import (
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type implExporter struct {
	dir    string
	docx   bool
	logger logger.Logger
}

// New creates an Exporter writing into dir. A Markdown file is always
// written; a styled DOCX is added when docx is set.
func New(dir string, docx bool, log logger.Logger) Exporter {
	return &implExporter{
		dir:    dir,
		docx:   docx,
		logger: log,
	}
}
