package transcript

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type implSource struct {
	client       *http.Client
	fallbackLang string
	logger       logger.Logger
}

// New creates a Source backed by YouTube's caption tracks. fallbackLang is
// the translation target used when neither the preferred language nor any
// native track fits.
func New(fallbackLang string, timeout time.Duration, log logger.Logger) Source {
	return &implSource{
		client:       &http.Client{Timeout: timeout},
		fallbackLang: fallbackLang,
		logger:       log,
	}
}
