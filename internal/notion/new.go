package notion

import (
	"github.com/jomei/notionapi"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type implStore struct {
	client        *notionapi.Client
	databaseID    notionapi.DatabaseID
	titleTemplate string
	logger        logger.Logger
}

// New creates a Store writing pages into the given Notion database.
func New(token, databaseID, titleTemplate string, log logger.Logger) Store {
	return &implStore{
		client:        notionapi.NewClient(notionapi.Token(token)),
		databaseID:    notionapi.DatabaseID(databaseID),
		titleTemplate: titleTemplate,
		logger:        log,
	}
}
