package script

import (
	"github.com/nguyentantai21042004/deckcast/internal/logger"
)

type implWriter struct {
	logger logger.Logger
}

// New creates a Writer producing .docx scripts
func New(log logger.Logger) Writer {
	return &implWriter{logger: log}
}
