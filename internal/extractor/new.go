package extractor

import (
	"github.com/nguyentantai21042004/deckcast/internal/logger"
	"github.com/nguyentantai21042004/deckcast/internal/model"
	"github.com/nguyentantai21042004/deckcast/internal/renderer"
)

type implExtractor struct {
	renderer   renderer.Renderer
	exportSize model.Resolution
	logger     logger.Logger
}

// New creates an Extractor that rasterizes every slide at exportSize,
// independent of the final video resolution.
func New(r renderer.Renderer, exportSize model.Resolution, log logger.Logger) Extractor {
	return &implExtractor{
		renderer:   r,
		exportSize: exportSize,
		logger:     log,
	}
}
