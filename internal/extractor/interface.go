package extractor

import (
	"context"

	"github.com/nguyentantai21042004/deckcast/internal/model"
)

// Extractor turns a presentation into ordered slide records
type Extractor interface {
	Extract(ctx context.Context, req Request) ([]model.SlideRecord, error)
}

// Request describes one extraction. Images are written to ScratchDir and
// named by RunID, the source base name and the slide index.
type Request struct {
	SourcePath string
	ScratchDir string
	RunID      string
}
