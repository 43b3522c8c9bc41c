package renderer

import (
	"context"

	"github.com/nguyentantai21042004/deckcast/internal/model"
)

// Renderer opens presentations for rasterizing and text access
type Renderer interface {
	Open(ctx context.Context, path string) (Session, error)
}

// Session is an open presentation. Close must be called exactly once,
// also when an export fails part way through the deck.
type Session interface {
	SlideCount() int
	// ExportSlideImage writes slide index (1-based) as a PNG of the given size to dest
	ExportSlideImage(ctx context.Context, index int, size model.Resolution, dest string) error
	// SlideText returns the text of every text-bearing shape on slide index (1-based)
	SlideText(index int) (string, error)
	Close() error
}
