package script

import (
	"context"

	"github.com/nguyentantai21042004/deckcast/internal/model"
)

// Writer exports the narration script of a rendered deck
type Writer interface {
	Write(ctx context.Context, title string, slides []model.SlideRecord, segments []model.Segment, outputPath string) error
}
