package narrator

import (
	"context"

	"github.com/nguyentantai21042004/deckcast/internal/model"
)

// Narrator produces spoken narration for extracted slides
type Narrator interface {
	// Narrate returns one entry per slide, in slide order. An entry is nil
	// when the slide has no narration (empty text, narration disabled, or a
	// tolerated synthesis failure).
	Narrate(ctx context.Context, req Request) ([]*model.NarrationAsset, error)
}

type Request struct {
	Slides  []model.SlideRecord
	Voice   string
	Enabled bool
}
