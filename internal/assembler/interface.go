package assembler

import (
	"context"

	"github.com/nguyentantai21042004/deckcast/internal/model"
	"github.com/shopspring/decimal"
)

// Assembler turns slides and their narrations into the final video
type Assembler interface {
	Assemble(ctx context.Context, req Request) (*Result, error)
}

// Request carries one narration entry per slide; nil entries fall back to
// the fixed slide duration.
type Request struct {
	Slides     []model.SlideRecord
	Narrations []*model.NarrationAsset
	Resolution model.Resolution
	OutputPath string
	WorkDir    string
	RunID      string
}

type Result struct {
	OutputPath string
	Segments   []model.Segment
	Duration   decimal.Decimal
}
