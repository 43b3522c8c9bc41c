package assembler

import (
	"github.com/nguyentantai21042004/deckcast/internal/encoder"
	"github.com/nguyentantai21042004/deckcast/internal/logger"
	"github.com/nguyentantai21042004/deckcast/internal/speech"
	"github.com/shopspring/decimal"
)

// driftTolerance is how far, in seconds, the encoded video may stray from the timeline
var driftTolerance = decimal.NewFromInt(1)

type implAssembler struct {
	encoder  encoder.Encoder
	prober   speech.Prober
	fallback decimal.Decimal
	logger   logger.Logger
}

// New creates a new Assembler. prober may be nil to skip the post-encode duration check.
func New(enc encoder.Encoder, prober speech.Prober, fallbackSeconds float64, log logger.Logger) Assembler {
	return &implAssembler{
		encoder:  enc,
		prober:   prober,
		fallback: decimal.NewFromFloat(fallbackSeconds),
		logger:   log,
	}
}
