package speech

import (
	"context"

	"github.com/shopspring/decimal"
)

// Synthesizer turns text into an audio file
type Synthesizer interface {
	// Synthesize speaks text with voice and writes the audio to outputPath
	Synthesize(ctx context.Context, text, voice, outputPath string) error
	// Extension is the audio file extension the backend writes, with the dot
	Extension() string
	Name() string
}

// Prober measures media durations
type Prober interface {
	Duration(ctx context.Context, path string) (decimal.Decimal, error)
}
