package processor

import (
	"context"

	"github.com/nguyentantai21042004/deckcast/internal/model"
	"github.com/shopspring/decimal"
)

// Processor converts presentations into narrated videos
type Processor interface {
	// Process converts sourcePath using the configured run defaults
	Process(ctx context.Context, sourcePath string) error
	// Plan builds the run parameters for sourcePath from the configuration
	Plan(ctx context.Context, sourcePath string) (model.RunConfig, error)
	// Run executes one conversion. Either a complete video exists at
	// run.OutputVideoPath() afterwards or an error is returned.
	Run(ctx context.Context, run model.RunConfig) (*Result, error)
}

type Result struct {
	RunID      string
	OutputPath string
	ScriptPath string
	RemoteURL  string
	Segments   []model.Segment
	Duration   decimal.Decimal
}
