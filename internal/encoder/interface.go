package encoder

import (
	"context"

	"github.com/nguyentantai21042004/deckcast/internal/model"
)

// Encoder writes timed segments to a single video file
type Encoder interface {
	Encode(ctx context.Context, job Job) error
}

// Job describes one encode. Intermediate files are written to WorkDir,
// prefixed with RunID. OutputPath only appears once the encode succeeded.
type Job struct {
	Segments   []model.Segment
	OutputPath string
	WorkDir    string
	RunID      string
}
