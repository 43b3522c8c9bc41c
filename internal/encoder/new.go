package encoder

import (
	"time"

	"github.com/nguyentantai21042004/deckcast/internal/config"
	"github.com/nguyentantai21042004/deckcast/internal/logger"
	"github.com/nguyentantai21042004/deckcast/pkg/executor"
)

const ffmpegBinary = "ffmpeg"

type implEncoder struct {
	fit      string
	timeout  time.Duration
	executor executor.Executor
	logger   logger.Logger
}

// New creates an Encoder that drives ffmpeg
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Encoder {
	return &implEncoder{
		fit:      cfg.Video.Fit,
		timeout:  cfg.Timeouts.Encode,
		executor: exec,
		logger:   log,
	}
}
