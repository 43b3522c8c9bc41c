package renderer

import (
	"time"

	"github.com/nguyentantai21042004/deckcast/internal/config"
	"github.com/nguyentantai21042004/deckcast/internal/logger"
	"github.com/nguyentantai21042004/deckcast/pkg/executor"
)

type implRenderer struct {
	cfg      config.RendererConfig
	timeout  time.Duration
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Renderer backed by headless LibreOffice and pdftoppm
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Renderer {
	return &implRenderer{
		cfg:      cfg.Renderer,
		timeout:  cfg.Timeouts.Render,
		executor: exec,
		logger:   log,
	}
}
