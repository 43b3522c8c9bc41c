package processor

import (
	"context"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/deckcast/internal/model"
)

// cleanupScratch removes every scratch file owned by runID, logs warning if any fails
func (p *implProcessor) cleanupScratch(ctx context.Context, scratchDir, runID string) {
	if p.cfg.Paths.KeepScratch {
		p.logger.Debug(ctx, "Keeping scratch files in %s", scratchDir)
		return
	}

	files, err := filepath.Glob(model.ScratchPattern(scratchDir, runID))
	if err != nil {
		p.logger.Warn(ctx, "Failed to list scratch files: %v", err)
		return
	}

	for _, f := range files {
		if err := os.Remove(f); err != nil {
			p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", f, err)
		}
	}
	p.logger.Debug(ctx, "Cleaned up %d scratch files", len(files))
}
