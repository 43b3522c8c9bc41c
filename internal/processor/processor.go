package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/deckcast/internal/assembler"
	"github.com/nguyentantai21042004/deckcast/internal/extractor"
	"github.com/nguyentantai21042004/deckcast/internal/logger"
	"github.com/nguyentantai21042004/deckcast/internal/model"
	"github.com/nguyentantai21042004/deckcast/internal/narrator"
)

// Process converts one presentation with the configured defaults
func (p *implProcessor) Process(ctx context.Context, sourcePath string) error {
	run, err := p.Plan(ctx, sourcePath)
	if err != nil {
		return err
	}
	_, err = p.Run(ctx, run)
	return err
}

// Run orchestrates the entire slide-to-video pipeline
func (p *implProcessor) Run(ctx context.Context, run model.RunConfig) (*Result, error) {
	if err := p.validate(run); err != nil {
		return nil, err
	}

	scratchDir := run.ScratchDir()
	for _, dir := range []string{run.OutputDirectory, scratchDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	runID := p.newRunID()
	ctx = logger.WithRunID(ctx, runID)
	defer p.cleanupScratch(ctx, scratchDir, runID)

	startTime := time.Now()
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting conversion: %s", run.SourcePath)
	p.logger.Info(ctx, "Voice: %s | Resolution: %s | Narration: %v", run.VoiceID, run.Resolution, run.NarrationEnabled)
	p.logger.Info(ctx, "========================================")

	// Step 1: Extract slide images and text
	slides, err := p.extractor.Extract(ctx, extractor.Request{
		SourcePath: run.SourcePath,
		ScratchDir: scratchDir,
		RunID:      runID,
	})
	if err != nil {
		return nil, p.fail(ctx, "extract slides", err)
	}

	// Step 2: Narrate every slide that has text
	narrations, err := p.narrator.Narrate(ctx, narrator.Request{
		Slides:  slides,
		Voice:   run.VoiceID,
		Enabled: run.NarrationEnabled,
	})
	if err != nil {
		return nil, p.fail(ctx, "narrate slides", err)
	}

	// Step 3: Assemble and encode the video
	assembled, err := p.assembler.Assemble(ctx, assembler.Request{
		Slides:     slides,
		Narrations: narrations,
		Resolution: run.Resolution,
		OutputPath: run.OutputVideoPath(),
		WorkDir:    scratchDir,
		RunID:      runID,
	})
	if err != nil {
		return nil, p.fail(ctx, "assemble video", err)
	}

	result := &Result{
		RunID:      runID,
		OutputPath: assembled.OutputPath,
		Segments:   assembled.Segments,
		Duration:   assembled.Duration,
	}

	// Step 4: Optional extras never fail a finished video
	if p.script != nil {
		scriptPath := filepath.Join(run.OutputDirectory, run.SourceBaseName()+"_script.docx")
		if err := p.script.Write(ctx, run.SourceBaseName(), slides, assembled.Segments, scriptPath); err != nil {
			p.logger.Warn(ctx, "Failed to write narration script: %v", err)
		} else {
			result.ScriptPath = scriptPath
		}
	}

	if p.publisher != nil {
		location, err := p.publisher.Publish(ctx, result.OutputPath)
		if err != nil {
			p.logger.Warn(ctx, "Failed to publish video: %v", err)
		} else {
			result.RemoteURL = location
		}
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Conversion completed successfully!")
	p.logger.Info(ctx, "Output video: %s (%d slides, %ss)", result.OutputPath, len(slides), result.Duration.StringFixed(1))
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return result, nil
}

// fail logs the single surfaced error of a run, naming the slide when known
func (p *implProcessor) fail(ctx context.Context, step string, err error) error {
	if slide := model.FailedSlide(err); slide > 0 {
		p.logger.Error(ctx, "Conversion failed at slide %d: %v", slide, err)
	} else {
		p.logger.Error(ctx, "Conversion failed: %v", err)
	}
	return fmt.Errorf("%s: %w", step, err)
}
