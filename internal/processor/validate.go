package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/nguyentantai21042004/deckcast/internal/model"
	"github.com/nguyentantai21042004/deckcast/internal/renderer"
)

func (p *implProcessor) Plan(ctx context.Context, sourcePath string) (model.RunConfig, error) {
	choice, err := model.ParseResolution(p.cfg.Video.Quality, p.cfg.Video.StrictQuality)
	if err != nil {
		return model.RunConfig{}, err
	}
	if !choice.Recognized {
		p.logger.Warn(ctx, "Unknown quality %q, rendering at %s", choice.Preset, choice.Resolution)
	}

	return model.RunConfig{
		SourcePath:       sourcePath,
		OutputDirectory:  p.cfg.Paths.Output,
		VoiceID:          p.cfg.Narration.Voice,
		Resolution:       choice.Resolution,
		NarrationEnabled: p.cfg.NarrationEnabled(),
	}, nil
}

// validate checks every run parameter before any work starts
func (p *implProcessor) validate(run model.RunConfig) error {
	if run.SourcePath == "" {
		return &model.ValidationError{Field: "source", Reason: "no presentation selected"}
	}
	info, err := os.Stat(run.SourcePath)
	if err != nil {
		return &model.ValidationError{Field: "source", Reason: err.Error()}
	}
	if info.IsDir() {
		return &model.ValidationError{Field: "source", Reason: fmt.Sprintf("%s is a directory", run.SourcePath)}
	}
	if _, err := renderer.DetectFormat(run.SourcePath); err != nil {
		if errors.Is(err, renderer.ErrUnsupportedFormat) {
			return &model.ValidationError{Field: "source", Reason: "not a PowerPoint presentation"}
		}
		return &model.ValidationError{Field: "source", Reason: err.Error()}
	}

	if run.OutputDirectory == "" {
		return &model.ValidationError{Field: "output", Reason: "no output directory selected"}
	}

	if run.Resolution.Width <= 0 || run.Resolution.Height <= 0 {
		return &model.ValidationError{Field: "quality", Reason: fmt.Sprintf("invalid frame size %s", run.Resolution)}
	}

	if run.NarrationEnabled {
		if run.VoiceID == "" {
			return &model.ValidationError{Field: "voice", Reason: "no voice selected"}
		}
		if voices := p.cfg.Speech.Voices; len(voices) > 0 && !slices.Contains(voices, run.VoiceID) {
			return &model.ValidationError{Field: "voice", Reason: fmt.Sprintf("%q is not an available voice", run.VoiceID)}
		}
	}

	return nil
}
