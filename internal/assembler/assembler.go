package assembler

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/deckcast/internal/encoder"
	"github.com/nguyentantai21042004/deckcast/internal/model"
	"github.com/shopspring/decimal"
)

func (a *implAssembler) Assemble(ctx context.Context, req Request) (*Result, error) {
	segments, err := BuildSegments(req.Slides, req.Narrations, req.Resolution, a.fallback)
	if err != nil {
		return nil, fmt.Errorf("build segments: %w", err)
	}
	total := model.TotalDuration(segments)

	a.logger.Info(ctx, "-- Rendering Video...")
	a.logger.Debug(ctx, "%d segments, %ss at %s", len(segments), total.StringFixed(3), req.Resolution)

	err = a.encoder.Encode(ctx, encoder.Job{
		Segments:   segments,
		OutputPath: req.OutputPath,
		WorkDir:    req.WorkDir,
		RunID:      req.RunID,
	})
	if err != nil {
		var encErr *model.EncodingError
		if !errors.As(err, &encErr) {
			err = &model.EncodingError{Err: err}
		}
		return nil, err
	}

	a.logger.Info(ctx, "-- Video Render completed. Video path %s", req.OutputPath)
	a.checkDuration(ctx, req.OutputPath, total)

	return &Result{
		OutputPath: req.OutputPath,
		Segments:   segments,
		Duration:   total,
	}, nil
}

// checkDuration warns when the encoded file drifts from the planned timeline
func (a *implAssembler) checkDuration(ctx context.Context, path string, expected decimal.Decimal) {
	if a.prober == nil {
		return
	}
	actual, err := a.prober.Duration(ctx, path)
	if err != nil {
		a.logger.Warn(ctx, "Could not verify output duration: %v", err)
		return
	}
	if actual.Sub(expected).Abs().GreaterThan(driftTolerance) {
		a.logger.Warn(ctx, "Output duration %ss differs from timeline %ss", actual.StringFixed(3), expected.StringFixed(3))
	}
}
