package extractor

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/deckcast/internal/model"
)

// Extract exports every slide image and reads its text, in presentation order.
// The renderer session is closed on every path, including a failed export.
func (e *implExtractor) Extract(ctx context.Context, req Request) ([]model.SlideRecord, error) {
	session, err := e.renderer.Open(ctx, req.SourcePath)
	if err != nil {
		return nil, &model.RendererError{Op: "open", Err: err}
	}
	defer func() {
		if err := session.Close(); err != nil {
			e.logger.Warn(ctx, "Failed to close presentation %s: %v", req.SourcePath, err)
		}
	}()

	count := session.SlideCount()
	if count == 0 {
		return nil, &model.RendererError{Op: "open", Err: model.ErrNoSlides}
	}

	base := filepath.Base(req.SourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	slides := make([]model.SlideRecord, 0, count)
	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, &model.RendererError{Slide: i, Op: "export", Err: err}
		}

		imagePath := model.SlideImagePath(req.ScratchDir, req.RunID, base, i)
		if err := session.ExportSlideImage(ctx, i, e.exportSize, imagePath); err != nil {
			return nil, &model.RendererError{Slide: i, Op: "export", Err: err}
		}

		text, err := session.SlideText(i)
		if err != nil {
			// Unreadable text degrades this slide to the silent path
			e.logger.Warn(ctx, "Slide %d text unreadable, treating as empty: %v", i, err)
			text = ""
		}

		e.logger.Info(ctx, "-- Successfully converted Slide %d/%d to Image", i, count)
		slides = append(slides, model.SlideRecord{
			Index:     i,
			ImagePath: imagePath,
			Text:      strings.TrimSpace(text),
		})
	}

	return slides, nil
}
