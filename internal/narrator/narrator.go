package narrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/deckcast/internal/cache"
	"github.com/nguyentantai21042004/deckcast/internal/config"
	"github.com/nguyentantai21042004/deckcast/internal/model"
)

func (n *implNarrator) Narrate(ctx context.Context, req Request) ([]*model.NarrationAsset, error) {
	assets := make([]*model.NarrationAsset, len(req.Slides))
	if !req.Enabled {
		n.logger.Info(ctx, "Narration disabled, slides will use the fallback duration")
		return assets, nil
	}

	if n.cfg.Narration.Concurrency <= 1 {
		for i, slide := range req.Slides {
			if err := ctx.Err(); err != nil {
				return nil, &model.SynthesisError{Slide: slide.Index, Voice: req.Voice, Err: err}
			}
			asset, err := n.narrateSlide(ctx, slide, req.Voice)
			if err != nil {
				return nil, err
			}
			assets[i] = asset
		}
		return assets, nil
	}

	return n.narrateParallel(ctx, req, assets)
}

// narrateParallel keeps results indexed by slide. When several slides fail,
// the lowest failing slide is reported, not whichever finished first.
func (n *implNarrator) narrateParallel(ctx context.Context, req Request, assets []*model.NarrationAsset) ([]*model.NarrationAsset, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := newSemaphore(n.cfg.Narration.Concurrency)
	errs := make([]error, len(req.Slides))

	var wg sync.WaitGroup
	for i, slide := range req.Slides {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := sem.acquire(runCtx); err != nil {
				errs[i] = &model.SynthesisError{Slide: slide.Index, Voice: req.Voice, Err: err}
				return
			}
			defer sem.release()

			asset, err := n.narrateSlide(runCtx, slide, req.Voice)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			assets[i] = asset
		}()
	}
	wg.Wait()

	var canceled error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) {
			if canceled == nil {
				canceled = err
			}
			continue
		}
		return nil, err
	}
	if canceled != nil {
		return nil, canceled
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return assets, nil
}

// narrateSlide returns a nil asset for slides with nothing to say
func (n *implNarrator) narrateSlide(ctx context.Context, slide model.SlideRecord, voice string) (*model.NarrationAsset, error) {
	text := strings.TrimSpace(slide.Text)
	if text == "" {
		n.logger.Debug(ctx, "Slide %d has no text, skipping narration", slide.Index)
		return nil, nil
	}

	audioPath := model.AudioPathFor(slide.ImagePath, n.synthesizer.Extension())
	key := cache.Key{Backend: n.synthesizer.Name(), Voice: voice, Text: text}

	if n.cache != nil {
		duration, ok, err := n.cache.Restore(ctx, key, audioPath)
		if err != nil {
			n.logger.Warn(ctx, "Narration cache lookup failed for slide %d: %v", slide.Index, err)
		} else if ok {
			n.logger.Info(ctx, "-- Reused cached narration for %s", filepath.Base(slide.ImagePath))
			return &model.NarrationAsset{
				Slide:     slide.Index,
				AudioPath: audioPath,
				Duration:  duration,
				Cached:    true,
			}, nil
		}
	}

	asset, err := n.synthesize(ctx, slide, text, voice, audioPath)
	if err != nil {
		os.Remove(audioPath)
		if ctx.Err() == nil && n.cfg.Narration.FailurePolicy == config.FailureFallback {
			n.logger.Warn(ctx, "Narration failed for slide %d, using fallback duration: %v", slide.Index, err)
			return nil, nil
		}
		return nil, &model.SynthesisError{Slide: slide.Index, Voice: voice, Err: err}
	}

	if n.cache != nil {
		if err := n.cache.Save(ctx, key, audioPath, asset.Duration); err != nil {
			n.logger.Warn(ctx, "Failed to cache narration for slide %d: %v", slide.Index, err)
		}
	}

	n.logger.Info(ctx, "-- Successfully created AI narration for %s", filepath.Base(slide.ImagePath))
	return asset, nil
}

func (n *implNarrator) synthesize(ctx context.Context, slide model.SlideRecord, text, voice, audioPath string) (*model.NarrationAsset, error) {
	callCtx, cancel := n.withTimeout(ctx)
	defer cancel()

	if err := n.synthesizer.Synthesize(callCtx, text, voice, audioPath); err != nil {
		return nil, err
	}

	duration, err := n.prober.Duration(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	return &model.NarrationAsset{
		Slide:     slide.Index,
		AudioPath: audioPath,
		Duration:  duration,
	}, nil
}

func (n *implNarrator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if n.cfg.Timeouts.Synthesis <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, n.cfg.Timeouts.Synthesis)
}
