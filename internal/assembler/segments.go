package assembler

import (
	"fmt"

	"github.com/nguyentantai21042004/deckcast/internal/config"
	"github.com/nguyentantai21042004/deckcast/internal/model"
	"github.com/shopspring/decimal"
)

// BuildSegments pairs each slide with its narration and lays the segments
// end to end on the timeline. A slide without narration lasts fallback seconds.
// Durations are rounded up to whole frames so the encoded clips add up to the
// timeline exactly.
func BuildSegments(slides []model.SlideRecord, narrations []*model.NarrationAsset, res model.Resolution, fallback decimal.Decimal) ([]model.Segment, error) {
	if len(narrations) != len(slides) {
		return nil, fmt.Errorf("got %d narration entries for %d slides", len(narrations), len(slides))
	}
	if !fallback.IsPositive() {
		return nil, fmt.Errorf("fallback duration must be positive, got %s", fallback)
	}

	segments := make([]model.Segment, 0, len(slides))
	start := decimal.Zero

	for i, slide := range slides {
		seg := model.Segment{
			Slide:      slide.Index,
			ImagePath:  slide.ImagePath,
			Duration:   fallback,
			Resolution: res,
		}

		if n := narrations[i]; n != nil {
			if n.Slide != slide.Index {
				return nil, fmt.Errorf("narration for slide %d paired with slide %d", n.Slide, slide.Index)
			}
			if !n.Duration.IsPositive() {
				return nil, fmt.Errorf("slide %d narration has non-positive duration %s", slide.Index, n.Duration)
			}
			seg.AudioPath = n.AudioPath
			seg.Duration = n.Duration
		}
		seg.Duration = model.SnapToFrames(seg.Duration, config.VideoFPS)

		seg.Start = start
		seg.End = start.Add(seg.Duration)
		start = seg.End

		segments = append(segments, seg)
	}

	return segments, nil
}
