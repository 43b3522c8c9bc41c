package model

import "github.com/shopspring/decimal"

// SlideRecord is one slide of the source presentation, in presentation order.
// Index is 1-based and contiguous. Records are never mutated after extraction.
type SlideRecord struct {
	Index     int
	ImagePath string
	Text      string
}

// NarrationAsset is the synthesized speech for a slide.
// Duration is measured from the audio file, not estimated from text.
type NarrationAsset struct {
	Slide     int
	AudioPath string
	Duration  decimal.Decimal
	Cached    bool
}

// Segment is the timed audio/visual unit the assembler hands to the encoder.
// Start and End are offsets into the final video; End of one segment equals
// Start of the next.
type Segment struct {
	Slide      int
	ImagePath  string
	AudioPath  string
	Duration   decimal.Decimal
	Start      decimal.Decimal
	End        decimal.Decimal
	Resolution Resolution
}

// HasAudio reports whether the segment carries narration
func (s Segment) HasAudio() bool {
	return s.AudioPath != ""
}

// TotalDuration sums segment durations
func TotalDuration(segments []Segment) decimal.Decimal {
	total := decimal.Zero
	for _, s := range segments {
		total = total.Add(s.Duration)
	}
	return total
}

// SnapToFrames rounds d up to a whole number of frames at fps, so narration
// is never cut and every clip ends on a frame boundary.
func SnapToFrames(d decimal.Decimal, fps int) decimal.Decimal {
	rate := decimal.NewFromInt(int64(fps))
	// round first so an already snapped value does not gain a frame
	frames := d.Mul(rate).Round(6).Ceil()
	return frames.Div(rate)
}

// FrameCount is the number of frames d spans at fps
func FrameCount(d decimal.Decimal, fps int) int64 {
	return d.Mul(decimal.NewFromInt(int64(fps))).Round(0).IntPart()
}
