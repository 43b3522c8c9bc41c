package model

import (
	"errors"
	"fmt"
)

var ErrNoSlides = errors.New("presentation has no slides")

// ValidationError reports a missing or invalid run parameter
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RendererError reports a presentation open or export failure.
// Slide is 0 when the failure is not tied to a slide.
type RendererError struct {
	Slide int
	Op    string
	Err   error
}

func (e *RendererError) Error() string {
	if e.Slide > 0 {
		return fmt.Sprintf("renderer %s (slide %d): %v", e.Op, e.Slide, e.Err)
	}
	return fmt.Sprintf("renderer %s: %v", e.Op, e.Err)
}

func (e *RendererError) Unwrap() error { return e.Err }

// SynthesisError reports a speech generation failure for one slide
type SynthesisError struct {
	Slide int
	Voice string
	Err   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesize narration for slide %d (voice %s): %v", e.Slide, e.Voice, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// EncodingError reports a failure writing the final video.
// Segment is 0 when the failure is not tied to a segment.
type EncodingError struct {
	Segment int
	Err     error
}

func (e *EncodingError) Error() string {
	if e.Segment > 0 {
		return fmt.Sprintf("encode segment %d: %v", e.Segment, e.Err)
	}
	return fmt.Sprintf("encode video: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// FailedSlide returns the slide a pipeline error is attributed to, or 0
func FailedSlide(err error) int {
	var rErr *RendererError
	if errors.As(err, &rErr) {
		return rErr.Slide
	}
	var sErr *SynthesisError
	if errors.As(err, &sErr) {
		return sErr.Slide
	}
	var eErr *EncodingError
	if errors.As(err, &eErr) {
		return eErr.Segment
	}
	return 0
}
