package model

import "fmt"

// Resolution is a target frame size in pixels
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Quality presets
const (
	Quality480p  = "480p"
	Quality720p  = "720p"
	Quality1080p = "1080p"
)

var (
	Res480p  = Resolution{Width: 720, Height: 480}
	Res720p  = Resolution{Width: 1280, Height: 720}
	Res1080p = Resolution{Width: 1920, Height: 1080}
)

// ResolutionChoice is the outcome of resolving a quality preset.
// Recognized is false when an unknown preset fell back to 1080p.
type ResolutionChoice struct {
	Preset     string
	Resolution Resolution
	Recognized bool
}

// ParseResolution maps a quality preset to its frame size.
// "480p" and "720p" map to their sizes and everything else maps to 1920x1080.
// In strict mode an unknown preset is a ValidationError instead of a silent fallback.
func ParseResolution(preset string, strict bool) (ResolutionChoice, error) {
	switch preset {
	case Quality480p:
		return ResolutionChoice{Preset: preset, Resolution: Res480p, Recognized: true}, nil
	case Quality720p:
		return ResolutionChoice{Preset: preset, Resolution: Res720p, Recognized: true}, nil
	case Quality1080p:
		return ResolutionChoice{Preset: preset, Resolution: Res1080p, Recognized: true}, nil
	}

	if strict {
		return ResolutionChoice{}, &ValidationError{
			Field:  "quality",
			Reason: fmt.Sprintf("unknown preset %q (want %s, %s or %s)", preset, Quality480p, Quality720p, Quality1080p),
		}
	}
	return ResolutionChoice{Preset: preset, Resolution: Res1080p, Recognized: false}, nil
}
