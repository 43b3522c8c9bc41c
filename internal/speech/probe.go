package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type ffprobeProber struct {
	timeout time.Duration
}

// NewProber creates a Prober that reads container durations with ffprobe
func NewProber(timeout time.Duration) Prober {
	return &ffprobeProber{timeout: timeout}
}

func (p *ffprobeProber) Duration(ctx context.Context, path string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	out, err := ffmpeg.ProbeWithTimeout(path, p.timeout, ffmpeg.KwArgs{})
	if err != nil {
		return decimal.Zero, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbeDuration(out)
}

func parseProbeDuration(probeJSON string) (decimal.Decimal, error) {
	var out ffprobeOutput
	if err := json.Unmarshal([]byte(probeJSON), &out); err != nil {
		return decimal.Zero, fmt.Errorf("decode ffprobe output: %w", err)
	}
	if out.Format.Duration == "" {
		return decimal.Zero, fmt.Errorf("ffprobe reported no duration")
	}

	d, err := decimal.NewFromString(out.Format.Duration)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse duration %q: %w", out.Format.Duration, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive duration %s", d)
	}
	return d, nil
}
