package encoder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/deckcast/internal/model"
)

func (e *implEncoder) Encode(ctx context.Context, job Job) error {
	if len(job.Segments) == 0 {
		return &model.EncodingError{Err: errors.New("no segments to encode")}
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	var intermediates []string
	defer func() {
		for _, f := range intermediates {
			os.Remove(filepath.Join(job.WorkDir, f))
		}
	}()

	for _, seg := range job.Segments {
		name := fmt.Sprintf("%s_segment_%d.mp4", job.RunID, seg.Slide)
		intermediates = append(intermediates, name)

		e.logger.Debug(ctx, "Encoding segment %d (%ss, audio: %v)", seg.Slide, seg.Duration.StringFixed(3), seg.HasAudio())
		args := e.segmentArgs(seg, filepath.Join(job.WorkDir, name))
		if _, err := e.executor.Execute(ctx, ffmpegBinary, args...); err != nil {
			return &model.EncodingError{Segment: seg.Slide, Err: err}
		}
	}

	listName := job.RunID + "_segments.txt"
	intermediates = append(intermediates, listName)
	if err := writeConcatList(filepath.Join(job.WorkDir, listName), intermediates[:len(job.Segments)]); err != nil {
		return &model.EncodingError{Err: fmt.Errorf("write segment list: %w", err)}
	}

	tmpName := job.RunID + "_output.mp4"
	intermediates = append(intermediates, tmpName)
	if _, err := e.executor.ExecuteInDir(ctx, job.WorkDir, ffmpegBinary, concatArgs(listName, tmpName)...); err != nil {
		return &model.EncodingError{Err: fmt.Errorf("join segments: %w", err)}
	}

	if err := os.Rename(filepath.Join(job.WorkDir, tmpName), job.OutputPath); err != nil {
		return &model.EncodingError{Err: fmt.Errorf("move output into place: %w", err)}
	}

	return nil
}

// writeConcatList writes an ffmpeg concat demuxer script
func writeConcatList(path string, names []string) error {
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(name, "'", `'\''`))
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

func (e *implEncoder) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}
