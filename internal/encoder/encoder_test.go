package encoder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/deckcast/internal/config"
	"github.com/nguyentantai21042004/deckcast/internal/logger"
	"github.com/nguyentantai21042004/deckcast/internal/model"
	"github.com/shopspring/decimal"
)

// fakeExecutor writes the .mp4 each ffmpeg call would produce
type fakeExecutor struct {
	calls   []string
	lists   []string
	failAt  int
	callNum int
}

func (f *fakeExecutor) run(dir string, args []string) (string, error) {
	f.callNum++
	f.calls = append(f.calls, strings.Join(args, " "))
	if f.failAt == f.callNum {
		return "", fmt.Errorf("command 'ffmpeg' failed: exit status 1")
	}

	for i := len(args) - 1; i >= 0; i-- {
		if strings.HasSuffix(args[i], ".mp4") {
			out := args[i]
			if dir != "" {
				out = filepath.Join(dir, out)
			}
			return "", os.WriteFile(out, []byte("mp4"), 0644)
		}
	}
	return "", errors.New("no output in args")
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.run("", args)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	for i, a := range args {
		if a == "-i" {
			data, _ := os.ReadFile(filepath.Join(dir, args[i+1]))
			f.lists = append(f.lists, string(data))
		}
	}
	return f.run(dir, args)
}

func (f *fakeExecutor) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func testConfig(fit string) *config.Config {
	cfg := &config.Config{
		Paths: config.PathsConfig{Output: "out"},
		Video: config.VideoConfig{Fit: fit},
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func testJob(t *testing.T) Job {
	dir := t.TempDir()
	work := filepath.Join(dir, "temp")
	if err := os.MkdirAll(work, 0755); err != nil {
		t.Fatal(err)
	}
	return Job{
		Segments: []model.Segment{
			{
				Slide:      1,
				ImagePath:  filepath.Join(work, "r1_deck_slide_1.png"),
				AudioPath:  filepath.Join(work, "r1_deck_slide_1.mp3"),
				Duration:   decimal.RequireFromString("3.2"),
				Resolution: model.Res720p,
			},
			{
				Slide:      2,
				ImagePath:  filepath.Join(work, "r1_deck_slide_2.png"),
				Duration:   decimal.NewFromInt(5),
				Resolution: model.Res720p,
			},
		},
		OutputPath: filepath.Join(dir, "deck.mp4"),
		WorkDir:    work,
		RunID:      "r1",
	}
}

func assertNoIntermediates(t *testing.T, job Job) {
	t.Helper()
	leftovers, _ := filepath.Glob(filepath.Join(job.WorkDir, job.RunID+"_seg*"))
	more, _ := filepath.Glob(filepath.Join(job.WorkDir, job.RunID+"_output.mp4"))
	if len(leftovers)+len(more) > 0 {
		t.Errorf("intermediate files left behind: %v %v", leftovers, more)
	}
}

func TestEncode(t *testing.T) {
	exec := &fakeExecutor{}
	enc := New(testConfig(""), exec, logger.New("error"))
	job := testJob(t)

	if err := enc.Encode(context.Background(), job); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if _, err := os.Stat(job.OutputPath); err != nil {
		t.Fatalf("output video missing: %v", err)
	}
	assertNoIntermediates(t, job)

	if len(exec.calls) != 3 {
		t.Fatalf("ffmpeg called %d times, want 3", len(exec.calls))
	}

	narrated, silent := exec.calls[0], exec.calls[1]
	for _, want := range []string{"-loop 1", "-c:v libx264", "-c:a aac", "-preset slow", "-r 24", "-pix_fmt yuv420p", "-t 3.200", "-frames:v 77", "scale=1280:720", "pad=1280:720", "apad", "r1_deck_slide_1.mp3"} {
		if !strings.Contains(narrated, want) {
			t.Errorf("narrated segment args missing %q: %s", want, narrated)
		}
	}
	for _, want := range []string{"anullsrc", "lavfi", "-t 5.000", "-frames:v 120"} {
		if !strings.Contains(silent, want) {
			t.Errorf("silent segment args missing %q: %s", want, silent)
		}
	}
	if strings.Contains(silent, "apad") {
		t.Errorf("silent segment should not pad narration: %s", silent)
	}

	if !strings.Contains(exec.calls[2], "-f concat") || !strings.Contains(exec.calls[2], "-c copy") {
		t.Errorf("join args = %s", exec.calls[2])
	}
	wantList := "file 'r1_segment_1.mp4'\nfile 'r1_segment_2.mp4'\n"
	if len(exec.lists) != 1 || exec.lists[0] != wantList {
		t.Errorf("concat list = %q, want %q", exec.lists, wantList)
	}
}

func TestEncodeFrameAlignedDuration(t *testing.T) {
	exec := &fakeExecutor{}
	enc := New(testConfig(""), exec, logger.New("error"))
	job := testJob(t)
	job.Segments[0].Duration = model.SnapToFrames(decimal.RequireFromString("3.2"), 24)

	if err := enc.Encode(context.Background(), job); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	// 77 frames last 3.208333s, -t must not round up into frame 78
	for _, want := range []string{"-t 3.208", "-frames:v 77"} {
		if !strings.Contains(exec.calls[0], want) {
			t.Errorf("segment args missing %q: %s", want, exec.calls[0])
		}
	}
}

func TestEncodeCropFit(t *testing.T) {
	exec := &fakeExecutor{}
	enc := New(testConfig(config.FitCrop), exec, logger.New("error"))

	if err := enc.Encode(context.Background(), testJob(t)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(exec.calls[0], "crop=1280:720") || strings.Contains(exec.calls[0], "pad=") {
		t.Errorf("crop fit args = %s", exec.calls[0])
	}
}

func TestEncodeFailures(t *testing.T) {
	tests := []struct {
		name        string
		failAt      int
		wantSegment int
	}{
		{"first segment", 1, 1},
		{"second segment", 2, 2},
		{"join", 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := New(testConfig(""), &fakeExecutor{failAt: tt.failAt}, logger.New("error"))
			job := testJob(t)

			err := enc.Encode(context.Background(), job)

			var encErr *model.EncodingError
			if !errors.As(err, &encErr) {
				t.Fatalf("Encode() error = %v, want EncodingError", err)
			}
			if encErr.Segment != tt.wantSegment {
				t.Errorf("Segment = %d, want %d", encErr.Segment, tt.wantSegment)
			}
			if _, err := os.Stat(job.OutputPath); !os.IsNotExist(err) {
				t.Error("no output file should exist after a failed encode")
			}
			assertNoIntermediates(t, job)
		})
	}
}

func TestEncodeNoSegments(t *testing.T) {
	enc := New(testConfig(""), &fakeExecutor{}, logger.New("error"))
	job := testJob(t)
	job.Segments = nil

	if err := enc.Encode(context.Background(), job); err == nil {
		t.Error("Encode() should fail without segments")
	}
}
