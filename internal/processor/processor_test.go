package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/deckcast/internal/assembler"
	"github.com/nguyentantai21042004/deckcast/internal/config"
	"github.com/nguyentantai21042004/deckcast/internal/encoder"
	"github.com/nguyentantai21042004/deckcast/internal/extractor"
	"github.com/nguyentantai21042004/deckcast/internal/logger"
	"github.com/nguyentantai21042004/deckcast/internal/model"
	"github.com/nguyentantai21042004/deckcast/internal/narrator"
	"github.com/nguyentantai21042004/deckcast/internal/renderer"
	"github.com/shopspring/decimal"
)

// fakeSession serves fixed slide texts and writes placeholder images
type fakeSession struct {
	texts []string
}

func (s *fakeSession) SlideCount() int { return len(s.texts) }

func (s *fakeSession) ExportSlideImage(ctx context.Context, index int, size model.Resolution, dest string) error {
	return os.WriteFile(dest, []byte("png"), 0644)
}

func (s *fakeSession) SlideText(index int) (string, error) { return s.texts[index-1], nil }
func (s *fakeSession) Close() error                        { return nil }

type fakeRenderer struct {
	texts []string
}

func (r *fakeRenderer) Open(ctx context.Context, path string) (renderer.Session, error) {
	return &fakeSession{texts: r.texts}, nil
}

// fakeSynthesizer writes the text as audio; failOn names text that cannot be spoken
type fakeSynthesizer struct {
	failOn string
}

func (f *fakeSynthesizer) Name() string      { return "fake" }
func (f *fakeSynthesizer) Extension() string { return ".mp3" }

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text, voice, outputPath string) error {
	if text == f.failOn {
		return errors.New("speech service unreachable")
	}
	return os.WriteFile(outputPath, []byte(text), 0644)
}

// sizeProber reports one second per byte
type sizeProber struct{}

func (sizeProber) Duration(ctx context.Context, path string) (decimal.Decimal, error) {
	info, err := os.Stat(path)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(info.Size()), nil
}

// ffmpegStub writes the .mp4 named by each ffmpeg call
type ffmpegStub struct {
	mu    sync.Mutex
	calls int
}

func (f *ffmpegStub) write(dir string, args []string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	for i := len(args) - 1; i >= 0; i-- {
		if strings.HasSuffix(args[i], ".mp4") {
			out := args[i]
			if dir != "" {
				out = filepath.Join(dir, out)
			}
			return "", os.WriteFile(out, []byte("mp4"), 0644)
		}
	}
	return "", fmt.Errorf("no output file in %v", args)
}

func (f *ffmpegStub) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.write("", args)
}

func (f *ffmpegStub) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.write(dir, args)
}

func (f *ffmpegStub) LookPath(name string) (string, error) { return name, nil }

type fakeScript struct {
	path string
}

func (f *fakeScript) Write(ctx context.Context, title string, slides []model.SlideRecord, segments []model.Segment, outputPath string) error {
	f.path = outputPath
	return nil
}

type fakePublisher struct {
	err error
}

func (f *fakePublisher) Publish(ctx context.Context, localPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "s3://bucket/" + filepath.Base(localPath), nil
}

type fixture struct {
	cfg    *config.Config
	source string
	synth  *fakeSynthesizer
}

func newFixture(t *testing.T, mutate func(*config.Config)) *fixture {
	t.Helper()
	dir := t.TempDir()

	source := filepath.Join(dir, "deck.pptx")
	if err := os.WriteFile(source, []byte("PK\x03\x04rest-of-zip"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{Paths: config.PathsConfig{Output: filepath.Join(dir, "out")}}
	if mutate != nil {
		mutate(cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	return &fixture{cfg: cfg, source: source, synth: &fakeSynthesizer{}}
}

func (f *fixture) processor(texts []string, opts ...Option) Processor {
	log := logger.New("error")
	ext := extractor.New(&fakeRenderer{texts: texts}, model.Res1080p, log)
	nar := narrator.New(f.cfg, f.synth, sizeProber{}, log)
	asm := assembler.New(encoder.New(f.cfg, &ffmpegStub{}, log), nil, f.cfg.Narration.FallbackSeconds, log)
	return New(f.cfg, ext, nar, asm, log, opts...)
}

func (f *fixture) run(quality string) model.RunConfig {
	choice, _ := model.ParseResolution(quality, false)
	return model.RunConfig{
		SourcePath:       f.source,
		OutputDirectory:  f.cfg.Paths.Output,
		VoiceID:          "en-US-AvaNeural",
		Resolution:       choice.Resolution,
		NarrationEnabled: true,
	}
}

func assertScratchClean(t *testing.T, run model.RunConfig, runID string) {
	t.Helper()
	left, _ := filepath.Glob(model.ScratchPattern(run.ScratchDir(), runID))
	if len(left) > 0 {
		t.Errorf("scratch files left behind: %v", left)
	}
}

func TestRunThreeSlideDeck(t *testing.T) {
	f := newFixture(t, nil)
	script := &fakeScript{}
	p := f.processor([]string{"Intro text", "", "Closing"}, WithScriptWriter(script), WithPublisher(&fakePublisher{}))
	run := f.run("720p")

	res, err := p.Run(context.Background(), run)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.OutputPath != run.OutputVideoPath() {
		t.Errorf("OutputPath = %s, want %s", res.OutputPath, run.OutputVideoPath())
	}
	if _, err := os.Stat(res.OutputPath); err != nil {
		t.Errorf("output video missing: %v", err)
	}

	if len(res.Segments) != 3 {
		t.Fatalf("len(Segments) = %d, want 3", len(res.Segments))
	}
	wantDur := []int64{10, 5, 7}
	for i, seg := range res.Segments {
		if seg.Resolution != model.Res720p {
			t.Errorf("segment %d resolution = %s, want 1280x720", i+1, seg.Resolution)
		}
		if !seg.Duration.Equal(decimal.NewFromInt(wantDur[i])) {
			t.Errorf("segment %d duration = %s, want %d", i+1, seg.Duration, wantDur[i])
		}
	}
	if res.Segments[1].HasAudio() {
		t.Error("slide 2 has no text and should be silent")
	}
	if !res.Duration.Equal(decimal.NewFromInt(22)) {
		t.Errorf("Duration = %s, want 22", res.Duration)
	}

	wantScript := filepath.Join(run.OutputDirectory, "deck_script.docx")
	if script.path != wantScript || res.ScriptPath != wantScript {
		t.Errorf("script written to %q (result %q), want %q", script.path, res.ScriptPath, wantScript)
	}
	if res.RemoteURL != "s3://bucket/deck.mp4" {
		t.Errorf("RemoteURL = %q", res.RemoteURL)
	}

	assertScratchClean(t, run, res.RunID)
}

func TestRunSynthesisFailureAborts(t *testing.T) {
	f := newFixture(t, nil)
	f.synth.failOn = "Middle"
	p := f.processor([]string{"First", "Middle", "Last"})
	run := f.run("1080p")

	_, err := p.Run(context.Background(), run)

	var synthErr *model.SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("Run() error = %v, want SynthesisError", err)
	}
	if model.FailedSlide(err) != 2 {
		t.Errorf("FailedSlide() = %d, want 2", model.FailedSlide(err))
	}
	if _, err := os.Stat(run.OutputVideoPath()); !os.IsNotExist(err) {
		t.Error("no video should exist after a failed run")
	}
	left, _ := filepath.Glob(filepath.Join(run.ScratchDir(), "*"))
	if len(left) > 0 {
		t.Errorf("scratch files left behind: %v", left)
	}
}

func TestRunPublishFailureKeepsVideo(t *testing.T) {
	f := newFixture(t, nil)
	p := f.processor([]string{"Only"}, WithPublisher(&fakePublisher{err: errors.New("access denied")}))

	res, err := p.Run(context.Background(), f.run("480p"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.RemoteURL != "" {
		t.Errorf("RemoteURL = %q, want empty", res.RemoteURL)
	}
	if _, err := os.Stat(res.OutputPath); err != nil {
		t.Errorf("output video missing: %v", err)
	}
}

func TestRunIDsAreUnique(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Paths.KeepScratch = true })
	p := f.processor([]string{"Hi"})

	first, err := p.Run(context.Background(), f.run("720p"))
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	second, err := p.Run(context.Background(), f.run("720p"))
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if first.RunID == second.RunID {
		t.Fatalf("run IDs collide: %s", first.RunID)
	}
	// kept scratch images from both runs coexist
	run := f.run("720p")
	for _, id := range []string{first.RunID, second.RunID} {
		img := model.SlideImagePath(run.ScratchDir(), id, "deck", 1)
		if _, err := os.Stat(img); err != nil {
			t.Errorf("scratch image for run %s missing: %v", id, err)
		}
	}
}

func TestRunValidation(t *testing.T) {
	f := newFixture(t, nil)
	p := f.processor([]string{"Hi"})

	notPPT := filepath.Join(t.TempDir(), "notes.pptx")
	if err := os.WriteFile(notPPT, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*model.RunConfig)
		field  string
	}{
		{"no source", func(r *model.RunConfig) { r.SourcePath = "" }, "source"},
		{"missing source", func(r *model.RunConfig) { r.SourcePath = filepath.Join(t.TempDir(), "gone.pptx") }, "source"},
		{"source is directory", func(r *model.RunConfig) { r.SourcePath = t.TempDir() }, "source"},
		{"not a presentation", func(r *model.RunConfig) { r.SourcePath = notPPT }, "source"},
		{"no output", func(r *model.RunConfig) { r.OutputDirectory = "" }, "output"},
		{"unknown voice", func(r *model.RunConfig) { r.VoiceID = "xx-Robot" }, "voice"},
		{"empty voice", func(r *model.RunConfig) { r.VoiceID = "" }, "voice"},
		{"zero resolution", func(r *model.RunConfig) { r.Resolution = model.Resolution{} }, "quality"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := f.run("720p")
			tt.mutate(&run)

			_, err := p.Run(context.Background(), run)

			var vErr *model.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Run() error = %v, want ValidationError", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("Field = %s, want %s", vErr.Field, tt.field)
			}
		})
	}

	t.Run("voice ignored without narration", func(t *testing.T) {
		run := f.run("720p")
		run.VoiceID = ""
		run.NarrationEnabled = false
		if _, err := p.Run(context.Background(), run); err != nil {
			t.Errorf("Run() error = %v", err)
		}
	})
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name    string
		quality string
		strict  bool
		want    model.Resolution
		wantErr bool
	}{
		{"720p", "720p", false, model.Res720p, false},
		{"lenient unknown", "4k", false, model.Res1080p, false},
		{"strict unknown", "4k", true, model.Resolution{}, true},
		{"strict 1080p", "1080p", true, model.Res1080p, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(c *config.Config) {
				c.Video.Quality = tt.quality
				c.Video.StrictQuality = tt.strict
			})
			p := f.processor(nil)

			run, err := p.Plan(context.Background(), f.source)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Plan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && run.Resolution != tt.want {
				t.Errorf("Resolution = %s, want %s", run.Resolution, tt.want)
			}
			if err == nil && (run.VoiceID != "en-US-AvaNeural" || !run.NarrationEnabled) {
				t.Errorf("Plan() = %+v", run)
			}
		})
	}
}
