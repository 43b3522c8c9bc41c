package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nguyentantai21042004/deckcast/internal/assembler"
	"github.com/nguyentantai21042004/deckcast/internal/cache"
	"github.com/nguyentantai21042004/deckcast/internal/config"
	"github.com/nguyentantai21042004/deckcast/internal/encoder"
	"github.com/nguyentantai21042004/deckcast/internal/extractor"
	"github.com/nguyentantai21042004/deckcast/internal/logger"
	"github.com/nguyentantai21042004/deckcast/internal/model"
	"github.com/nguyentantai21042004/deckcast/internal/narrator"
	"github.com/nguyentantai21042004/deckcast/internal/processor"
	"github.com/nguyentantai21042004/deckcast/internal/publisher"
	"github.com/nguyentantai21042004/deckcast/internal/renderer"
	"github.com/nguyentantai21042004/deckcast/internal/script"
	"github.com/nguyentantai21042004/deckcast/internal/speech"
	"github.com/nguyentantai21042004/deckcast/internal/watcher"
	"github.com/nguyentantai21042004/deckcast/pkg/executor"
)

const defaultConfigPath = "config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to YAML config")
	input := flag.String("in", "", "presentation to convert (.pptx or .ppt)")
	output := flag.String("out", "", "output directory, overrides paths.output")
	voice := flag.String("voice", "", "narration voice, overrides narration.voice")
	quality := flag.String("quality", "", "480p, 720p or 1080p, overrides video.quality")
	noNarration := flag.Bool("no-narration", false, "render silent slides with the fallback duration")
	watch := flag.Bool("watch", false, "convert every presentation dropped into paths.input")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	path := *configPath
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && path == defaultConfigPath {
		path = ""
	}

	cfg, err := config.Load(path, func(c *config.Config) {
		if *output != "" {
			c.Paths.Output = *output
		}
		if *voice != "" {
			c.Narration.Voice = *voice
		}
		if *quality != "" {
			c.Video.Quality = *quality
		}
		if *noNarration {
			disabled := false
			c.Narration.Enabled = &disabled
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *input, *watch); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, input string, watch bool) error {
	if input == "" && !watch {
		return fmt.Errorf("nothing to do: pass -in <presentation> or -watch")
	}

	// Initialize logger
	logOpts := logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
	if cfg.Logging.File != "" {
		sink, closer, err := logger.OpenSink(cfg.Logging.File)
		if err != nil {
			return err
		}
		defer closer.Close()
		logOpts.Output = sink
	}
	log := logger.NewWithOptions(logOpts)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			log.Info(ctx, "Shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Deckcast: slides to narrated video")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Speech backend: %s | Voice: %s | Quality: %s", cfg.Speech.Backend, cfg.Narration.Voice, cfg.Video.Quality)

	proc, closeFn, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()

	if !watch {
		if err := proc.Process(ctx, input); err != nil {
			return fmt.Errorf("convert %s: %w", input, err)
		}
		return nil
	}

	return watchInput(ctx, cfg, proc, log)
}

// build wires every pipeline component from the configuration
func build(ctx context.Context, cfg *config.Config, log logger.Logger) (processor.Processor, func(), error) {
	closeFn := func() {}
	exec := executor.New()

	synth, err := speech.New(cfg, exec, apiKeys(), log)
	if err != nil {
		return nil, nil, fmt.Errorf("init speech backend: %w", err)
	}
	prober := speech.NewProber(cfg.Timeouts.Probe)

	var narratorOpts []narrator.Option
	if cfg.Cache.Dir != "" {
		store, err := cache.New(cfg.Cache.Dir, log)
		if err != nil {
			return nil, nil, fmt.Errorf("open narration cache: %w", err)
		}
		narratorOpts = append(narratorOpts, narrator.WithCache(store))
		closeFn = func() {
			if err := store.Close(); err != nil {
				log.Warn(ctx, "Failed to close narration cache: %v", err)
			}
		}
	}

	exportSize := model.Resolution{Width: cfg.Renderer.ExportWidth, Height: cfg.Renderer.ExportHeight}
	ext := extractor.New(renderer.New(cfg, exec, log), exportSize, log)
	nar := narrator.New(cfg, synth, prober, log, narratorOpts...)
	asm := assembler.New(encoder.New(cfg, exec, log), prober, cfg.Narration.FallbackSeconds, log)

	var procOpts []processor.Option
	if cfg.Script.Enabled {
		procOpts = append(procOpts, processor.WithScriptWriter(script.New(log)))
	}
	if cfg.Publish.S3.Bucket != "" {
		pub, err := publisher.New(ctx, cfg.Publish.S3, log)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("init publisher: %w", err)
		}
		procOpts = append(procOpts, processor.WithPublisher(pub))
	}

	return processor.New(cfg, ext, nar, asm, log, procOpts...), closeFn, nil
}

func watchInput(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger) error {
	if cfg.Paths.Input == "" {
		return fmt.Errorf("watch mode requires paths.input")
	}
	for _, dir := range []string{cfg.Paths.Input, cfg.Paths.Output} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	// Create watcher with processor as handler and concurrency control
	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Deckcast is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher: %w", err)
	}

	log.Info(ctx, "Deckcast stopped")
	return nil
}

// apiKeys reads comma separated Gemini keys from GEMINI_API_KEYS, falling back to GEMINI_API_KEY
func apiKeys() []string {
	raw := os.Getenv("GEMINI_API_KEYS")
	if raw == "" {
		raw = os.Getenv("GEMINI_API_KEY")
	}

	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
