package speech

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/deckcast/internal/logger"
	"github.com/nguyentantai21042004/deckcast/pkg/executor"
)

type edgeSynthesizer struct {
	binary   string
	executor executor.Executor
	logger   logger.Logger
}

// NewEdge creates a Synthesizer that drives the edge-tts command line tool
func NewEdge(binary string, exec executor.Executor, log logger.Logger) Synthesizer {
	return &edgeSynthesizer{
		binary:   binary,
		executor: exec,
		logger:   log,
	}
}

func (s *edgeSynthesizer) Name() string      { return "edge" }
func (s *edgeSynthesizer) Extension() string { return ".mp3" }

// Synthesize passes text as a single --text= argument so text starting with
// a dash is never read as a flag.
func (s *edgeSynthesizer) Synthesize(ctx context.Context, text, voice, outputPath string) error {
	args := []string{
		"--voice", voice,
		"--text=" + text,
		"--write-media", outputPath,
	}

	if _, err := s.executor.Execute(ctx, s.binary, args...); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("edge-tts: %w", err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return fmt.Errorf("edge-tts output: %w", err)
	}
	if info.Size() == 0 {
		os.Remove(outputPath)
		return fmt.Errorf("edge-tts wrote an empty file for voice %s", voice)
	}

	s.logger.Debug(ctx, "edge-tts wrote %s (%d bytes)", outputPath, info.Size())
	return nil
}
