package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

const ScratchDirName = "temp"

// RunConfig is the immutable input of a single conversion
type RunConfig struct {
	SourcePath       string
	OutputDirectory  string
	VoiceID          string
	Resolution       Resolution
	NarrationEnabled bool
}

// SourceBaseName is the source file name without directory or extension
func (r RunConfig) SourceBaseName() string {
	base := filepath.Base(r.SourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputVideoPath is <outputDirectory>/<sourceBaseName>.mp4
func (r RunConfig) OutputVideoPath() string {
	return filepath.Join(r.OutputDirectory, r.SourceBaseName()+".mp4")
}

// ScratchDir is <outputDirectory>/temp
func (r RunConfig) ScratchDir() string {
	return filepath.Join(r.OutputDirectory, ScratchDirName)
}

// SlideImagePath names a slide image inside dir: <runId>_<baseName>_slide_<index>.png
func SlideImagePath(dir, runID, baseName string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s_slide_%d.png", runID, baseName, index))
}

// AudioPathFor derives a narration path from a slide image path by swapping the extension
func AudioPathFor(imagePath, ext string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ext
}

// ScratchPattern matches every scratch file owned by a run
func ScratchPattern(dir, runID string) string {
	return filepath.Join(dir, runID+"_*")
}
