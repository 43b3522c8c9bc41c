package config

import (
	"fmt"
	"time"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Renderer    RendererConfig    `yaml:"renderer"`
	Speech      SpeechConfig      `yaml:"speech"`
	Narration   NarrationConfig   `yaml:"narration"`
	Video       VideoConfig       `yaml:"video"`
	Timeouts    TimeoutsConfig    `yaml:"timeouts"`
	Cache       CacheConfig       `yaml:"cache"`
	Script      ScriptConfig      `yaml:"script"`
	Publish     PublishConfig     `yaml:"publish"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type PathsConfig struct {
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	KeepScratch bool   `yaml:"keep_scratch"`
}

type RendererConfig struct {
	SofficePath  string `yaml:"soffice_path"`
	PdftoppmPath string `yaml:"pdftoppm_path"`
	ExportWidth  int    `yaml:"export_width"`
	ExportHeight int    `yaml:"export_height"`
}

type SpeechConfig struct {
	Backend     string   `yaml:"backend"`
	EdgeBinary  string   `yaml:"edge_binary"`
	GeminiModel string   `yaml:"gemini_model"`
	Voices      []string `yaml:"voices"`
}

type NarrationConfig struct {
	Enabled         *bool   `yaml:"enabled"`
	Voice           string  `yaml:"voice"`
	Concurrency     int     `yaml:"concurrency"`
	FailurePolicy   string  `yaml:"failure_policy"`
	FallbackSeconds float64 `yaml:"fallback_seconds"`
}

type VideoConfig struct {
	Quality       string `yaml:"quality"`
	StrictQuality bool   `yaml:"strict_quality"`
	Fit           string `yaml:"fit"`
}

type TimeoutsConfig struct {
	Render    time.Duration `yaml:"render"`
	Synthesis time.Duration `yaml:"synthesis"`
	Encode    time.Duration `yaml:"encode"`
	Probe     time.Duration `yaml:"probe"`
}

type CacheConfig struct {
	Dir string `yaml:"dir"`
}

type ScriptConfig struct {
	Enabled bool `yaml:"enabled"`
}

type PublishConfig struct {
	S3 S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket       string `yaml:"bucket"`
	Prefix       string `yaml:"prefix"`
	Region       string `yaml:"region"`
	Profile      string `yaml:"profile"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Speech backends
const (
	BackendEdge   = "edge"
	BackendGemini = "gemini"
)

// Narration failure policies
const (
	FailureAbort    = "abort"
	FailureFallback = "fallback"
)

// Aspect-ratio strategies applied to every segment of a run
const (
	FitLetterbox = "letterbox"
	FitCrop      = "crop"
)

// EdgeVoices is the voice set offered when speech.voices is not configured.
var EdgeVoices = []string{
	"en-US-AvaNeural",
	"en-US-BrianNeural",
	"en-IN-NeerjaNeural",
	"en-IN-PrabhatNeural",
	"en-US-AndrewNeural",
	"en-US-AriaNeural",
	"en-GB-LibbyNeural",
	"en-GB-RyanNeural",
}

// NarrationEnabled reports narration.enabled, which defaults to true.
func (c *Config) NarrationEnabled() bool {
	return c.Narration.Enabled == nil || *c.Narration.Enabled
}

func (c *Config) Validate() error {
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	switch c.Speech.Backend {
	case "":
		c.Speech.Backend = BackendEdge
	case BackendEdge, BackendGemini:
	default:
		return fmt.Errorf("speech.backend %q is not supported", c.Speech.Backend)
	}

	switch c.Narration.FailurePolicy {
	case "":
		c.Narration.FailurePolicy = FailureAbort
	case FailureAbort, FailureFallback:
	default:
		return fmt.Errorf("narration.failure_policy %q is not supported", c.Narration.FailurePolicy)
	}

	switch c.Video.Fit {
	case "":
		c.Video.Fit = FitLetterbox
	case FitLetterbox, FitCrop:
	default:
		return fmt.Errorf("video.fit %q is not supported", c.Video.Fit)
	}

	if c.Narration.Concurrency < 0 {
		return fmt.Errorf("narration.concurrency must not be negative")
	}
	if c.Narration.FallbackSeconds < 0 {
		return fmt.Errorf("narration.fallback_seconds must not be negative")
	}

	if c.Renderer.SofficePath == "" {
		c.Renderer.SofficePath = "soffice"
	}
	if c.Renderer.PdftoppmPath == "" {
		c.Renderer.PdftoppmPath = "pdftoppm"
	}
	if c.Renderer.ExportWidth == 0 {
		c.Renderer.ExportWidth = 1920
	}
	if c.Renderer.ExportHeight == 0 {
		c.Renderer.ExportHeight = 1080
	}
	if c.Speech.EdgeBinary == "" {
		c.Speech.EdgeBinary = "edge-tts"
	}
	if c.Speech.GeminiModel == "" {
		c.Speech.GeminiModel = "gemini-2.5-flash-preview-tts"
	}
	if len(c.Speech.Voices) == 0 && c.Speech.Backend == BackendEdge {
		c.Speech.Voices = append([]string(nil), EdgeVoices...)
	}
	if c.Narration.Voice == "" {
		c.Narration.Voice = "en-US-AvaNeural"
		if c.Speech.Backend == BackendGemini {
			c.Narration.Voice = "Kore"
		}
	}
	if c.Narration.Concurrency == 0 {
		c.Narration.Concurrency = 1
	}
	if c.Narration.FallbackSeconds == 0 {
		c.Narration.FallbackSeconds = 5
	}
	if c.Video.Quality == "" {
		c.Video.Quality = "1080p"
	}
	if c.Timeouts.Render == 0 {
		c.Timeouts.Render = 2 * time.Minute
	}
	if c.Timeouts.Synthesis == 0 {
		c.Timeouts.Synthesis = time.Minute
	}
	if c.Timeouts.Encode == 0 {
		c.Timeouts.Encode = 30 * time.Minute
	}
	if c.Timeouts.Probe == 0 {
		c.Timeouts.Probe = 30 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
