package speech

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/deckcast/internal/logger"
	"google.golang.org/genai"
)

const defaultPCMRate = 24000

type geminiSynthesizer struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// NewGemini creates a Synthesizer that rotates through the supplied Gemini API keys
func NewGemini(apiKeys []string, model string, log logger.Logger) Synthesizer {
	return &geminiSynthesizer{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

func (s *geminiSynthesizer) Name() string      { return "gemini" }
func (s *geminiSynthesizer) Extension() string { return ".wav" }

func (s *geminiSynthesizer) Synthesize(ctx context.Context, text, voice, outputPath string) error {
	pcm, rate, err := s.callGemini(ctx, text, voice)
	if err != nil {
		return err
	}
	if err := writeWAV(outputPath, pcm, rate, 1, 16); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	return nil
}

// callGemini requests spoken audio and returns raw 16-bit PCM.
// Rotates API keys on 429 / quota errors.
func (s *geminiSynthesizer) callGemini(ctx context.Context, text, voice string) ([]byte, int, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}

	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		key, idx := s.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey(idx)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(text), cfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				s.rotateKey(idx)
				lastErr = err
				continue
			}
			return nil, 0, fmt.Errorf("generate speech: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			for _, part := range result.Candidates[0].Content.Parts {
				if part.InlineData != nil && len(part.InlineData.Data) > 0 {
					return part.InlineData.Data, pcmRate(part.InlineData.MIMEType), nil
				}
			}
		}

		return nil, 0, fmt.Errorf("empty audio response from Gemini")
	}

	return nil, 0, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *geminiSynthesizer) key() (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKeys[s.currentKey], s.currentKey
}

// rotateKey advances past the key that failed, unless another caller already did
func (s *geminiSynthesizer) rotateKey(failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentKey == failed {
		s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	}
}

// pcmRate reads the sample rate from a mime type like "audio/L16;codec=pcm;rate=24000"
func pcmRate(mimeType string) int {
	for _, param := range strings.Split(mimeType, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(param), "=")
		if ok && k == "rate" {
			if rate, err := strconv.Atoi(v); err == nil && rate > 0 {
				return rate
			}
		}
	}
	return defaultPCMRate
}
