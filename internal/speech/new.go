package speech

import (
	"fmt"

	"github.com/nguyentantai21042004/deckcast/internal/config"
	"github.com/nguyentantai21042004/deckcast/internal/logger"
	"github.com/nguyentantai21042004/deckcast/pkg/executor"
)

// New creates the Synthesizer selected by speech.backend
func New(cfg *config.Config, exec executor.Executor, apiKeys []string, log logger.Logger) (Synthesizer, error) {
	switch cfg.Speech.Backend {
	case config.BackendEdge, "":
		return NewEdge(cfg.Speech.EdgeBinary, exec, log), nil
	case config.BackendGemini:
		if len(apiKeys) == 0 {
			return nil, fmt.Errorf("gemini backend requires at least one API key")
		}
		return NewGemini(apiKeys, cfg.Speech.GeminiModel, log), nil
	default:
		return nil, fmt.Errorf("unsupported speech backend: %s", cfg.Speech.Backend)
	}
}
