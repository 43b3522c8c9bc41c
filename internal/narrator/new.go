package narrator

import (
	"github.com/nguyentantai21042004/deckcast/internal/cache"
	"github.com/nguyentantai21042004/deckcast/internal/config"
	"github.com/nguyentantai21042004/deckcast/internal/logger"
	"github.com/nguyentantai21042004/deckcast/internal/speech"
)

type implNarrator struct {
	cfg         *config.Config
	synthesizer speech.Synthesizer
	prober      speech.Prober
	cache       cache.Store
	logger      logger.Logger
}

type Option func(*implNarrator)

// WithCache reuses narrations from store across runs
func WithCache(store cache.Store) Option {
	return func(n *implNarrator) {
		n.cache = store
	}
}

// New creates a new Narrator instance
func New(cfg *config.Config, synth speech.Synthesizer, prober speech.Prober, log logger.Logger, opts ...Option) Narrator {
	n := &implNarrator{
		cfg:         cfg,
		synthesizer: synth,
		prober:      prober,
		logger:      log,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}
