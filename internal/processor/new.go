package processor

import (
	"github.com/google/uuid"
	"github.com/nguyentantai21042004/deckcast/internal/assembler"
	"github.com/nguyentantai21042004/deckcast/internal/config"
	"github.com/nguyentantai21042004/deckcast/internal/extractor"
	"github.com/nguyentantai21042004/deckcast/internal/logger"
	"github.com/nguyentantai21042004/deckcast/internal/narrator"
	"github.com/nguyentantai21042004/deckcast/internal/publisher"
	"github.com/nguyentantai21042004/deckcast/internal/script"
)

type implProcessor struct {
	cfg       *config.Config
	extractor extractor.Extractor
	narrator  narrator.Narrator
	assembler assembler.Assembler
	script    script.Writer
	publisher publisher.Publisher
	newRunID  func() string
	logger    logger.Logger
}

type Option func(*implProcessor)

// WithScriptWriter exports a narration script next to every video
func WithScriptWriter(w script.Writer) Option {
	return func(p *implProcessor) {
		p.script = w
	}
}

// WithPublisher uploads every finished video
func WithPublisher(pub publisher.Publisher) Option {
	return func(p *implProcessor) {
		p.publisher = pub
	}
}

// New creates a new Processor instance
func New(cfg *config.Config, ext extractor.Extractor, nar narrator.Narrator, asm assembler.Assembler, log logger.Logger, opts ...Option) Processor {
	p := &implProcessor{
		cfg:       cfg,
		extractor: ext,
		narrator:  nar,
		assembler: asm,
		newRunID:  uuid.NewString,
		logger:    log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
