package phrases

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/sebonomics/CodeFour/internal/lexicon"
	"github.com/sebonomics/CodeFour/internal/textdiff"
)

// minPhraseLength is the shortest phrase, in bytes, worth keeping
const minPhraseLength = 4

// Extractor produces de-duplicated candidate phrases from text.
// The linguistic backend is initialized lazily on first use; if that fails
// the Extractor remembers the failure and uses the regex strategy from then on.
type Extractor struct {
	lex     *lexicon.Lexicon
	factory TaggerFactory
	regex   *RegexStrategy
	logger  *log.Logger

	once     sync.Once
	strategy Strategy
}

// Option configures an Extractor
type Option func(*Extractor)

// WithLogger sets the logger used for backend fallback messages.
func WithLogger(logger *log.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor creates an Extractor. A nil factory selects the regex strategy only.
func NewExtractor(lex *lexicon.Lexicon, factory TaggerFactory, opts ...Option) *Extractor {
	e := &Extractor{
		lex:     lex,
		factory: factory,
		regex:   NewRegexStrategy(lex),
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strategy returns the active strategy, initializing the backend on first call.
func (e *Extractor) Strategy() Strategy {
	e.once.Do(func() {
		if e.factory == nil {
			e.strategy = e.regex
			return
		}
		tagger, err := e.factory()
		if err != nil {
			e.logger.Printf("Warning: linguistic tagger unavailable, using regex phrase extraction: %v", err)
			e.strategy = e.regex
			return
		}
		e.strategy = NewLinguisticStrategy(tagger, e.lex)
	})
	return e.strategy
}

// Extract returns the phrase candidates for text. A failure inside the
// linguistic strategy falls back to regex extraction for this call.
func (e *Extractor) Extract(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	strategy := e.Strategy()
	raw, err := strategy.Extract(text)
	if err != nil {
		e.logger.Printf("Warning: %s phrase extraction failed, falling back to regex: %v", strategy.Name(), err)
		raw, _ = e.regex.Extract(text)
	}
	return e.filter(raw), nil
}

// filter normalizes candidates and keeps unique 2-3 word phrases that carry content.
func (e *Extractor) filter(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	var out []string
	for _, p := range raw {
		p = textdiff.Normalize(p)
		n := len(strings.Fields(p))
		if n < 2 || n > 3 || len(p) < minPhraseLength || seen[p] || e.stopwordsOnly(p) {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func (e *Extractor) stopwordsOnly(phrase string) bool {
	for _, w := range strings.Fields(phrase) {
		if !e.lex.IsStopword(w) {
			return false
		}
	}
	return true
}
