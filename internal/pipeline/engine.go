// Package pipeline provides the high-level orchestration for learning style rules from report batches.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/sebonomics/CodeFour/internal/consolidate"
	"github.com/sebonomics/CodeFour/internal/detect"
	"github.com/sebonomics/CodeFour/internal/lexicon"
	"github.com/sebonomics/CodeFour/internal/phrasematch"
	"github.com/sebonomics/CodeFour/internal/phrases"
	"github.com/sebonomics/CodeFour/internal/types"
)

// ProgressEvent represents a progress update during training
type ProgressEvent struct {
	Step     string `json:"step"`
	Message  string `json:"message"`
	ReportID int    `json:"report_id,omitempty"`
}

// ProgressCallback is called when training progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for an Engine
type Options struct {
	Workers int // Reports analyzed concurrently; values below 1 mean 1

	// TaggerFactory builds the POS tagger for phrase extraction. Nil selects
	// regex n-gram extraction only.
	TaggerFactory phrases.TaggerFactory

	PhraseFloor         *float64 // Nil selects phrasematch.DefaultFloor; zero accepts any related pair
	PhraseCeiling       float64  // Zero selects phrasematch.DefaultCeiling
	PhraseMinConfidence float64  // Zero selects phrasematch.DefaultMinConfidence

	// Store receives every phrase change observed. Nil creates an in-memory
	// store. Train clears it at the start of each session.
	Store phrasematch.FrequencyStore

	Logger     *log.Logger
	OnProgress ProgressCallback
}

// Engine runs detection, phrase matching and consolidation over report batches.
// It is safe for concurrent use.
type Engine struct {
	lex          *lexicon.Lexicon
	detector     *detect.Detector
	matcher      *phrasematch.Matcher
	consolidator *consolidate.Consolidator
	store        phrasematch.FrequencyStore
	logger       *log.Logger
	workers      int
	onProgress   ProgressCallback

	sessionMu sync.Mutex // Serializes Train sessions over the shared store
}

// NewEngine creates an Engine backed by lex.
func NewEngine(lex *lexicon.Lexicon, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	store := opts.Store
	if store == nil {
		store = phrasematch.NewMemoryStore()
	}

	extractor := phrases.NewExtractor(lex, opts.TaggerFactory, phrases.WithLogger(logger))
	matcher := phrasematch.NewMatcher(extractor, lex, store)
	if opts.PhraseFloor != nil {
		matcher.Floor = *opts.PhraseFloor
	}
	if opts.PhraseCeiling > 0 {
		matcher.Ceiling = opts.PhraseCeiling
	}
	if opts.PhraseMinConfidence > 0 {
		matcher.MinConfidence = opts.PhraseMinConfidence
	}

	return &Engine{
		lex:          lex,
		detector:     detect.New(lex),
		matcher:      matcher,
		consolidator: consolidate.New(lex),
		store:        store,
		logger:       logger,
		workers:      max(opts.Workers, 1),
		onProgress:   opts.OnProgress,
	}
}

// PhraseStore returns the frequency store holding the current session's phrase changes.
func (e *Engine) PhraseStore() phrasematch.FrequencyStore {
	return e.store
}

// DetectPatterns runs every detector against one pair. Detectors that fail
// are logged and contribute nothing.
func (e *Engine) DetectPatterns(original, edited string) []types.StyleRule {
	rules, errs := e.detector.RunAll(original, edited)
	for _, err := range errs {
		e.logger.Printf("Warning: %v", err)
	}
	return rules
}

// AnalyzeAllStylePatterns runs the detectors and the phrase-change matcher
// against one pair. It returns an error only when ctx is done.
func (e *Engine) AnalyzeAllStylePatterns(ctx context.Context, original, edited string) ([]types.StyleRule, error) {
	rules, _, err := e.analyzePair(ctx, 0, original, edited)
	return rules, err
}

// analyzePair returns the raw rules for one pair, tagged with reportID, plus
// the failures it recovered from.
func (e *Engine) analyzePair(ctx context.Context, reportID int, original, edited string) ([]types.StyleRule, []*ReportError, error) {
	var failures []*ReportError

	rules, errs := e.detector.RunAll(original, edited)
	for _, err := range errs {
		e.logger.Printf("Warning: report %d: %v", reportID, err)
		failures = append(failures, &ReportError{ReportID: reportID, Message: "detector failed", Cause: err})
	}

	changes, err := e.detectPhraseChanges(ctx, original, edited)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		e.logger.Printf("Warning: report %d: phrase matching failed: %v", reportID, err)
		failures = append(failures, &ReportError{ReportID: reportID, Message: "phrase matching failed", Cause: err})
	}
	rules = append(rules, e.matcher.PromoteToRules(changes, reportID)...)

	for i := range rules {
		rules[i].SourceReportIDs = []int{reportID}
	}
	return rules, failures, nil
}

// detectPhraseChanges runs the phrase matcher, converting a panic in the
// extractor or tagger into an error so the detector results survive.
func (e *Engine) detectPhraseChanges(ctx context.Context, original, edited string) (changes []types.PhraseChange, err error) {
	defer func() {
		if r := recover(); r != nil {
			changes = nil
			err = fmt.Errorf("phrase matcher panicked: %v", r)
		}
	}()
	return e.matcher.DetectPhraseChanges(ctx, original, edited)
}

func (e *Engine) emit(step, message string, reportID int) {
	if e.onProgress != nil {
		e.onProgress(ProgressEvent{Step: step, Message: message, ReportID: reportID})
	}
}
