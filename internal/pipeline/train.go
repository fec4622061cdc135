package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sebonomics/CodeFour/internal/types"
	"github.com/sebonomics/CodeFour/internal/voice"
)

// frequentPhraseMinCount is the smallest count reported in FrequentPhrases
const frequentPhraseMinCount = 2

// TrainingResult holds the outputs of one training session
type TrainingResult struct {
	SessionID       uuid.UUID               `json:"session_id"`
	Rules           []types.StyleRule       `json:"rules"`
	Voice           types.VoicePreference   `json:"voice"`
	ReportsAnalyzed int                     `json:"reports_analyzed"`
	ReportsSkipped  int                     `json:"reports_skipped"`
	RawRuleCount    int                     `json:"raw_rule_count"`
	Failures        []*ReportError          `json:"-"`
	FrequentPhrases []types.PhraseFrequency `json:"frequent_phrases,omitempty"`
}

// RuleSet returns the persistable form of the result.
func (r *TrainingResult) RuleSet() types.StyleRuleSet {
	v := r.Voice
	rules := r.Rules
	if rules == nil {
		rules = []types.StyleRule{}
	}
	return types.StyleRuleSet{
		SessionID: r.SessionID.String(),
		Rules:     rules,
		Voice:     &v,
	}
}

// Train learns a rule set from reports. Reports without a real edit are
// skipped. A failure inside one report is logged and recorded in Failures;
// the rest of the batch still contributes. The only error returned is the
// context's.
//
// Each call is one session: the phrase frequency store is cleared first, and
// concurrent calls on the same Engine run one after another.
func (e *Engine) Train(ctx context.Context, reports []types.Report) (*TrainingResult, error) {
	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()

	e.store.Clear()
	result := &TrainingResult{SessionID: uuid.New()}

	var trainable []types.Report
	for _, r := range types.TrainableReports(reports) {
		if err := r.Validate(); err != nil {
			e.logger.Printf("Warning: skipping report %d: %v", r.ID, err)
			result.Failures = append(result.Failures, &ReportError{ReportID: r.ID, Message: "invalid report", Cause: err})
			continue
		}
		trainable = append(trainable, r)
	}
	result.ReportsSkipped = len(reports) - len(trainable)
	e.emit("select", fmt.Sprintf("%d of %d reports have edits", len(trainable), len(reports)), 0)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	var mu sync.Mutex // Protects raw and result.Failures
	var raw []types.StyleRule

	for _, report := range trainable {
		report := report // per-iteration copy (go.mod targets Go 1.21 semantics)
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			rules, failures, err := e.analyzeReport(gCtx, report)
			if err != nil {
				return err
			}

			mu.Lock()
			raw = append(raw, rules...)
			result.Failures = append(result.Failures, failures...)
			mu.Unlock()

			e.emit("analyze", fmt.Sprintf("%d raw rules", len(rules)), report.ID)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(result.Failures, func(i, j int) bool {
		return result.Failures[i].ReportID < result.Failures[j].ReportID
	})

	result.ReportsAnalyzed = len(trainable)
	result.RawRuleCount = len(raw)
	result.Rules = e.consolidator.Consolidate(raw)
	e.emit("consolidate", fmt.Sprintf("%d raw rules consolidated into %d", len(raw), len(result.Rules)), 0)

	result.Voice = voice.AnalyzePreference(e.lex, trainable)
	result.FrequentPhrases = e.store.FrequentAbove(frequentPhraseMinCount)

	e.logger.Printf("Training session %s: %d reports, %d raw rules, %d rules, %d failures",
		result.SessionID, result.ReportsAnalyzed, result.RawRuleCount, len(result.Rules), len(result.Failures))

	return result, nil
}

// analyzeReport runs analyzePair for one report, converting a panic into a ReportError.
func (e *Engine) analyzeReport(ctx context.Context, report types.Report) (rules []types.StyleRule, failures []*ReportError, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("Warning: report %d: analysis panicked: %v", report.ID, r)
			rules = nil
			failures = []*ReportError{{ReportID: report.ID, Message: fmt.Sprintf("analysis panicked: %v", r)}}
			err = nil
		}
	}()
	return e.analyzePair(ctx, report.ID, report.OriginalText, report.EditedText)
}
