// Package detect provides the per-pair stylistic change detectors.
package detect

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/sebonomics/CodeFour/internal/lexicon"
	"github.com/sebonomics/CodeFour/internal/textdiff"
	"github.com/sebonomics/CodeFour/internal/types"
)

// Heuristic confidences per detector
const (
	wordConfidence        = 0.9
	phraseConfidence      = 0.8
	multiWordConfidence   = 0.9
	toneConfidence        = 0.9
	redundantConfidence   = 0.8
	redundantPhraseConf   = 0.9
	voiceConfidence       = 0.8
	timeConfidence        = 0.95
	approxTimeConfidence  = 0.9
	lengthConfidence      = 0.8
	concisenessConfidence = 0.8
)

// Thresholds relative to the original text
const (
	shorterSentenceRatio = 0.8
	longerSentenceRatio  = 1.2
	concisenessRatio     = 0.9
)

var (
	twelveHour         = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(AM|PM)\b`)
	colonHours         = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*hours?\b`)
	noColonHours       = regexp.MustCompile(`(?i)\b(\d{4})\s*hours?\b`)
	approxTwelveHour   = regexp.MustCompile(`(?i)\bat\s*approximately\s*(\d{1,2}):(\d{2})\s*(AM|PM)\b`)
	approxColonHours   = regexp.MustCompile(`(?i)\bat\s*approximately\s*(\d{1,2}):(\d{2})\s*hours?\b`)
	approxNoColonHours = regexp.MustCompile(`(?i)\bat\s*approximately\s*(\d{4})\s*hours?\b`)
)

// Detector scans a single (original, edited) pair for stylistic changes.
// It holds no mutable state and is safe for concurrent use.
type Detector struct {
	lex *lexicon.Lexicon
}

// New creates a Detector backed by lex.
func New(lex *lexicon.Lexicon) *Detector {
	return &Detector{lex: lex}
}

func unchanged(original, edited string) bool {
	return strings.TrimSpace(original) == strings.TrimSpace(edited)
}

// replacementPair is a removed span immediately followed by an added span
type replacementPair struct {
	from, to string
}

// replacements returns the normalized removed→added pairs of the diff,
// skipping empty sides and punctuation-only changes.
func replacements(original, edited string) []replacementPair {
	spans := textdiff.Compute(original, edited)
	var pairs []replacementPair
	for i := 0; i+1 < len(spans); i++ {
		if spans[i].Kind != types.SpanRemoved || spans[i+1].Kind != types.SpanAdded {
			continue
		}
		from := textdiff.Normalize(spans[i].Text)
		to := textdiff.Normalize(spans[i+1].Text)
		if from == "" || to == "" || from == to {
			continue
		}
		pairs = append(pairs, replacementPair{from: from, to: to})
	}
	return pairs
}

// DetectWordReplacements reports words and phrases swapped by the edit.
func (d *Detector) DetectWordReplacements(original, edited string) []types.StyleRule {
	if unchanged(original, edited) {
		return nil
	}

	var rules []types.StyleRule
	for _, p := range replacements(original, edited) {
		if len(strings.Fields(p.from)) == 1 && len(strings.Fields(p.to)) == 1 {
			rules = append(rules, literalRule(types.CategoryWordReplacement, p.from, p.to, wordConfidence,
				fmt.Sprintf("Replace %q with %q", p.from, p.to)))
			continue
		}
		rules = append(rules, literalRule(types.CategoryPhraseReplacement, p.from, p.to, phraseConfidence,
			fmt.Sprintf("Replace phrase %q with %q", p.from, p.to)))
	}
	return rules
}

// DetectMultiWordReplacements reports replacements that change the word count.
func (d *Detector) DetectMultiWordReplacements(original, edited string) []types.StyleRule {
	if unchanged(original, edited) {
		return nil
	}

	var rules []types.StyleRule
	for _, p := range replacements(original, edited) {
		fromWords := len(strings.Fields(p.from))
		toWords := len(strings.Fields(p.to))
		if fromWords == toWords {
			continue
		}
		rules = append(rules, types.StyleRule{
			Category:    types.CategoryMultiWordReplacement,
			Pattern:     p.from,
			Replacement: p.to,
			Frequency:   1,
			Confidence:  multiWordConfidence,
			Description: fmt.Sprintf("Replace %s %q with %s %q", countWords(fromWords), p.from, countWords(toWords), p.to),
			Payload:     types.WordCountPayload{FromWords: fromWords, ToWords: toWords},
		})
	}
	return rules
}

// DetectToneAdjustments reports informal terms replaced by formal ones and
// informal modifiers the edit removed.
func (d *Detector) DetectToneAdjustments(original, edited string) []types.StyleRule {
	if unchanged(original, edited) {
		return nil
	}

	var rules []types.StyleRule
	for _, shift := range d.lex.ToneShifts(original, edited) {
		rules = append(rules, literalRule(types.CategoryToneAdjustment, shift.Informal, shift.Formal, toneConfidence,
			fmt.Sprintf("Replace informal %q with formal %q", shift.Informal, shift.Formal)))
	}

	for _, removed := range removedSpans(original, edited) {
		normalized := textdiff.Normalize(removed)
		for _, modifier := range d.lex.InformalModifiers {
			if containsPhrase(normalized, modifier) {
				rules = append(rules, literalRule(types.CategoryToneAdjustment, modifier, "", toneConfidence,
					fmt.Sprintf("Remove informal modifier %q", modifier)))
			}
		}
	}
	return rules
}

// DetectRedundantWords reports redundant words and filler phrases the edit removed.
func (d *Detector) DetectRedundantWords(original, edited string) []types.StyleRule {
	if unchanged(original, edited) {
		return nil
	}

	var rules []types.StyleRule
	for _, removed := range removedSpans(original, edited) {
		for _, word := range d.lex.RedundantWordsIn(removed) {
			rules = append(rules, literalRule(types.CategoryRedundantWords, word, "", redundantConfidence,
				fmt.Sprintf("Remove redundant word %q", word)))
		}
		for _, phrase := range d.lex.RedundantPhrasesIn(textdiff.Normalize(removed)) {
			rules = append(rules, literalRule(types.CategoryRedundantWords, phrase, "", redundantPhraseConf,
				fmt.Sprintf("Remove redundant phrase %q", phrase)))
		}
	}
	return rules
}

// DetectActivePassiveVoice compares passive sentence counts before and after the edit.
func (d *Detector) DetectActivePassiveVoice(original, edited string) []types.StyleRule {
	if unchanged(original, edited) {
		return nil
	}

	before := d.countPassive(original)
	after := d.countPassive(edited)
	activeBefore := d.lex.CountActive(original)
	activeAfter := d.lex.CountActive(edited)

	switch {
	case before > after:
		delta := before - after
		return []types.StyleRule{{
			Category:    types.CategoryPassiveToActive,
			Pattern:     "passive voice",
			Replacement: "active voice",
			Frequency:   delta,
			Confidence:  voiceConfidence,
			Description: fmt.Sprintf("Prefers active voice - reduced passive constructions by %d (active constructions %d → %d)",
				delta, activeBefore, activeAfter),
			Payload: types.VoicePayload{Direction: types.VoiceActive, Delta: delta},
		}}
	case after > before:
		delta := after - before
		return []types.StyleRule{{
			Category:    types.CategoryActiveToPassive,
			Pattern:     "active voice",
			Replacement: "passive voice",
			Frequency:   delta,
			Confidence:  voiceConfidence,
			Description: fmt.Sprintf("Prefers passive voice - increased passive constructions by %d (active constructions %d → %d)",
				delta, activeBefore, activeAfter),
			Payload: types.VoicePayload{Direction: types.VoicePassive, Delta: delta},
		}}
	}
	return nil
}

func (d *Detector) countPassive(text string) int {
	count := 0
	for _, s := range textdiff.Sentences(text) {
		if d.lex.IsPassive(s) {
			count++
		}
	}
	return count
}

// DetectTimeFormatting reports 12-hour times rewritten in a 24-hour style.
func (d *Detector) DetectTimeFormatting(original, edited string) []types.StyleRule {
	if unchanged(original, edited) {
		return nil
	}

	var rules []types.StyleRule
	if n := len(twelveHour.FindAllStringIndex(original, -1)); n > 0 {
		if colonHours.MatchString(edited) {
			rules = append(rules, timeRule(n, types.TimeFormatColon, false))
		}
		if noColonHours.MatchString(edited) {
			rules = append(rules, timeRule(n, types.TimeFormatNoColon, false))
		}
	}
	if n := len(approxTwelveHour.FindAllStringIndex(original, -1)); n > 0 {
		if approxColonHours.MatchString(edited) {
			rules = append(rules, timeRule(n, types.TimeFormatColon, true))
		}
		if approxNoColonHours.MatchString(edited) {
			rules = append(rules, timeRule(n, types.TimeFormatNoColon, true))
		}
	}
	return rules
}

func timeRule(occurrences int, target types.TimeFormat, approximate bool) types.StyleRule {
	pattern := "12-hour AM/PM format"
	replacement := fmt.Sprintf("24-hour %s format", target)
	confidence := timeConfidence
	example := "3:30 PM → 15:30 hours"
	if target == types.TimeFormatNoColon {
		example = "3:30 PM → 1530 hours"
	}
	description := fmt.Sprintf("Convert 12-hour time to 24-hour %s format (e.g., %s)", target, example)

	if approximate {
		pattern = "approximate " + pattern
		replacement = "approximate " + replacement
		confidence = approxTimeConfidence
		description = fmt.Sprintf("Convert approximate times to 24-hour %s format (e.g., approximately %s)", target, example)
	}

	return types.StyleRule{
		Category:    types.CategoryTimeFormat,
		Pattern:     pattern,
		Replacement: replacement,
		Frequency:   occurrences,
		Confidence:  confidence,
		Description: description,
		Payload:     types.TimeFormatPayload{Target: target, Approximate: approximate},
	}
}

// DetectSentenceLengthPreference compares mean sentence length in words.
func (d *Detector) DetectSentenceLengthPreference(original, edited string) []types.StyleRule {
	if unchanged(original, edited) {
		return nil
	}

	before := textdiff.MeanSentenceLength(original)
	after := textdiff.MeanSentenceLength(edited)
	if before == 0 || after == 0 {
		return nil
	}

	rule := types.StyleRule{
		Category:   types.CategorySentenceLength,
		Frequency:  1,
		Confidence: lengthConfidence,
	}
	switch {
	case after < before*shorterSentenceRatio:
		rule.Pattern, rule.Replacement = "long sentences", "short sentences"
		rule.Description = fmt.Sprintf("Prefers shorter sentences (avg %.1f → %.1f words)", before, after)
		rule.Payload = types.SentenceLengthPayload{OriginalMean: before, EditedMean: after, Prefers: "shorter"}
	case after > before*longerSentenceRatio:
		rule.Pattern, rule.Replacement = "short sentences", "long sentences"
		rule.Description = fmt.Sprintf("Prefers longer sentences (avg %.1f → %.1f words)", before, after)
		rule.Payload = types.SentenceLengthPayload{OriginalMean: before, EditedMean: after, Prefers: "longer"}
	default:
		return nil
	}
	return []types.StyleRule{rule}
}

// DetectConciseness reports an overall reduction in word count.
func (d *Detector) DetectConciseness(original, edited string) []types.StyleRule {
	if unchanged(original, edited) {
		return nil
	}

	before := len(textdiff.Words(original))
	after := len(textdiff.Words(edited))
	if before == 0 || float64(after) >= float64(before)*concisenessRatio {
		return nil
	}

	reduction := int(math.Round(float64(before-after) / float64(before) * 100))
	return []types.StyleRule{{
		Category:    types.CategoryConciseness,
		Pattern:     "wordy phrasing",
		Replacement: "concise phrasing",
		Frequency:   1,
		Confidence:  concisenessConfidence,
		Description: fmt.Sprintf("Prefers concise writing (reduced word count by %d%%)", reduction),
		Payload:     types.ConcisenessPayload{ReductionPercent: reduction},
	}}
}

func literalRule(category types.Category, pattern, replacement string, confidence float64, description string) types.StyleRule {
	return types.StyleRule{
		Category:    category,
		Pattern:     pattern,
		Replacement: replacement,
		Frequency:   1,
		Confidence:  confidence,
		Description: description,
		Payload:     types.LiteralPayload{},
	}
}

func removedSpans(original, edited string) []string {
	var out []string
	for _, s := range textdiff.Compute(original, edited) {
		if s.Kind == types.SpanRemoved {
			out = append(out, s.Text)
		}
	}
	return out
}

// containsPhrase reports whether phrase occurs in normalized text on word boundaries.
func containsPhrase(normalized, phrase string) bool {
	return strings.Contains(" "+normalized+" ", " "+phrase+" ")
}

func countWords(n int) string {
	if n == 1 {
		return "1 word"
	}
	return fmt.Sprintf("%d words", n)
}
