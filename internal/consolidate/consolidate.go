// Package consolidate provides aggregation of raw detections into deduplicated, confidence-scored style rules.
package consolidate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sebonomics/CodeFour/internal/lexicon"
	"github.com/sebonomics/CodeFour/internal/textdiff"
	"github.com/sebonomics/CodeFour/internal/types"
)

const (
	// MinOccurrences is how many raw observations a signature needs to survive
	MinOccurrences = 2
	// CorroboratedConfidence is assigned when a rule spans two or more reports
	CorroboratedConfidence = 1.0
	// RepeatedConfidence is assigned when every observation comes from one report
	RepeatedConfidence = 0.9
)

// Consolidator merges raw rules from a training batch
type Consolidator struct {
	lex *lexicon.Lexicon
}

// New creates a Consolidator using lex for the banned-word filter.
func New(lex *lexicon.Lexicon) *Consolidator {
	return &Consolidator{lex: lex}
}

// Signature identifies rules that express the same preference.
func Signature(r types.StyleRule) string {
	return fmt.Sprintf("%s:%s:%s", r.Category, normalize(r.Pattern), normalize(r.Replacement))
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// IsFilteredByBannedWords reports whether r is noise built from closed-class words.
// Any rule whose pattern or replacement consists only of banned words is noise.
// Diff-derived rules are also noise when either side contains a banned word.
func (c *Consolidator) IsFilteredByBannedWords(r types.StyleRule) bool {
	patternWords := textdiff.Words(r.Pattern)
	replacementWords := textdiff.Words(r.Replacement)

	if c.onlyBanned(patternWords) || c.onlyBanned(replacementWords) {
		return true
	}
	if r.Category.IsDiffDerived() {
		return c.anyBanned(patternWords) || c.anyBanned(replacementWords)
	}
	return false
}

func (c *Consolidator) onlyBanned(words []string) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !c.lex.IsBanned(w) {
			return false
		}
	}
	return true
}

func (c *Consolidator) anyBanned(words []string) bool {
	for _, w := range words {
		if c.lex.IsBanned(w) {
			return true
		}
	}
	return false
}

// Consolidate filters, groups and scores raw rules. Each raw rule must carry
// the id of the report it came from in SourceReportIDs. The result contains
// one rule per surviving signature, ordered by confidence, then frequency,
// then signature.
func (c *Consolidator) Consolidate(raw []types.StyleRule) []types.StyleRule {
	groups := make(map[string][]types.StyleRule)
	for _, r := range raw {
		if normalize(r.Pattern) == normalize(r.Replacement) || c.IsFilteredByBannedWords(r) {
			continue
		}
		sig := Signature(r)
		groups[sig] = append(groups[sig], r)
	}

	type scored struct {
		sig  string
		rule types.StyleRule
	}
	var out []scored
	for sig, members := range groups {
		if len(members) < MinOccurrences {
			continue
		}
		out = append(out, scored{sig: sig, rule: merge(members)})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].rule, out[j].rule
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		return out[i].sig < out[j].sig
	})

	rules := make([]types.StyleRule, len(out))
	for i, s := range out {
		rules[i] = s.rule
	}
	return rules
}

// merge builds the consolidated rule for one signature group.
func merge(members []types.StyleRule) types.StyleRule {
	// Pick a representative independent of input order
	rep := members[0]
	for _, m := range members[1:] {
		if m.Description < rep.Description {
			rep = m
		}
	}

	ids := reportIDs(members)
	confidence := RepeatedConfidence
	if len(ids) >= 2 {
		confidence = CorroboratedConfidence
	}

	payload := rep.Payload
	if voice, ok := payload.(types.VoicePayload); ok {
		voice.Delta = 0
		for _, m := range members {
			if p, ok := m.Payload.(types.VoicePayload); ok {
				voice.Delta += p.Delta
			}
		}
		payload = voice
	}

	return types.StyleRule{
		Category:        rep.Category,
		Pattern:         rep.Pattern,
		Replacement:     rep.Replacement,
		Frequency:       len(members),
		Confidence:      confidence,
		Description:     fmt.Sprintf("%s %s", rep.Description, occurrenceSummary(len(members), len(ids))),
		SourceReportIDs: ids,
		Payload:         payload,
	}
}

func reportIDs(members []types.StyleRule) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, m := range members {
		for _, id := range m.SourceReportIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Ints(ids)
	return ids
}

func occurrenceSummary(times, reports int) string {
	if reports == 1 {
		return fmt.Sprintf("(appears %d times in 1 report)", times)
	}
	return fmt.Sprintf("(appears %d times in %d reports)", times, reports)
}
