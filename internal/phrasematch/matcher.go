package phrasematch

import (
	"context"
	"fmt"
	"strings"

	"github.com/sebonomics/CodeFour/internal/lexicon"
	"github.com/sebonomics/CodeFour/internal/phrases"
	"github.com/sebonomics/CodeFour/internal/types"
)

const (
	// DefaultFloor is the lowest similarity accepted as a related pair
	DefaultFloor = 0.3
	// DefaultCeiling is the similarity at which two phrases count as the same phrase
	DefaultCeiling = 0.8
	// DefaultMinConfidence is the confidence a change needs to become a rule
	DefaultMinConfidence = 0.5

	domainBoost  = 0.2
	shorterBoost = 0.1
)

// Matcher pairs phrases removed by an edit with the phrases that replaced them
type Matcher struct {
	Extractor *phrases.Extractor
	Lexicon   *lexicon.Lexicon
	// Store, when set, records every emitted change
	Store FrequencyStore

	Floor         float64
	Ceiling       float64
	MinConfidence float64
}

// NewMatcher creates a Matcher with the default bounds.
func NewMatcher(extractor *phrases.Extractor, lex *lexicon.Lexicon, store FrequencyStore) *Matcher {
	return &Matcher{
		Extractor:     extractor,
		Lexicon:       lex,
		Store:         store,
		Floor:         DefaultFloor,
		Ceiling:       DefaultCeiling,
		MinConfidence: DefaultMinConfidence,
	}
}

// DetectPhraseChanges returns phrase substitutions between original and edited.
// Each added phrase is used at most once; removed phrases claim their best
// match in extraction order.
func (m *Matcher) DetectPhraseChanges(ctx context.Context, original, edited string) ([]types.PhraseChange, error) {
	if strings.TrimSpace(original) == strings.TrimSpace(edited) {
		return nil, nil
	}

	originalPhrases, err := m.Extractor.Extract(ctx, original)
	if err != nil {
		return nil, err
	}
	editedPhrases, err := m.Extractor.Extract(ctx, edited)
	if err != nil {
		return nil, err
	}

	removed := difference(originalPhrases, editedPhrases)
	added := difference(editedPhrases, originalPhrases)

	var changes []types.PhraseChange
	for _, from := range removed {
		best := -1
		var bestSim, bestConf float64

		for i, to := range added {
			sim := Similarity(m.Lexicon, from, to)
			if sim >= m.Ceiling || sim < m.Floor {
				continue
			}
			conf := m.confidence(from, to, sim)
			if best < 0 || conf > bestConf {
				best, bestSim, bestConf = i, sim, conf
			}
		}

		if best < 0 {
			continue
		}

		change := types.PhraseChange{From: from, To: added[best], Confidence: bestConf, Similarity: bestSim}
		changes = append(changes, change)
		if m.Store != nil {
			m.Store.Record(change)
		}
		added = append(added[:best:best], added[best+1:]...)
	}

	return changes, nil
}

func (m *Matcher) confidence(from, to string, sim float64) float64 {
	conf := sim
	if m.Lexicon.MatchesDomainTransformation(from, to) {
		conf = min(conf+domainBoost, 1.0)
	}
	if len(strings.Fields(to)) < len(strings.Fields(from)) {
		conf = min(conf+shorterBoost, 1.0)
	}
	return conf
}

// PromoteToRules converts multi-word, confident changes into multi_word_phrase rules.
func (m *Matcher) PromoteToRules(changes []types.PhraseChange, reportID int) []types.StyleRule {
	var rules []types.StyleRule
	for _, c := range changes {
		if len(strings.Fields(c.From)) < 2 || c.Confidence < m.MinConfidence || c.From == c.To {
			continue
		}
		rules = append(rules, types.StyleRule{
			Category:        types.CategoryMultiWordPhrase,
			Pattern:         c.From,
			Replacement:     c.To,
			Frequency:       1,
			Confidence:      c.Confidence,
			Description:     fmt.Sprintf("Replace phrase %q with %q (%.0f%% similar)", c.From, c.To, c.Similarity*100),
			SourceReportIDs: []int{reportID},
			Payload:         types.LiteralPayload{},
		})
	}
	return rules
}

// difference returns the elements of a not in b, keeping a's order.
func difference(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	var out []string
	for _, s := range a {
		if !inB[s] {
			out = append(out, s)
		}
	}
	return out
}
