package consolidate

import (
	"math/rand"
	"testing"

	"github.com/sebonomics/CodeFour/internal/lexicon"
	"github.com/sebonomics/CodeFour/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(category types.Category, pattern, replacement string, reportID int) types.StyleRule {
	return types.StyleRule{
		Category:        category,
		Pattern:         pattern,
		Replacement:     replacement,
		Frequency:       1,
		Confidence:      0.8,
		Description:     "Replace " + pattern,
		SourceReportIDs: []int{reportID},
		Payload:         types.LiteralPayload{},
	}
}

func find(rules []types.StyleRule, category types.Category, pattern string) *types.StyleRule {
	for i := range rules {
		if rules[i].Category == category && rules[i].Pattern == pattern {
			return &rules[i]
		}
	}
	return nil
}

func TestConsolidate_Threshold(t *testing.T) {
	c := New(lexicon.Default())

	rules := c.Consolidate([]types.StyleRule{
		raw(types.CategoryWordReplacement, "guy", "subject", 1),
		raw(types.CategoryWordReplacement, "guy", "subject", 2),
		raw(types.CategoryWordReplacement, "cop", "officer", 3),
		raw(types.CategoryWordReplacement, "cop", "officer", 3),
		raw(types.CategoryWordReplacement, "car", "vehicle", 4),
	})

	require.Len(t, rules, 2)

	corroborated := find(rules, types.CategoryWordReplacement, "guy")
	require.NotNil(t, corroborated)
	assert.Equal(t, 1.0, corroborated.Confidence)
	assert.Equal(t, 2, corroborated.Frequency)
	assert.Equal(t, []int{1, 2}, corroborated.SourceReportIDs)
	assert.Equal(t, "Replace guy (appears 2 times in 2 reports)", corroborated.Description)

	repeated := find(rules, types.CategoryWordReplacement, "cop")
	require.NotNil(t, repeated)
	assert.Equal(t, 0.9, repeated.Confidence)
	assert.Equal(t, "Replace cop (appears 2 times in 1 report)", repeated.Description)

	assert.Nil(t, find(rules, types.CategoryWordReplacement, "car"), "single observations never survive")
}

func TestConsolidate_BannedWords(t *testing.T) {
	c := New(lexicon.Default())

	var input []types.StyleRule
	for id := 1; id <= 5; id++ {
		input = append(input,
			raw(types.CategoryWordReplacement, "the", "a", id),
			raw(types.CategoryWordReplacement, "guy", "the", id),
			raw(types.CategoryPhraseReplacement, "talked to", "interviewed", id),
			raw(types.CategoryRedundantWords, "that", "", id),
			raw(types.CategoryToneAdjustment, "talked to", "interviewed", id),
			raw(types.CategoryRedundantWords, "in order to", "", id),
		)
	}

	rules := c.Consolidate(input)

	assert.Nil(t, find(rules, types.CategoryWordReplacement, "the"))
	assert.Nil(t, find(rules, types.CategoryWordReplacement, "guy"))
	assert.Nil(t, find(rules, types.CategoryPhraseReplacement, "talked to"))
	assert.Nil(t, find(rules, types.CategoryRedundantWords, "that"))
	assert.NotNil(t, find(rules, types.CategoryToneAdjustment, "talked to"))
	assert.NotNil(t, find(rules, types.CategoryRedundantWords, "in order to"))
}

func TestIsFilteredByBannedWords(t *testing.T) {
	c := New(lexicon.Default())

	tests := []struct {
		name string
		rule types.StyleRule
		want bool
	}{
		{name: "stopword pattern", rule: raw(types.CategoryWordReplacement, "the", "officer", 1), want: true},
		{name: "stopword-only replacement", rule: raw(types.CategoryToneAdjustment, "guy", "he", 1), want: true},
		{name: "deletion", rule: raw(types.CategoryToneAdjustment, "basically", "", 1), want: false},
		{name: "diff phrase containing stopword", rule: raw(types.CategoryPhraseReplacement, "went to", "proceeded", 1), want: true},
		{name: "curated phrase containing stopword", rule: raw(types.CategoryToneAdjustment, "went to", "proceeded", 1), want: false},
		{name: "descriptor", rule: raw(types.CategoryTimeFormat, "12-hour AM/PM format", "24-hour no-colon format", 1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsFilteredByBannedWords(tt.rule))
		})
	}
}

func TestConsolidate_SignatureNormalization(t *testing.T) {
	c := New(lexicon.Default())

	rules := c.Consolidate([]types.StyleRule{
		raw(types.CategoryWordReplacement, "Guy", "Subject", 1),
		raw(types.CategoryWordReplacement, "guy", " subject", 2),
		raw(types.CategoryToneAdjustment, "guy", "subject", 3),
	})

	require.Len(t, rules, 1, "category is part of the signature")
	assert.Equal(t, types.CategoryWordReplacement, rules[0].Category)
}

func TestConsolidate_DropsNoOpRules(t *testing.T) {
	c := New(lexicon.Default())

	rules := c.Consolidate([]types.StyleRule{
		raw(types.CategoryWordReplacement, "Vehicle", "vehicle", 1),
		raw(types.CategoryWordReplacement, "vehicle", "vehicle", 2),
	})
	assert.Empty(t, rules)
}

func TestConsolidate_OrderIndependent(t *testing.T) {
	c := New(lexicon.Default())

	input := []types.StyleRule{
		raw(types.CategoryWordReplacement, "guy", "subject", 1),
		raw(types.CategoryWordReplacement, "guy", "subject", 2),
		raw(types.CategoryWordReplacement, "cop", "officer", 3),
		raw(types.CategoryWordReplacement, "cop", "officer", 3),
		raw(types.CategoryToneAdjustment, "said", "stated", 1),
		raw(types.CategoryToneAdjustment, "said", "stated", 2),
		raw(types.CategoryToneAdjustment, "said", "stated", 4),
		raw(types.CategoryRedundantWords, "basically", "", 2),
	}
	want := c.Consolidate(input)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := append([]types.StyleRule(nil), input...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, c.Consolidate(shuffled))
	}

	// Highest confidence first, then most frequent
	require.Len(t, want, 3)
	assert.Equal(t, "said", want[0].Pattern)
	assert.Equal(t, "guy", want[1].Pattern)
	assert.Equal(t, "cop", want[2].Pattern)
}

func TestConsolidate_UniqueSignatures(t *testing.T) {
	c := New(lexicon.Default())

	var input []types.StyleRule
	for id := 0; id < 6; id++ {
		input = append(input,
			raw(types.CategoryWordReplacement, "guy", "subject", id%2),
			raw(types.CategoryToneAdjustment, "cops", "officers", id),
		)
	}

	seen := map[string]bool{}
	for _, r := range c.Consolidate(input) {
		sig := Signature(r)
		assert.False(t, seen[sig], "duplicate signature %s", sig)
		seen[sig] = true
	}
	assert.Len(t, seen, 2)
}

func TestConsolidate_SumsVoiceDeltas(t *testing.T) {
	c := New(lexicon.Default())

	voice := func(id, delta int) types.StyleRule {
		return types.StyleRule{
			Category:        types.CategoryPassiveToActive,
			Pattern:         "passive voice",
			Replacement:     "active voice",
			Frequency:       delta,
			Confidence:      0.8,
			Description:     "Prefers active voice",
			SourceReportIDs: []int{id},
			Payload:         types.VoicePayload{Direction: types.VoiceActive, Delta: delta},
		}
	}

	rules := c.Consolidate([]types.StyleRule{voice(1, 3), voice(2, 2)})
	require.Len(t, rules, 1)
	assert.Equal(t, 2, rules[0].Frequency)
	assert.Equal(t, types.VoicePayload{Direction: types.VoiceActive, Delta: 5}, rules[0].Payload)
}
