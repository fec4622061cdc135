// Package types provides type definitions for structured data used throughout the style-learning engine.
package types

import (
	"encoding/json"
	"fmt"
)

// Category identifies the kind of stylistic change a StyleRule encodes
type Category string

const (
	CategoryWordReplacement      Category = "word_replacement"
	CategoryPhraseReplacement    Category = "phrase_replacement"
	CategoryMultiWordReplacement Category = "multi_word_replacement"
	CategoryMultiWordPhrase      Category = "multi_word_phrase"
	CategoryToneAdjustment       Category = "tone_adjustment"
	CategoryRedundantWords       Category = "redundant_words"
	CategoryTimeFormat           Category = "time_format"
	CategoryActiveToPassive      Category = "active_to_passive"
	CategoryPassiveToActive      Category = "passive_to_active"
	CategorySentenceLength       Category = "sentence_length_preference"
	CategoryConciseness          Category = "conciseness"
)

// AllCategories lists every known category in display order
var AllCategories = []Category{
	CategoryWordReplacement,
	CategoryPhraseReplacement,
	CategoryMultiWordReplacement,
	CategoryMultiWordPhrase,
	CategoryToneAdjustment,
	CategoryRedundantWords,
	CategoryTimeFormat,
	CategoryActiveToPassive,
	CategoryPassiveToActive,
	CategorySentenceLength,
	CategoryConciseness,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// IsVoice reports whether c is one of the two voice-shift categories.
func (c Category) IsVoice() bool {
	return c == CategoryActiveToPassive || c == CategoryPassiveToActive
}

// IsDiffDerived reports whether rules of this category come straight out of
// diff spans rather than from a curated lexicon or an aggregate measurement.
func (c Category) IsDiffDerived() bool {
	switch c {
	case CategoryWordReplacement, CategoryPhraseReplacement, CategoryMultiWordReplacement, CategoryMultiWordPhrase:
		return true
	}
	return false
}

// StyleRule is a learned, confidence-scored editing preference.
// Payload carries the category-specific data; its concrete type is fixed by Category.
type StyleRule struct {
	Category        Category    `json:"category"`
	Pattern         string      `json:"pattern"`
	Replacement     string      `json:"replacement"`
	Frequency       int         `json:"frequency"`
	Confidence      float64     `json:"confidence"`
	Description     string      `json:"description"`
	SourceReportIDs []int       `json:"source_report_ids,omitempty"`
	Payload         RulePayload `json:"-"`
}

// styleRuleJSON is the wire shape of StyleRule with the payload left raw
type styleRuleJSON struct {
	Category        Category        `json:"category"`
	Pattern         string          `json:"pattern"`
	Replacement     string          `json:"replacement"`
	Frequency       int             `json:"frequency"`
	Confidence      float64         `json:"confidence"`
	Description     string          `json:"description"`
	SourceReportIDs []int           `json:"source_report_ids,omitempty"`
	Payload         json.RawMessage `json:"payload,omitempty"`
}

// MarshalJSON encodes the rule with its payload nested under "payload".
func (r StyleRule) MarshalJSON() ([]byte, error) {
	out := styleRuleJSON{
		Category:        r.Category,
		Pattern:         r.Pattern,
		Replacement:     r.Replacement,
		Frequency:       r.Frequency,
		Confidence:      r.Confidence,
		Description:     r.Description,
		SourceReportIDs: r.SourceReportIDs,
	}
	if r.Payload != nil {
		raw, err := json.Marshal(r.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", r.Category, err)
		}
		out.Payload = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a rule, choosing the payload type from its category.
func (r *StyleRule) UnmarshalJSON(data []byte) error {
	var in styleRuleJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if !in.Category.Valid() {
		return fmt.Errorf("unknown style rule category %q", in.Category)
	}

	payload, err := decodePayload(in.Category, in.Payload)
	if err != nil {
		return err
	}

	*r = StyleRule{
		Category:        in.Category,
		Pattern:         in.Pattern,
		Replacement:     in.Replacement,
		Frequency:       in.Frequency,
		Confidence:      in.Confidence,
		Description:     in.Description,
		SourceReportIDs: in.SourceReportIDs,
		Payload:         payload,
	}
	return nil
}

// HasReport reports whether id is among the rule's source reports.
func (r StyleRule) HasReport(id int) bool {
	for _, existing := range r.SourceReportIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// Literal reports whether the rule is applied by literal pattern substitution.
func (r StyleRule) Literal() bool {
	switch r.Payload.(type) {
	case LiteralPayload, WordCountPayload:
		return true
	}
	return false
}

// StyleRuleSet is the persisted output of a training session
type StyleRuleSet struct {
	SessionID string           `json:"session_id"`
	Rules     []StyleRule      `json:"rules"`
	Voice     *VoicePreference `json:"voice,omitempty"`
}
