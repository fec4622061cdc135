package types

import (
	"encoding/json"
	"fmt"
)

// RulePayload is the closed set of category-specific rule data.
// Implementations: LiteralPayload, WordCountPayload, TimeFormatPayload,
// VoicePayload, SentenceLengthPayload, ConcisenessPayload.
type RulePayload interface {
	isRulePayload()
}

// LiteralPayload marks rules applied by replacing Pattern with Replacement verbatim
type LiteralPayload struct{}

// WordCountPayload is a literal rule that also records how the token count changed
type WordCountPayload struct {
	FromWords int `json:"from_words"`
	ToWords   int `json:"to_words"`
}

// TimeFormat names a 24-hour rendering style
type TimeFormat string

const (
	TimeFormatColon   TimeFormat = "colon"
	TimeFormatNoColon TimeFormat = "no-colon"
)

// TimeFormatPayload describes a 12-hour to 24-hour conversion
type TimeFormatPayload struct {
	Target      TimeFormat `json:"target"`
	Approximate bool       `json:"approximate,omitempty"`
}

// VoiceDirection is the grammatical voice an editor prefers
type VoiceDirection string

const (
	VoiceActive  VoiceDirection = "active"
	VoicePassive VoiceDirection = "passive"
)

// VoicePayload records a per-pair shift in passive sentence count
type VoicePayload struct {
	Direction VoiceDirection `json:"direction"`
	Delta     int            `json:"delta"`
}

// SentenceLengthPayload records mean sentence lengths in tokens
type SentenceLengthPayload struct {
	OriginalMean float64 `json:"original_mean"`
	EditedMean   float64 `json:"edited_mean"`
	Prefers      string  `json:"prefers"` // "shorter" or "longer"
}

// ConcisenessPayload records the token reduction as a percentage
type ConcisenessPayload struct {
	ReductionPercent int `json:"reduction_percent"`
}

func (LiteralPayload) isRulePayload()        {}
func (WordCountPayload) isRulePayload()      {}
func (TimeFormatPayload) isRulePayload()     {}
func (VoicePayload) isRulePayload()          {}
func (SentenceLengthPayload) isRulePayload() {}
func (ConcisenessPayload) isRulePayload()    {}

func decodePayload(category Category, raw json.RawMessage) (RulePayload, error) {
	decode := func(target any) error {
		if len(raw) == 0 || string(raw) == "null" {
			return nil
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("failed to unmarshal %s payload: %w", category, err)
		}
		return nil
	}

	switch category {
	case CategoryWordReplacement, CategoryPhraseReplacement, CategoryMultiWordPhrase,
		CategoryToneAdjustment, CategoryRedundantWords:
		return LiteralPayload{}, nil
	case CategoryMultiWordReplacement:
		var p WordCountPayload
		err := decode(&p)
		return p, err
	case CategoryTimeFormat:
		var p TimeFormatPayload
		err := decode(&p)
		return p, err
	case CategoryActiveToPassive, CategoryPassiveToActive:
		var p VoicePayload
		err := decode(&p)
		return p, err
	case CategorySentenceLength:
		var p SentenceLengthPayload
		err := decode(&p)
		return p, err
	case CategoryConciseness:
		var p ConcisenessPayload
		err := decode(&p)
		return p, err
	}
	return nil, fmt.Errorf("no payload type for category %q", category)
}
