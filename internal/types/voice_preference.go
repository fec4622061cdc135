package types

import "fmt"

// VoicePreference is the single corpus-wide voice rule learned in a training session
type VoicePreference struct {
	Direction            VoiceDirection `json:"direction"`
	Confidence           float64        `json:"confidence"`
	PassiveToActiveCount int            `json:"passive_to_active_count"`
	ActiveToPassiveCount int            `json:"active_to_passive_count"`
	SentencesAnalyzed    int            `json:"sentences_analyzed"`
}

// Flips returns the total number of voice conversions observed.
func (p VoicePreference) Flips() int {
	return p.PassiveToActiveCount + p.ActiveToPassiveCount
}

// AsRule renders the preference as a voice StyleRule for display and audit.
func (p VoicePreference) AsRule() StyleRule {
	category := CategoryPassiveToActive
	from := VoicePassive
	if p.Direction == VoicePassive {
		category = CategoryActiveToPassive
		from = VoiceActive
	}
	return StyleRule{
		Category:    category,
		Pattern:     fmt.Sprintf("%s voice constructions", from),
		Replacement: fmt.Sprintf("%s voice constructions", p.Direction),
		Frequency:   p.Flips(),
		Confidence:  p.Confidence,
		Description: fmt.Sprintf("Convert to %s voice (%d changes detected across %d sentences)",
			p.Direction, p.Flips(), p.SentencesAnalyzed),
		Payload: VoicePayload{Direction: p.Direction, Delta: abs(p.PassiveToActiveCount - p.ActiveToPassiveCount)},
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
