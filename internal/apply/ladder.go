// Package apply provides replay of learned style rules onto new text at a chosen intensity.
package apply

import "github.com/sebonomics/CodeFour/internal/types"

// Intensity tiers. A category becomes eligible once intensity reaches its tier.
const (
	WordTier   = 20
	TimeTier   = 30
	PhraseTier = 40
	ToneTier   = 50
	VoiceTier  = 70
)

// tiers lists the categories that can be applied to text. Sentence length and
// conciseness rules are advisory and have no tier.
var tiers = map[types.Category]int{
	types.CategoryWordReplacement:      WordTier,
	types.CategoryRedundantWords:       WordTier,
	types.CategoryMultiWordReplacement: WordTier,
	types.CategoryTimeFormat:           TimeTier,
	types.CategoryPhraseReplacement:    PhraseTier,
	types.CategoryMultiWordPhrase:      PhraseTier,
	types.CategoryToneAdjustment:       ToneTier,
	types.CategoryPassiveToActive:      VoiceTier,
	types.CategoryActiveToPassive:      VoiceTier,
}

// Tier returns the minimum intensity at which category is applied.
func Tier(category types.Category) (int, bool) {
	tier, ok := tiers[category]
	return tier, ok
}

// IsEligible reports whether category is applied at intensity.
func IsEligible(category types.Category, intensity int) bool {
	tier, ok := tiers[category]
	return ok && intensity >= tier
}

// EligibleCategories returns the categories applied at intensity, in
// declaration order. A higher intensity always returns a superset.
func EligibleCategories(intensity int) []types.Category {
	var out []types.Category
	for _, c := range types.AllCategories {
		if IsEligible(c, intensity) {
			out = append(out, c)
		}
	}
	return out
}

// meetsConfidence reports whether a rule is confident enough for intensity.
func meetsConfidence(rule types.StyleRule, intensity int) bool {
	return rule.Confidence >= float64(intensity)/100
}
