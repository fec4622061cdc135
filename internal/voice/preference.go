// Package voice provides corpus-wide active/passive voice preference learning and application.
package voice

import (
	"math"

	"github.com/sebonomics/CodeFour/internal/lexicon"
	"github.com/sebonomics/CodeFour/internal/textdiff"
	"github.com/sebonomics/CodeFour/internal/types"
)

// MinConfidence is the weakest preference ApplyPreference will act on
const MinConfidence = 0.3

// AnalyzePreference measures voice conversions across every trainable report.
// Sentences are compared by position up to the shorter document; sentences
// that an edit reordered, split or merged are compared against the wrong
// counterpart.
func AnalyzePreference(lex *lexicon.Lexicon, reports []types.Report) types.VoicePreference {
	var pref types.VoicePreference

	for _, r := range types.TrainableReports(reports) {
		original := textdiff.Sentences(r.OriginalText)
		edited := textdiff.Sentences(r.EditedText)

		n := min(len(original), len(edited))
		for i := 0; i < n; i++ {
			pref.SentencesAnalyzed++
			if original[i] == edited[i] {
				continue
			}

			wasPassive := lex.IsPassive(original[i])
			isPassive := lex.IsPassive(edited[i])
			switch {
			case wasPassive && !isPassive:
				pref.PassiveToActiveCount++
			case !wasPassive && isPassive:
				pref.ActiveToPassiveCount++
			}
		}
	}

	pref.Direction = types.VoiceActive
	if pref.ActiveToPassiveCount > pref.PassiveToActiveCount {
		pref.Direction = types.VoicePassive
	}

	if flips := pref.Flips(); flips > 0 {
		pref.Confidence = math.Abs(float64(pref.PassiveToActiveCount-pref.ActiveToPassiveCount)) / float64(flips)
	}

	return pref
}
