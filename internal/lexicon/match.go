package lexicon

import (
	"regexp"
	"strings"

	"github.com/sebonomics/CodeFour/internal/types"
)

// ToneShift is an informal term from the lexicon that an edit replaced
type ToneShift struct {
	Informal string
	Formal   string
}

// ToneShifts returns the informal/formal pairs where the informal term occurs
// in original and the formal term occurs in edited.
func (l *Lexicon) ToneShifts(original, edited string) []ToneShift {
	var shifts []ToneShift
	for _, term := range l.informalToFormal {
		if term.informal.MatchString(original) && term.formal.MatchString(edited) {
			shifts = append(shifts, ToneShift{Informal: term.Informal, Formal: term.Formal})
		}
	}
	return shifts
}

// PassiveScore sums the weights of passive patterns matching sentence.
func (l *Lexicon) PassiveScore(sentence string) float64 {
	var score float64
	for _, p := range l.passive {
		if p.re.MatchString(sentence) {
			score += p.weight
		}
	}
	return score
}

// IsPassive reports whether sentence reads as passive voice.
func (l *Lexicon) IsPassive(sentence string) bool {
	return l.PassiveScore(sentence) >= l.PassiveThreshold
}

// CountActive counts active-voice indicator matches in text.
func (l *Lexicon) CountActive(text string) int {
	count := 0
	for _, re := range l.active {
		count += len(re.FindAllStringIndex(text, -1))
	}
	return count
}

// Rewrites returns the voice rewrites that produce direction, in table order.
func (l *Lexicon) Rewrites(direction types.VoiceDirection) []CompiledRewrite {
	var out []CompiledRewrite
	for _, rw := range l.rewrites {
		if rw.Direction == direction {
			out = append(out, rw)
		}
	}
	return out
}

// MatchesDomainTransformation reports whether from/to match a curated domain transformation.
func (l *Lexicon) MatchesDomainTransformation(from, to string) bool {
	for _, tr := range l.transforms {
		if tr.from.MatchString(from) && tr.to.MatchString(to) {
			return true
		}
	}
	return false
}

// IsBanned reports whether word is a closed-class word that disqualifies diff-derived rules.
func (l *Lexicon) IsBanned(word string) bool {
	return l.banned[strings.ToLower(word)]
}

// IsStopword reports whether word is too common to carry a phrase.
func (l *Lexicon) IsStopword(word string) bool {
	return len(word) <= 2 || l.stopwords[strings.ToLower(word)]
}

// IsInformalModifier reports whether word is a filler or intensifier.
func (l *Lexicon) IsInformalModifier(word string) bool {
	return l.modifiers[strings.ToLower(word)]
}

// RedundantWordsIn returns the redundant single words occurring as whole words in text.
func (l *Lexicon) RedundantWordsIn(text string) []string {
	words := make(map[string]bool)
	for _, w := range wordRun.FindAllString(strings.ToLower(text), -1) {
		words[w] = true
	}
	var found []string
	for _, w := range l.RedundantWords {
		if words[w] {
			found = append(found, w)
		}
	}
	return found
}

// RedundantPhrasesIn returns the redundant phrases contained in normalized text.
func (l *Lexicon) RedundantPhrasesIn(normalized string) []string {
	var found []string
	for _, p := range l.RedundantPhrases {
		if strings.Contains(normalized, p) {
			found = append(found, p)
		}
	}
	return found
}

var wordRun = regexp.MustCompile(`[\p{L}\p{N}_']+`)
