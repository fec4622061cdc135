// Package phrasematch provides detection of phrase-level substitutions by pairing removed and added phrases.
package phrasematch

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sebonomics/CodeFour/internal/lexicon"
)

const (
	// overlapWeight and editWeight blend the two similarity signals
	overlapWeight = 0.7
	editWeight    = 0.3
)

// Similarity scores two phrases in [0,1] by content-word overlap and
// normalized Levenshtein similarity. Phrases with no content words score 0.
func Similarity(lex *lexicon.Lexicon, a, b string) float64 {
	wordsA := contentWords(lex, a)
	wordsB := contentWords(lex, b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	inB := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		inB[w] = true
	}
	common := 0
	for _, w := range wordsA {
		if inB[w] {
			common++
		}
	}
	overlap := float64(common) / float64(max(len(wordsA), len(wordsB)))

	a, b = strings.ToLower(a), strings.ToLower(b)
	editSim := 0.0
	if maxLen := max(len([]rune(a)), len([]rune(b))); maxLen > 0 {
		editSim = 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
	}

	return overlap*overlapWeight + editSim*editWeight
}

func contentWords(lex *lexicon.Lexicon, phrase string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(phrase)) {
		if !lex.IsStopword(w) {
			out = append(out, w)
		}
	}
	return out
}
