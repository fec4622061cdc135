package phrases

import (
	"strings"

	"github.com/sebonomics/CodeFour/internal/lexicon"
	"github.com/sebonomics/CodeFour/internal/textdiff"
)

// Strategy turns a text into raw phrase candidates
type Strategy interface {
	Name() string
	Extract(text string) ([]string, error)
}

var (
	bigramPatterns = [][2]POS{
		{POSAdjective, POSNoun},
		{POSNoun, POSNoun},
		{POSVerb, POSNoun},
		{POSVerb, POSAdverb},
		{POSAdverb, POSVerb},
		{POSNoun, POSVerb},
	}
	trigramPatterns = [][3]POS{
		{POSAdjective, POSAdjective, POSNoun},
		{POSAdjective, POSNoun, POSNoun},
		{POSVerb, POSAdverb, POSAdverb},
		{POSVerb, POSPreposition, POSNoun},
	}
)

// LinguisticStrategy emits windows of tokens whose tags form a productive POS pattern
type LinguisticStrategy struct {
	tagger POSTagger
	lex    *lexicon.Lexicon
}

// NewLinguisticStrategy creates a LinguisticStrategy over tagger.
func NewLinguisticStrategy(tagger POSTagger, lex *lexicon.Lexicon) *LinguisticStrategy {
	return &LinguisticStrategy{tagger: tagger, lex: lex}
}

// Name implements Strategy.
func (s *LinguisticStrategy) Name() string { return "linguistic" }

// Extract implements Strategy.
func (s *LinguisticStrategy) Extract(text string) ([]string, error) {
	tagging, err := s.tagger.Tag(text)
	if err != nil {
		return nil, err
	}

	var phrases []string
	toks := tagging.Tokens
	for i := 0; i+1 < len(toks); i++ {
		cur, next := toks[i], toks[i+1]
		if s.skip(cur) || s.skip(next) {
			continue
		}

		if matchesBigram(cur.POS, next.POS) {
			phrases = append(phrases, cur.Text+" "+next.Text)
		}

		if i+2 < len(toks) {
			third := toks[i+2]
			if !s.skip(third) && matchesTrigram(cur.POS, next.POS, third.POS) {
				phrases = append(phrases, cur.Text+" "+next.Text+" "+third.Text)
			}
		}
	}

	// VERB+PREP+NOUN has a stopword in the middle, so scan for it separately
	for i := 0; i+2 < len(toks); i++ {
		cur, prep, noun := toks[i], toks[i+1], toks[i+2]
		if cur.POS == POSVerb && prep.POS == POSPreposition && noun.POS == POSNoun &&
			!s.skip(cur) && !s.skip(noun) {
			phrases = append(phrases, cur.Text+" "+prep.Text+" "+noun.Text)
		}
	}

	for _, ent := range tagging.Entities {
		if len(strings.Fields(ent)) >= 2 {
			phrases = append(phrases, ent)
		}
	}

	return phrases, nil
}

func (s *LinguisticStrategy) skip(tok TaggedToken) bool {
	return tok.POS == POSPunctuation || s.lex.IsStopword(tok.Text)
}

func matchesBigram(a, b POS) bool {
	for _, p := range bigramPatterns {
		if p[0] == a && p[1] == b {
			return true
		}
	}
	return false
}

func matchesTrigram(a, b, c POS) bool {
	for _, p := range trigramPatterns {
		if p[0] == a && p[1] == b && p[2] == c {
			return true
		}
	}
	return false
}

// RegexStrategy emits every 2-gram and 3-gram of non-stopword tokens
type RegexStrategy struct {
	lex *lexicon.Lexicon
}

// NewRegexStrategy creates a RegexStrategy.
func NewRegexStrategy(lex *lexicon.Lexicon) *RegexStrategy {
	return &RegexStrategy{lex: lex}
}

// Name implements Strategy.
func (s *RegexStrategy) Name() string { return "regex" }

// Extract implements Strategy.
func (s *RegexStrategy) Extract(text string) ([]string, error) {
	var words []string
	for _, w := range strings.Fields(textdiff.Normalize(text)) {
		if !s.lex.IsStopword(w) {
			words = append(words, w)
		}
	}

	var phrases []string
	for i := 0; i+1 < len(words); i++ {
		phrases = append(phrases, words[i]+" "+words[i+1])
		if i+2 < len(words) {
			phrases = append(phrases, words[i]+" "+words[i+1]+" "+words[i+2])
		}
	}
	return phrases, nil
}
