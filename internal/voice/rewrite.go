package voice

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sebonomics/CodeFour/internal/lexicon"
	"github.com/sebonomics/CodeFour/internal/textdiff"
	"github.com/sebonomics/CodeFour/internal/types"
)

// determiners open a noun phrase that may move out of sentence-initial position
var determiners = map[string]bool{
	"the": true, "a": true, "an": true, "his": true, "her": true, "their": true,
}

// agentCase maps common agents to their subject and object forms
var agentCase = map[string][2]string{
	"we":       {"we", "us"},
	"us":       {"we", "us"},
	"i":        {"I", "me"},
	"me":       {"I", "me"},
	"officers": {"officers", "officers"},
	"police":   {"police", "police"},
}

// Conversion records one sentence rewritten toward the preferred voice
type Conversion struct {
	Original  string
	Rewritten string
	Position  int
}

// ApplyPreference rewrites text toward pref.Direction. Preferences weaker than
// MinConfidence leave text untouched.
func ApplyPreference(lex *lexicon.Lexicon, text string, pref types.VoicePreference) string {
	if pref.Confidence < MinConfidence {
		return text
	}
	out, _ := RewriteSentences(lex, text, pref.Direction)
	return out
}

// RewriteSentences rewrites each sentence whose voice disagrees with direction
// using the first lexicon rewrite that matches it. Sentences no rewrite
// matches are left as they are.
func RewriteSentences(lex *lexicon.Lexicon, text string, direction types.VoiceDirection) (string, []Conversion) {
	rewrites := lex.Rewrites(direction)
	if len(rewrites) == 0 {
		return text, nil
	}

	var sb strings.Builder
	var conversions []Conversion
	last := 0

	for _, seg := range textdiff.SentenceSegments(text) {
		rewritten, ok := rewriteDisagreeing(lex, rewrites, seg.Body, direction)
		if !ok {
			continue
		}

		sb.WriteString(text[last:seg.Start])
		sb.WriteString(rewritten)
		last = seg.End
		conversions = append(conversions, Conversion{Original: seg.Body, Rewritten: rewritten, Position: seg.Start})
	}

	if len(conversions) == 0 {
		return text, nil
	}
	sb.WriteString(text[last:])
	return sb.String(), conversions
}

// RewriteSentence rewrites a single sentence body toward direction. It reports
// false when the sentence already reads in direction or no rewrite matches.
func RewriteSentence(lex *lexicon.Lexicon, sentence string, direction types.VoiceDirection) (string, bool) {
	return rewriteDisagreeing(lex, lex.Rewrites(direction), sentence, direction)
}

func rewriteDisagreeing(lex *lexicon.Lexicon, rewrites []lexicon.CompiledRewrite, sentence string, direction types.VoiceDirection) (string, bool) {
	if lex.IsPassive(sentence) == (direction == types.VoicePassive) {
		return "", false
	}
	rewritten, ok := rewriteSentence(rewrites, sentence)
	if !ok || rewritten == sentence {
		return "", false
	}
	return rewritten, true
}

func rewriteSentence(rewrites []lexicon.CompiledRewrite, sentence string) (string, bool) {
	for _, rw := range rewrites {
		match := rw.Pattern.FindStringSubmatch(sentence)
		if match == nil {
			continue
		}

		pairs := make([]string, 0, 2*len(match))
		for i, name := range rw.Pattern.SubexpNames() {
			if name == "" {
				continue
			}
			value := match[i]
			switch name {
			case "subject":
				value = lowerDeterminer(value)
			case "agent":
				value = agentForm(value, strings.HasPrefix(rw.Template, "${agent}"))
			}
			pairs = append(pairs, "${"+name+"}", value)
		}

		out := strings.NewReplacer(pairs...).Replace(rw.Template)
		return capitalize(strings.TrimSpace(out)), true
	}
	return "", false
}

// lowerDeterminer lowercases a leading determiner so it reads naturally mid-sentence.
func lowerDeterminer(phrase string) string {
	first, rest, found := strings.Cut(phrase, " ")
	if !determiners[strings.ToLower(first)] {
		return phrase
	}
	if !found {
		return strings.ToLower(first)
	}
	return strings.ToLower(first) + " " + rest
}

// agentForm puts a common agent into subject or object case.
func agentForm(agent string, asSubject bool) string {
	forms, ok := agentCase[strings.ToLower(agent)]
	if !ok {
		return lowerDeterminer(agent)
	}
	if asSubject {
		return forms[0]
	}
	return forms[1]
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
