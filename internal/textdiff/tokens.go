package textdiff

import (
	"regexp"
	"strings"
)

var (
	// tokenPattern covers every character: a word run, a single symbol, or
	// leading whitespace, each carrying its trailing whitespace.
	tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+(?:'[\p{L}\p{N}_]+)*\s*|[^\p{L}\p{N}_\s]\s*|\s+`)
	wordPattern  = regexp.MustCompile(`[\p{L}\p{N}_]+(?:'[\p{L}\p{N}_]+)*`)
	nonWord      = regexp.MustCompile(`[^\p{L}\p{N}_\s']+`)
	spaceRun     = regexp.MustCompile(`\s+`)
)

// Tokenize splits text into tokens whose concatenation is exactly text.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// Words returns the lowercased word tokens of text, ignoring punctuation.
func Words(text string) []string {
	words := wordPattern.FindAllString(text, -1)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words
}

// Normalize lowercases text, turns punctuation into spaces and collapses whitespace.
func Normalize(text string) string {
	text = nonWord.ReplaceAllString(strings.ToLower(text), " ")
	text = spaceRun.ReplaceAllString(text, " ")
	return strings.Trim(strings.TrimSpace(text), "'")
}
