package textdiff

import (
	"regexp"
	"strings"
	"unicode"
)

// minSentenceLength is the longest run, in bytes, still treated as a fragment
const minSentenceLength = 10

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// Segment locates a sentence body within its source text.
// Body excludes surrounding whitespace and the terminating punctuation.
type Segment struct {
	Start int
	End   int
	Body  string
}

// SentenceSegments splits text on runs of terminal punctuation and returns
// the sentences longer than ten characters with their byte offsets.
func SentenceSegments(text string) []Segment {
	var segments []Segment
	add := func(start, end int) {
		piece := text[start:end]
		trimmedLeft := strings.TrimLeftFunc(piece, unicode.IsSpace)
		body := strings.TrimRightFunc(trimmedLeft, unicode.IsSpace)
		if len(body) <= minSentenceLength {
			return
		}
		s := start + len(piece) - len(trimmedLeft)
		segments = append(segments, Segment{Start: s, End: s + len(body), Body: body})
	}

	prev := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		add(prev, loc[0])
		prev = loc[1]
	}
	add(prev, len(text))

	return segments
}

// Sentences returns the sentence bodies of text, fragments discarded.
func Sentences(text string) []string {
	segments := SentenceSegments(text)
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = s.Body
	}
	return out
}

// MeanSentenceLength returns the mean word count of the non-empty sentences in text.
func MeanSentenceLength(text string) float64 {
	total, count := 0, 0
	for _, piece := range sentenceEnd.Split(text, -1) {
		n := len(strings.Fields(piece))
		if n == 0 {
			continue
		}
		total += n
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}
