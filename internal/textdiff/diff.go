// Package textdiff provides a word-granularity diff that reports tagged text spans.
package textdiff

import (
	"strings"

	"github.com/sebonomics/CodeFour/internal/types"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// surrogateStart is the first UTF-16 surrogate code point; token ids skip that range.
const surrogateStart = 0xD800

// Compute diffs original against edited at word granularity.
// Each change between two unchanged runs is reported as one removed span
// followed by one added span, so the spans replay both inputs exactly.
func Compute(original, edited string) []types.TextSpan {
	if original == edited {
		if original == "" {
			return nil
		}
		return []types.TextSpan{{Kind: types.SpanUnchanged, Text: original}}
	}

	enc := newTokenEncoder()
	a := enc.encode(Tokenize(original))
	b := enc.encode(Tokenize(edited))

	dmp := diffmatchpatch.New()
	// No deadline: the result must not depend on machine speed
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMainRunes(a, b, false)

	var spans []types.TextSpan
	var removed, added strings.Builder

	flush := func() {
		if removed.Len() > 0 {
			spans = append(spans, types.TextSpan{Kind: types.SpanRemoved, Text: removed.String()})
			removed.Reset()
		}
		if added.Len() > 0 {
			spans = append(spans, types.TextSpan{Kind: types.SpanAdded, Text: added.String()})
			added.Reset()
		}
	}

	for _, d := range diffs {
		text := enc.decode(d.Text)
		if text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			removed.WriteString(text)
		case diffmatchpatch.DiffInsert:
			added.WriteString(text)
		case diffmatchpatch.DiffEqual:
			flush()
			if n := len(spans); n > 0 && spans[n-1].Kind == types.SpanUnchanged {
				spans[n-1].Text += text
			} else {
				spans = append(spans, types.TextSpan{Kind: types.SpanUnchanged, Text: text})
			}
		}
	}
	flush()

	return spans
}

// Original replays the removed and unchanged spans.
func Original(spans []types.TextSpan) string {
	return replay(spans, types.SpanRemoved)
}

// Edited replays the added and unchanged spans.
func Edited(spans []types.TextSpan) string {
	return replay(spans, types.SpanAdded)
}

func replay(spans []types.TextSpan, side types.SpanKind) string {
	var sb strings.Builder
	for _, s := range spans {
		if s.Kind == types.SpanUnchanged || s.Kind == side {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

// tokenEncoder maps each distinct token to a single rune so the character
// diff in diffmatchpatch operates on whole tokens.
type tokenEncoder struct {
	ids    map[string]rune
	tokens map[rune]string
}

func newTokenEncoder() *tokenEncoder {
	return &tokenEncoder{
		ids:    make(map[string]rune),
		tokens: make(map[rune]string),
	}
}

func (e *tokenEncoder) encode(tokens []string) []rune {
	out := make([]rune, len(tokens))
	for i, tok := range tokens {
		id, ok := e.ids[tok]
		if !ok {
			id = rune(len(e.ids) + 1)
			if id >= surrogateStart {
				id += 0x800
			}
			e.ids[tok] = id
			e.tokens[id] = tok
		}
		out[i] = id
	}
	return out
}

func (e *tokenEncoder) decode(s string) string {
	var sb strings.Builder
	for _, r := range s {
		sb.WriteString(e.tokens[r])
	}
	return sb.String()
}
