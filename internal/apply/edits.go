package apply

import (
	"sort"
	"strings"

	"github.com/sebonomics/CodeFour/internal/types"
)

// edit replaces text[start:end] with text
type edit struct {
	start int
	end   int
	text  string
}

// span is a half-open byte range produced by an earlier replacement
type span struct {
	start int
	end   int
}

func (s span) overlaps(start, end int) bool {
	return start < s.end && s.start < end
}

func overlapsAny(protected []span, start, end int) bool {
	for _, p := range protected {
		if p.overlaps(start, end) {
			return true
		}
	}
	return false
}

// applyEdits splices non-overlapping, ascending edits into text. It returns
// the new text and the protected spans shifted into new coordinates, with the
// inserted text of every non-empty edit added.
func applyEdits(text string, edits []edit, protected []span) (string, []span) {
	var sb strings.Builder
	sb.Grow(len(text))

	var out []span
	last, delta := 0, 0
	shifts := make([]int, len(edits))
	for i, e := range edits {
		sb.WriteString(text[last:e.start])
		sb.WriteString(e.text)
		if e.text != "" {
			start := e.start + delta
			out = append(out, span{start: start, end: start + len(e.text)})
		}
		delta += len(e.text) - (e.end - e.start)
		shifts[i] = delta
		last = e.end
	}
	sb.WriteString(text[last:])

	for _, p := range protected {
		// Shift by every edit that ends at or before the span
		shift := 0
		for i, e := range edits {
			if e.end <= p.start {
				shift = shifts[i]
			}
		}
		out = append(out, span{start: p.start + shift, end: p.end + shift})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].start < out[j].start })
	return sb.String(), out
}

// replacementsFor renders edits as audit records in the coordinates of text.
func replacementsFor(text string, edits []edit) []types.Replacement {
	out := make([]types.Replacement, len(edits))
	for i, e := range edits {
		out[i] = types.Replacement{
			Original:    strings.TrimSpace(text[e.start:e.end]),
			Replacement: e.text,
			Position:    e.start,
		}
	}
	return out
}
