package textdiff

import (
	"strings"
	"testing"

	"github.com/sebonomics/CodeFour/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		original string
		edited   string
	}{
		{name: "both empty", original: "", edited: ""},
		{name: "insert into empty", original: "", edited: "Officers arrived."},
		{name: "delete everything", original: "Officers arrived.", edited: ""},
		{name: "identical", original: "The suspect fled.", edited: "The suspect fled."},
		{name: "word swap", original: "I talked to the guy", edited: "I interviewed the subject"},
		{name: "time format", original: "Arrived at 3:30 PM.", edited: "Arrived at 1530 hours."},
		{name: "punctuation only", original: "He ran, then stopped.", edited: "He ran then stopped!"},
		{name: "whitespace changes", original: "a  b\tc\n", edited: " a b c"},
		{name: "repeated tokens", original: "the the the cat", edited: "the cat the the"},
		{name: "unicode", original: "café résumé naïve", edited: "café CV naïve ✓"},
		{name: "contractions", original: "I don't know", edited: "I do not know"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := Compute(tt.original, tt.edited)
			assert.Equal(t, tt.original, Original(spans))
			assert.Equal(t, tt.edited, Edited(spans))
		})
	}
}

func TestCompute_ReplacementBlock(t *testing.T) {
	spans := Compute("I talked to the guy", "I interviewed the subject")

	require.Equal(t, []types.TextSpan{
		{Kind: types.SpanUnchanged, Text: "I "},
		{Kind: types.SpanRemoved, Text: "talked to "},
		{Kind: types.SpanAdded, Text: "interviewed "},
		{Kind: types.SpanUnchanged, Text: "the "},
		{Kind: types.SpanRemoved, Text: "guy"},
		{Kind: types.SpanAdded, Text: "subject"},
	}, spans)
}

func TestCompute_RemovedPrecedesAdded(t *testing.T) {
	spans := Compute("one two three four", "uno two tres four five")
	for i := 1; i < len(spans); i++ {
		assert.False(t, spans[i-1].Kind == types.SpanAdded && spans[i].Kind == types.SpanRemoved,
			"added span must not precede a removed span in the same change block")
		assert.False(t, spans[i-1].Kind == spans[i].Kind, "adjacent spans must differ in kind")
	}
}

func TestCompute_Deterministic(t *testing.T) {
	original := strings.Repeat("the vehicle was searched by officers. ", 20)
	edited := strings.Repeat("officers searched the vehicle. ", 20)

	first := Compute(original, edited)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Compute(original, edited))
	}
}

func TestTokenize_Concatenates(t *testing.T) {
	inputs := []string{
		"",
		"  leading space",
		"trailing space  ",
		"At 0930 hours, I (Officer Smith) arrived... really!",
		"it's the suspect's car",
	}
	for _, in := range inputs {
		assert.Equal(t, in, strings.Join(Tokenize(in), ""))
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"i", "talked", "to", "the", "guy's", "friend"}, Words("I talked to the guy's friend."))
	assert.Empty(t, Words(" ... !"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  Talked   To ", want: "talked to"},
		{in: "guy,", want: "guy"},
		{in: "3:30 PM", want: "3 30 pm"},
		{in: "don't", want: "don't"},
		{in: "...", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
