package textdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentences(t *testing.T) {
	text := "The suspect was arrested at the scene. Ok. The vehicle was searched!!  Then what?"

	assert.Equal(t, []string{
		"The suspect was arrested at the scene",
		"The vehicle was searched",
	}, Sentences(text))
	assert.Empty(t, Sentences(""))
	assert.Empty(t, Sentences("Short. Tiny!"))
}

func TestSentenceSegments_Offsets(t *testing.T) {
	text := "  First sentence here.\nSecond sentence here"

	segments := SentenceSegments(text)
	assert.Len(t, segments, 2)
	for _, s := range segments {
		assert.Equal(t, s.Body, text[s.Start:s.End])
	}
	assert.Equal(t, "Second sentence here", segments[1].Body)
}

func TestMeanSentenceLength(t *testing.T) {
	assert.InDelta(t, 3.0, MeanSentenceLength("One two three. Four five six."), 1e-9)
	assert.InDelta(t, 2.0, MeanSentenceLength("One. Two three four!"), 1e-9)
	assert.Equal(t, 0.0, MeanSentenceLength("..."))
}
