package phrases

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/sebonomics/CodeFour/internal/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTagger returns a fixed tagging, or an error when err is set
type fakeTagger struct {
	tagging *Tagging
	err     error
}

func (f *fakeTagger) Tag(string) (*Tagging, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tagging, nil
}

func tagged(pairs ...string) []TaggedToken {
	var toks []TaggedToken
	for i := 0; i+1 < len(pairs); i += 2 {
		toks = append(toks, TaggedToken{Text: pairs[i], POS: POS(pairs[i+1])})
	}
	return toks
}

func TestRegexStrategy_Extract(t *testing.T) {
	e := NewExtractor(lexicon.Default(), nil)

	got, err := e.Extract(context.Background(), "The male suspect fled quickly, on foot!")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"male suspect",
		"male suspect fled",
		"suspect fled",
		"suspect fled quickly",
		"fled quickly",
		"fled quickly foot",
		"quickly foot",
	}, got)
	assert.Equal(t, "regex", e.Strategy().Name())
}

func TestLinguisticStrategy_Patterns(t *testing.T) {
	tagger := &fakeTagger{tagging: &Tagging{
		Tokens: tagged(
			"The", "X",
			"large", "ADJ",
			"black", "ADJ",
			"dog", "NOUN",
			"ran", "VERB",
			"into", "PREP",
			"traffic", "NOUN",
			".", "PUNCT",
		),
		Entities: []string{"John Smith", "Smith"},
	}}

	lex := lexicon.Default()
	e := NewExtractor(lex, func() (POSTagger, error) { return tagger, nil })

	got, err := e.Extract(context.Background(), "ignored by the fake tagger")
	require.NoError(t, err)

	assert.Equal(t, "linguistic", e.Strategy().Name())
	assert.ElementsMatch(t, []string{
		"large black dog",  // ADJ ADJ NOUN
		"black dog",        // ADJ NOUN
		"dog ran",          // NOUN VERB
		"ran into traffic", // VERB PREP NOUN
		"john smith",       // entity
	}, got)
}

func TestExtractor_FallsBackWhenBackendFailsToLoad(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	factory := func() (POSTagger, error) {
		calls++
		return nil, errors.New("model missing")
	}

	e := NewExtractor(lexicon.Default(), factory, WithLogger(log.New(&buf, "", 0)))

	for i := 0; i < 3; i++ {
		got, err := e.Extract(context.Background(), "officers searched the vehicle")
		require.NoError(t, err)
		assert.Contains(t, got, "officers searched")
	}

	assert.Equal(t, 1, calls, "failed initialization must not be retried")
	assert.Equal(t, 1, strings.Count(buf.String(), "linguistic tagger unavailable"))
}

func TestExtractor_FallsBackPerCall(t *testing.T) {
	var buf bytes.Buffer
	tagger := &fakeTagger{err: errors.New("tagging exploded")}
	e := NewExtractor(lexicon.Default(), func() (POSTagger, error) { return tagger, nil }, WithLogger(log.New(&buf, "", 0)))

	got, err := e.Extract(context.Background(), "officers searched the vehicle")
	require.NoError(t, err)
	assert.Contains(t, got, "searched vehicle")
	assert.Contains(t, buf.String(), "linguistic phrase extraction failed")
	assert.Equal(t, "linguistic", e.Strategy().Name())
}

func TestExtractor_ConcurrentInitialization(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	factory := func() (POSTagger, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return &fakeTagger{tagging: &Tagging{}}, nil
	}
	e := NewExtractor(lexicon.Default(), factory)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = e.Extract(context.Background(), "text")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
}

func TestExtractor_OutputInvariants(t *testing.T) {
	lex := lexicon.Default()
	e := NewExtractor(lex, nil)

	inputs := []string{
		"",
		"the and of it",
		"I went to the store and I went to the store again.",
		"Officer Smith observed a red sedan parked near the red sedan.",
	}

	for _, in := range inputs {
		got, err := e.Extract(context.Background(), in)
		require.NoError(t, err)

		seen := map[string]bool{}
		for _, p := range got {
			assert.False(t, seen[p], "duplicate phrase %q", p)
			seen[p] = true
			assert.GreaterOrEqual(t, len(p), minPhraseLength)
			assert.Equal(t, strings.ToLower(p), p)

			allStop := true
			for _, w := range strings.Fields(p) {
				if !lex.IsStopword(w) {
					allStop = false
				}
			}
			assert.False(t, allStop, "stopword-only phrase %q", p)
		}
	}
}

func TestExtractor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor(lexicon.Default(), nil).Extract(ctx, "officers searched the vehicle")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromPenn(t *testing.T) {
	tests := []struct {
		tag  string
		text string
		want POS
	}{
		{tag: "JJR", text: "larger", want: POSAdjective},
		{tag: "NNPS", text: "Officers", want: POSNoun},
		{tag: "VBD", text: "ran", want: POSVerb},
		{tag: "RB", text: "quickly", want: POSAdverb},
		{tag: "IN", text: "into", want: POSPreposition},
		{tag: "TO", text: "to", want: POSPreposition},
		{tag: ".", text: ".", want: POSPunctuation},
		{tag: "DT", text: "the", want: POSOther},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, fromPenn(tt.tag, tt.text))
		})
	}
}

func TestProseTagger(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping prose model test in short mode")
	}

	tagger, err := NewProseTagger()
	require.NoError(t, err)

	tagging, err := tagger.Tag("The officer quickly searched the black vehicle.")
	require.NoError(t, err)
	require.NotEmpty(t, tagging.Tokens)
	assert.Equal(t, "officer", tagging.Tokens[1].Text)
	assert.Equal(t, POSNoun, tagging.Tokens[1].POS)
}

func TestProseTagger_ReusesLoadedModel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping prose model test in short mode")
	}

	tagger, err := NewProseTagger()
	require.NoError(t, err)

	pt, ok := tagger.(*ProseTagger)
	require.True(t, ok)
	require.NotNil(t, pt.model)
	model := pt.model

	first, err := tagger.Tag("The suspect fled the scene on foot.")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := tagger.Tag("The suspect fled the scene on foot.")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Same(t, model, pt.model, "Tag must not replace the loaded model")
}
