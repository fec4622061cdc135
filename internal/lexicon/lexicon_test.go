package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebonomics/CodeFour/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedTables(t *testing.T) {
	lex := Default()

	assert.NotEmpty(t, lex.Version)
	assert.Len(t, lex.InformalToFormal, 29)
	assert.Len(t, lex.RedundantPhrases, 18)
	assert.Len(t, lex.DomainTransformations, 13)
	assert.True(t, lex.IsBanned("on"), "quoted YAML keyword must load as a string")
	assert.True(t, lex.IsStopword("on"))
}

func TestIsPassive(t *testing.T) {
	lex := Default()

	tests := []struct {
		sentence string
		want     bool
	}{
		{sentence: "The suspect was arrested at the scene", want: true},
		{sentence: "The vehicle was searched by officers", want: true},
		{sentence: "The evidence was taken to the lab", want: true},
		{sentence: "The suspect was found behind the store", want: true},
		{sentence: "I arrested the suspect at the scene", want: false},
		{sentence: "Officers searched the vehicle", want: false},
		{sentence: "I photographed the scene carefully", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			assert.Equal(t, tt.want, lex.IsPassive(tt.sentence))
		})
	}
}

func TestCountActive(t *testing.T) {
	lex := Default()

	assert.Equal(t, 2, lex.CountActive("I arrested the suspect. Officers transported the driver."))
	assert.Equal(t, 0, lex.CountActive("The suspect was arrested."))
}

func TestToneShifts(t *testing.T) {
	lex := Default()

	shifts := lex.ToneShifts("I talked to the guy", "I interviewed the subject")
	assert.Equal(t, []ToneShift{
		{Informal: "talked to", Formal: "interviewed"},
		{Informal: "guy", Formal: "subject"},
	}, shifts)

	// "guys" must not fire the singular entry through a partial word match
	shifts = lex.ToneShifts("the guys left", "the subjects departed")
	assert.Contains(t, shifts, ToneShift{Informal: "guys", Formal: "subjects"})
	assert.NotContains(t, shifts, ToneShift{Informal: "guy", Formal: "subject"})
}

func TestMatchesDomainTransformation(t *testing.T) {
	lex := Default()

	assert.True(t, lex.MatchesDomainTransformation("talked to witness", "interviewed witness"))
	assert.True(t, lex.MatchesDomainTransformation("male suspect fled", "subject fled"))
	assert.False(t, lex.MatchesDomainTransformation("blue car", "red car"))
}

func TestRedundantLookups(t *testing.T) {
	lex := Default()

	assert.Equal(t, []string{"that", "really"}, lex.RedundantWordsIn("really said that"))
	assert.Equal(t, []string{"in order to"}, lex.RedundantPhrasesIn("walked in order to see"))
	assert.Equal(t, []string{"due to the fact that", "the fact that"}, lex.RedundantPhrasesIn("due to the fact that"))
}

func TestRewrites_FilteredByDirection(t *testing.T) {
	lex := Default()

	active := lex.Rewrites(types.VoiceActive)
	passive := lex.Rewrites(types.VoicePassive)
	assert.Len(t, active, 3)
	assert.Len(t, passive, 2)
	for _, rw := range active {
		assert.Equal(t, types.VoiceActive, rw.Direction)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{
			name:    "malformed yaml",
			data:    "version: [unclosed",
			wantMsg: "failed to parse lexicon YAML",
		},
		{
			name:    "missing version",
			data:    "passive_threshold: 1\npassive_patterns:\n  - {pattern: 'x', weight: 1}\npassive_verbs: [arrested]\n",
			wantMsg: "lexicon failed validation",
		},
		{
			name:    "bad regex",
			data:    "version: t\npassive_threshold: 1\npassive_patterns:\n  - {pattern: '(', weight: 1}\npassive_verbs: [arrested]\n",
			wantMsg: "invalid regex in passive_patterns",
		},
		{
			name:    "bad rewrite direction",
			data:    "version: t\npassive_threshold: 1\npassive_patterns:\n  - {pattern: 'x', weight: 1}\npassive_verbs: [arrested]\nvoice_rewrites:\n  - {direction: sideways, pattern: 'x', template: 'y'}\n",
			wantMsg: "lexicon failed validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lex, err := Load([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, lex)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := `version: custom-1
passive_threshold: 1
passive_patterns:
  - { pattern: '\bwas\s+(?:{{verbs}})\b', weight: 1 }
passive_verbs: [cuffed]
banned_words: [the]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	lex, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom-1", lex.Version)
	assert.True(t, lex.IsPassive("He was cuffed"))
	assert.False(t, lex.IsPassive("He was arrested"))
	assert.True(t, lex.IsBanned("THE"))

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read lexicon file")
}
