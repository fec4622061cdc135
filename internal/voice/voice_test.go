package voice

import (
	"testing"

	"github.com/sebonomics/CodeFour/internal/lexicon"
	"github.com/sebonomics/CodeFour/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpus() []types.Report {
	return []types.Report{
		{
			ID:           1,
			OriginalText: "The suspect was arrested at the scene. The vehicle was searched by officers.",
			EditedText:   "I arrested the suspect at the scene. Officers searched the vehicle.",
			IsEdited:     true,
		},
		{
			ID:           2,
			OriginalText: "The driver was transported to jail. The witness was interviewed at length.",
			EditedText:   "Officers transported the driver to jail. I interviewed the witness at length.",
			IsEdited:     true,
		},
		{
			ID:           3,
			OriginalText: "The knife was recovered from the car. I photographed the scene carefully.",
			EditedText:   "Officers recovered the knife from the car. The scene was photographed carefully.",
			IsEdited:     true,
		},
		{
			ID:           4,
			OriginalText: "The door was opened by the owner.",
			EditedText:   "The owner opened the door.",
			IsEdited:     false,
		},
	}
}

func TestAnalyzePreference(t *testing.T) {
	pref := AnalyzePreference(lexicon.Default(), corpus())

	assert.Equal(t, types.VoiceActive, pref.Direction)
	assert.Equal(t, 5, pref.PassiveToActiveCount)
	assert.Equal(t, 1, pref.ActiveToPassiveCount)
	assert.Equal(t, 6, pref.SentencesAnalyzed)
	assert.InDelta(t, 0.667, pref.Confidence, 0.001)
}

func TestAnalyzePreference_NoSignal(t *testing.T) {
	lex := lexicon.Default()

	pref := AnalyzePreference(lex, nil)
	assert.Equal(t, types.VoiceActive, pref.Direction)
	assert.Zero(t, pref.Confidence)
	assert.Zero(t, pref.SentencesAnalyzed)

	pref = AnalyzePreference(lex, []types.Report{{
		ID:           1,
		OriginalText: "The officer arrived at noon. The street was quiet.",
		EditedText:   "The officer arrived at 1200 hours. The street was quiet.",
		IsEdited:     true,
	}})
	assert.Zero(t, pref.Flips())
	assert.Zero(t, pref.Confidence)
	assert.Equal(t, 2, pref.SentencesAnalyzed)
}

func TestAnalyzePreference_PassiveWins(t *testing.T) {
	pref := AnalyzePreference(lexicon.Default(), []types.Report{{
		ID:           1,
		OriginalText: "I searched the vehicle thoroughly. Officers detained the driver.",
		EditedText:   "The vehicle was searched thoroughly. The driver was detained by officers.",
		IsEdited:     true,
	}})

	assert.Equal(t, types.VoicePassive, pref.Direction)
	assert.Equal(t, 2, pref.ActiveToPassiveCount)
	assert.Equal(t, 1.0, pref.Confidence)
}

func TestAnalyzePreference_ComparesUpToShorterDocument(t *testing.T) {
	pref := AnalyzePreference(lexicon.Default(), []types.Report{{
		ID:           1,
		OriginalText: "The suspect was arrested at the scene. The vehicle was searched by officers.",
		EditedText:   "I arrested the suspect at the scene.",
		IsEdited:     true,
	}})

	assert.Equal(t, 1, pref.SentencesAnalyzed)
	assert.Equal(t, 1, pref.PassiveToActiveCount)
}

func TestRewriteSentences(t *testing.T) {
	lex := lexicon.Default()

	tests := []struct {
		name      string
		direction types.VoiceDirection
		input     string
		want      string
	}{
		{
			name:      "was arrested",
			direction: types.VoiceActive,
			input:     "The subject was arrested at the scene",
			want:      "I arrested the subject at the scene",
		},
		{
			name:      "by agent",
			direction: types.VoiceActive,
			input:     "The vehicle was searched by officers. He was calm.",
			want:      "Officers searched the vehicle. He was calm.",
		},
		{
			name:      "were seized",
			direction: types.VoiceActive,
			input:     "The items were seized at the house.",
			want:      "Officers seized the items at the house.",
		},
		{
			name:      "by us",
			direction: types.VoiceActive,
			input:     "The area was searched by us.",
			want:      "We searched the area.",
		},
		{
			name:      "no rewrite matches",
			direction: types.VoiceActive,
			input:     "Evidence was collected quickly.",
			want:      "Evidence was collected quickly.",
		},
		{
			name:      "already active",
			direction: types.VoiceActive,
			input:     "I arrested the subject at the scene.",
			want:      "I arrested the subject at the scene.",
		},
		{
			name:      "first person to passive",
			direction: types.VoicePassive,
			input:     "I searched the vehicle.",
			want:      "The vehicle was searched.",
		},
		{
			name:      "agent to passive",
			direction: types.VoicePassive,
			input:     "Officers searched the vehicle. The driver waited outside.",
			want:      "The vehicle was searched by officers. The driver waited outside.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := RewriteSentences(lex, tt.input, tt.direction)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewriteSentences_Conversions(t *testing.T) {
	text := "Units arrived. The subject was arrested at the scene."
	got, conversions := RewriteSentences(lexicon.Default(), text, types.VoiceActive)

	assert.Equal(t, "Units arrived. I arrested the subject at the scene.", got)
	require.Len(t, conversions, 1)
	assert.Equal(t, "The subject was arrested at the scene", conversions[0].Original)
	assert.Equal(t, "I arrested the subject at the scene", conversions[0].Rewritten)
	assert.Equal(t, 15, conversions[0].Position)
}

func TestApplyPreference(t *testing.T) {
	lex := lexicon.Default()
	text := "The subject was arrested at the scene."

	strong := types.VoicePreference{Direction: types.VoiceActive, Confidence: 0.667}
	assert.Equal(t, "I arrested the subject at the scene.", ApplyPreference(lex, text, strong))

	weak := types.VoicePreference{Direction: types.VoiceActive, Confidence: 0.29}
	assert.Equal(t, text, ApplyPreference(lex, text, weak))

	boundary := types.VoicePreference{Direction: types.VoiceActive, Confidence: MinConfidence}
	assert.NotEqual(t, text, ApplyPreference(lex, text, boundary))
}
