package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		primary   string
		secondary string
	}{
		{
			name:      "bilingual answer",
			answer:    "Spray neem oil in the evening.\nసాయంత్రం వేప నూనె పిచికారీ చేయండి.",
			primary:   "Spray neem oil in the evening.",
			secondary: "సాయంత్రం వేప నూనె పిచికారీ చేయండి.",
		},
		{
			name:      "multi-line secondary keeps internal newlines",
			answer:    "Line A\nLine B\nLine C",
			primary:   "Line A",
			secondary: "Line B\nLine C",
		},
		{
			name:    "single line has empty secondary",
			answer:  "OnlyLine",
			primary: "OnlyLine",
		},
		{
			name:      "empty answer",
			answer:    "",
			primary:   "",
			secondary: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary, secondary := Split(tt.answer)
			assert.Equal(t, tt.primary, primary)
			assert.Equal(t, tt.secondary, secondary)
		})
	}
}

func TestSegmentEnglish(t *testing.T) {
	got, err := Segment("First line\nSecond line", English)
	require.NoError(t, err)
	assert.Equal(t, "First line", got)
}

func TestSegmentTelugu(t *testing.T) {
	got, err := Segment("English answer\nతెలుగు సమాధానం", Telugu)
	require.NoError(t, err)
	assert.Equal(t, "తెలుగు సమాధానం", got)
}

func TestSegmentTeluguUnavailable(t *testing.T) {
	_, err := Segment("OnlyLine", Telugu)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTranslationUnavailable)

	_, err = Segment("English answer\n   \n  ", Telugu)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTranslationUnavailable)
}

func TestSegmentUnknownLanguageFallsBackToPrimary(t *testing.T) {
	got, err := Segment("First line\nSecond line", Language("Hindi"))
	require.NoError(t, err)
	assert.Equal(t, "First line", got)
}
