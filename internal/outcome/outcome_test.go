package outcome_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessstats/internal/outcome"
)

func TestClassifier_DefaultTable(t *testing.T) {
	c := outcome.NewClassifier(nil)

	tests := []struct {
		code string
		want outcome.Score
	}{
		{"win", outcome.Win},
		{"stalemate", outcome.Draw},
		{"agreed", outcome.Draw},
		{"repetition", outcome.Draw},
		{"insufficient", outcome.Draw},
		{"timevsinsufficient", outcome.Draw},
		{"50move", outcome.Draw},
		{"threecheckdraw", outcome.Draw},
		{"checkmated", outcome.Loss},
		{"timeout", outcome.Loss},
		{"resigned", outcome.Loss},
		{"abandoned", outcome.Loss},
		{"lose", outcome.Loss},
		{"unknown_code", outcome.Unresolved},
		{"kingofthehill", outcome.Unresolved},
		{"", outcome.Unresolved},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Score(tt.code))
		})
	}
}

func TestClassifier_NormalizesCase(t *testing.T) {
	c := outcome.NewClassifier(nil)
	assert.Equal(t, outcome.Loss, c.Score(" Resigned "))
	assert.Equal(t, outcome.Win, c.Score("WIN"))
}

func TestScore_Rendering(t *testing.T) {
	tests := []struct {
		score   outcome.Score
		str     string
		value   float64
		numeric bool
	}{
		{outcome.Win, "1", 1, true},
		{outcome.Draw, "0.5", 0.5, true},
		{outcome.Loss, "0", 0, true},
		{outcome.Unresolved, "?", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.score.String())
			v, ok := tt.score.Value()
			assert.Equal(t, tt.value, v)
			assert.Equal(t, tt.numeric, ok)
		})
	}
}

func TestParseOverrides(t *testing.T) {
	extra, err := outcome.ParseOverrides("kingofthehill=0, ThreeCheck=0 ,bughousepartnerlose=0,,")
	require.NoError(t, err)
	assert.Len(t, extra, 3)
	assert.Equal(t, outcome.Loss, extra["threecheck"])

	c := outcome.NewClassifier(outcome.DefaultTable().Merge(extra))
	assert.Equal(t, outcome.Loss, c.Score("kingofthehill"))
	assert.Equal(t, outcome.Draw, c.Score("agreed"))
}

func TestParseOverrides_Invalid(t *testing.T) {
	tests := []string{"nocode", "=1", "win=2", "draw=half"}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := outcome.ParseOverrides(in)
			assert.Error(t, err)
		})
	}
}

func TestMerge_OverridesAndCopies(t *testing.T) {
	base := outcome.DefaultTable()
	merged := base.Merge(outcome.Table{"timeout": outcome.Draw})

	assert.Equal(t, outcome.Draw, merged["timeout"])
	assert.Equal(t, outcome.Loss, base["timeout"], "base table must not change")
}
