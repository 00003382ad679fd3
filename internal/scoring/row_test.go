package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/fit-scorer/internal/enhance"
)

func TestScoreRowSingleHighEmphasis(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	row, err := cfg.ScoreRow(Requirement{
		Text:             "Python programming",
		Classification:   Essential,
		SelfScore:        4,
		EmphasisOverride: EmphasisHigh,
	})
	require.NoError(t, err)

	assert.InDelta(t, 3.0, row.ClassWeight, 1e-9)
	assert.InDelta(t, 0.5, row.EmphasisModifier, 1e-9)
	assert.InDelta(t, 18.0, row.RawScore, 1e-9)
	assert.InDelta(t, 22.5, cfg.TheoreticalMaxRowScore(), 1e-9)
	assert.InDelta(t, 0.8, row.NormalizedScore, 1e-9)
	assert.Nil(t, row.Enhancement)
}

func TestScoreRowClampsSelfScore(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	row, err := cfg.ScoreRow(Requirement{Text: "Go", Classification: Important, SelfScore: 12})
	require.NoError(t, err)
	assert.Equal(t, 5, row.SelfScore)
	assert.InDelta(t, 10.0, row.RawScore, 1e-9)

	row, err = cfg.ScoreRow(Requirement{Text: "Go", Classification: Important, SelfScore: -2})
	require.NoError(t, err)
	assert.Equal(t, 0, row.SelfScore)
	assert.Zero(t, row.RawScore)
}

func TestScoreRowNormalizedBounded(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	for _, c := range Classifications() {
		for _, e := range []Emphasis{EmphasisHigh, EmphasisLow, EmphasisNone} {
			for score := 0; score <= cfg.MaxSelfScore; score++ {
				row, err := cfg.ScoreRow(Requirement{Text: "x", Classification: c, SelfScore: score, EmphasisOverride: e})
				require.NoError(t, err)
				assert.GreaterOrEqual(t, row.NormalizedScore, 0.0)
				assert.LessOrEqual(t, row.NormalizedScore, 1.0)
			}
		}
	}
}

func TestScoreRowInvalidClassification(t *testing.T) {
	t.Parallel()

	_, err := DefaultConfig().ScoreRow(Requirement{Text: "x", Classification: "Optional", SelfScore: 3})
	assert.Error(t, err)
}

func TestScoreRowEnhancedHighComplexity(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	chain, err := enhance.NewChain(enhance.DefaultConfig(), enhance.DefaultOptions())
	require.NoError(t, err)

	req := Requirement{
		Text:           "Collaborate with chemistry, biology, clinical teams to translate research findings",
		Classification: Essential,
		SelfScore:      4,
	}

	base, err := cfg.ScoreRow(req)
	require.NoError(t, err)

	enhanced, err := cfg.ScoreRowEnhanced(req, chain)
	require.NoError(t, err)
	require.NotNil(t, enhanced.Enhancement)

	assert.Equal(t, enhance.LevelHigh, enhanced.Enhancement.Complexity)
	assert.Equal(t, 3, enhanced.Enhancement.IndicatorCount)
	assert.InDelta(t, 1.35, enhanced.Enhancement.ComplexityFactor, 1e-9)
	assert.Greater(t, enhanced.RawScore, base.RawScore)
	assert.InDelta(t, base.RawScore*enhanced.Enhancement.Product(), enhanced.RawScore, 1e-9)
}

func TestScoreRowEnhancedNilChain(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	req := Requirement{Text: "Lead teams", Classification: Important, SelfScore: 3}

	base, err := cfg.ScoreRow(req)
	require.NoError(t, err)
	row, err := cfg.ScoreRowEnhanced(req, nil)
	require.NoError(t, err)
	assert.Equal(t, base, row)
}
