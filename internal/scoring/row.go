package scoring

import (
	"github.com/spigell/fit-scorer/internal/enhance"
)

// RowResult is the scored form of one requirement.
type RowResult struct {
	Requirement      string             `json:"requirement" yaml:"requirement"`
	Classification   Classification     `json:"classification" yaml:"classification"`
	SelfScore        int                `json:"self_score" yaml:"self_score"`
	ClassWeight      float64            `json:"class_weight" yaml:"class_weight"`
	EmphasisModifier float64            `json:"emphasis_modifier" yaml:"emphasis_modifier"`
	RawScore         float64            `json:"raw_score" yaml:"raw_score"`
	NormalizedScore  float64            `json:"normalized_score" yaml:"normalized_score"`
	Capped           bool               `json:"capped,omitempty" yaml:"capped,omitempty"`
	Enhancement      *enhance.Breakdown `json:"enhancement,omitempty" yaml:"enhancement,omitempty"`
}

// ScoreRow computes the baseline raw and normalized score of one requirement:
// weight * (1 + emphasis) * clamped self-score.
func (c Config) ScoreRow(req Requirement) (RowResult, error) {
	if !req.Classification.Valid() {
		return RowResult{}, invalidClassification(req.Classification)
	}

	weight, err := c.Weights.Of(req.Classification)
	if err != nil {
		return RowResult{}, err
	}

	emphasis := c.ResolveEmphasis(req)
	score := c.ClampSelfScore(req.SelfScore)
	raw := weight * (1 + emphasis) * float64(score)

	return RowResult{
		Requirement:      req.Text,
		Classification:   req.Classification,
		SelfScore:        score,
		ClassWeight:      weight,
		EmphasisModifier: emphasis,
		RawScore:         raw,
		NormalizedScore:  c.normalize(raw),
	}, nil
}

// ScoreRowEnhanced scores a requirement and multiplies the raw score by the
// enhancement chain's combined factor. Every factor sees the unmodified
// self-score. A nil chain yields the baseline row.
func (c Config) ScoreRowEnhanced(req Requirement, chain *enhance.Chain) (RowResult, error) {
	row, err := c.ScoreRow(req)
	if err != nil || chain == nil {
		return row, err
	}

	breakdown := chain.Evaluate(enhance.Input{Text: req.Text, SelfScore: row.SelfScore})
	row.RawScore *= breakdown.Product()
	row.NormalizedScore = c.normalize(row.RawScore)
	row.Enhancement = &breakdown

	return row, nil
}

func (c Config) normalize(raw float64) float64 {
	ceiling := c.TheoreticalMaxRowScore()
	if ceiling <= 0 {
		return 0
	}
	return raw / ceiling
}
