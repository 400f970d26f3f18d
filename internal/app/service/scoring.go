package service

import (
	"math"
	"sync"

	"alpha_radar/internal/config"
	"alpha_radar/internal/domain/entity"
)

const (
	microcapCeiling  = 200_000.0
	valuationCeiling = 15_000_000.0
)

// ScoreFDV scores the fully-diluted valuation. Sub-200k tokens get a flat
// 0.1, the 200k..15M band ramps from about 0.6 to 1.0, and anything larger
// is flattened to 0.3.
func ScoreFDV(fdv *float64) float64 {
	if fdv == nil || *fdv <= 0 {
		return 0
	}
	f := *fdv
	switch {
	case f < microcapCeiling:
		return 0.1
	case f <= valuationCeiling:
		return 0.6 + (f/valuationCeiling)*0.4
	default:
		return 0.3
	}
}

func ScoreLiquidity(liq *float64) float64 {
	if liq == nil {
		return 0
	}
	switch l := *liq; {
	case l < 20_000:
		return 0
	case l < 50_000:
		return 0.4
	case l < 200_000:
		return 0.7
	default:
		return 1.0
	}
}

func ScoreVolume(vol *float64) float64 {
	if vol == nil {
		return 0
	}
	switch v := *vol; {
	case v < 30_000:
		return 0.2
	case v < 100_000:
		return 0.5
	case v < 500_000:
		return 0.75
	default:
		return 1.0
	}
}

// ScoreHolderDistribution rewards low concentration in the top wallets.
// Unknown distribution is neutral.
func ScoreHolderDistribution(ratio *float64) float64 {
	if ratio == nil {
		return 0.5
	}
	switch r := *ratio; {
	case r < 0.10:
		return 1.0
	case r < 0.30:
		return 0.7
	case r < 0.50:
		return 0.4
	default:
		return 0.1
	}
}

var riskPenalties = []struct {
	flag    string
	penalty float64
}{
	{entity.RiskHoneypot, 0.9},
	{entity.RiskUnlockedLiquidity, 0.5},
	{entity.RiskRecentDeploy, 0.3},
	{entity.RiskDevWalletHigh, 0.4},
}

// ScoreRisk starts at 1 and subtracts a penalty per raised flag, floored at 0.
func ScoreRisk(flags map[string]bool) float64 {
	score := 1.0
	for _, p := range riskPenalties {
		if flags[p.flag] {
			score -= p.penalty
		}
	}
	return math.Max(score, 0)
}

// ComputeTotalScore combines the sub-scores with w and scales to 0..100,
// rounded to two decimals. The sum is not normalized by the weight total.
func ComputeTotalScore(c entity.Candidate, w config.ScoringWeights) float64 {
	total := ScoreFDV(c.FdvUSD)*w.Marketcap +
		ScoreLiquidity(c.LiquidityUSD)*w.Liquidity +
		ScoreVolume(c.Volume24h)*w.Volume +
		ScoreHolderDistribution(c.HolderRatio)*w.HolderDistribution +
		ScoreRisk(c.RiskFlags)*w.Risk
	return roundTo(total*100, 2)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Scorer validates the configured weights on first use and scores candidates.
type Scorer struct {
	cfg     config.ScoringConfig
	once    sync.Once
	weights config.ScoringWeights
	err     error
}

// NewScorer creates a scorer over an unvalidated scoring document.
func NewScorer(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Weights returns the resolved weights or the *entity.ConfigError found on first use.
func (s *Scorer) Weights() (config.ScoringWeights, error) {
	s.once.Do(func() {
		s.weights, s.err = s.cfg.ResolveWeights()
	})
	return s.weights, s.err
}

// ScoreAll scores every candidate in order. The input slice is not modified.
func (s *Scorer) ScoreAll(candidates []entity.Candidate) ([]entity.ScoredCandidate, error) {
	w, err := s.Weights()
	if err != nil {
		return nil, err
	}
	scored := make([]entity.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, entity.ScoredCandidate{Candidate: c, Score: ComputeTotalScore(c, w)})
	}
	return scored, nil
}
