package service

import (
	"alpha_radar/internal/config"
	"alpha_radar/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func scenarioWeights() config.ScoringWeights {
	return config.ScoringWeights{
		Marketcap:          0.25,
		Liquidity:          0.25,
		Volume:             0.2,
		HolderDistribution: 0.15,
		Risk:               0.15,
	}
}

func scenarioScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{Weights: map[string]float64{
		config.WeightMarketcap:          0.25,
		config.WeightLiquidity:          0.25,
		config.WeightVolume:             0.2,
		config.WeightHolderDistribution: 0.15,
		config.WeightRisk:               0.15,
	}}
}

func scored(symbol string, score float64) entity.ScoredCandidate {
	return entity.ScoredCandidate{Candidate: entity.Candidate{TokenSymbol: str(symbol)}, Score: score}
}
