package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"alpha_radar/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFilters = `
marketcap:
  min_usd: 200000
  max_usd: 15000000
liquidity:
  min_usd: 20000
volume_24h:
  min_usd: 30000
chains_allowlist: [solana, base]
`

const validScoring = `
weights:
  marketcap_score: 0.25
  liquidity_score: 0.25
  volume_score: 0.2
  holder_distribution_score: 0.15
  risk_score: 0.15
`

func writeRules(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadRules_Valid(t *testing.T) {
	dir := writeRules(t, map[string]string{
		FiltersFile: validFilters,
		ScoringFile: validScoring,
		SourcesFile: "dexscreener:\n  queries: [ai, depin]\nscan:\n  top_n: 3\n",
	})

	rules, err := LoadRules(dir)
	require.NoError(t, err)

	th, err := rules.Filters.Thresholds()
	require.NoError(t, err)
	assert.Equal(t, 200000.0, th.MarketcapMin)
	assert.Equal(t, 15000000.0, th.MarketcapMax)
	assert.Equal(t, 20000.0, th.LiquidityMin)
	assert.Equal(t, 30000.0, th.VolumeMin)
	assert.Contains(t, th.Chains, "solana")
	assert.Contains(t, th.Chains, "base")

	w, err := rules.Scoring.ResolveWeights()
	require.NoError(t, err)
	assert.Equal(t, 0.25, w.Marketcap)
	assert.Equal(t, 0.15, w.Risk)

	assert.Equal(t, []string{"ai", "depin"}, rules.Sources.DEXScreener.Queries)
	assert.Equal(t, 3, rules.Sources.Scan.TopN)
	assert.Same(t, rules, rules.GetRules())
}

func TestLoadRules_SourcesDefaults(t *testing.T) {
	dir := writeRules(t, map[string]string{FiltersFile: validFilters})

	rules, err := LoadRules(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultQueries, rules.Sources.DEXScreener.Queries)
	assert.Equal(t, 5, rules.Sources.Scan.TopN)
}

func TestLoadRules_MissingFiltersDocumentIsConfigError(t *testing.T) {
	_, err := LoadRules(t.TempDir())
	require.Error(t, err)

	var cfgErr *entity.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, FiltersFile, cfgErr.Document)
	assert.Contains(t, cfgErr.Key, "marketcap.min_usd")
	assert.Contains(t, cfgErr.Key, "chains_allowlist")
	assert.ErrorIs(t, err, entity.ErrMissingKey)
}

func TestLoadRules_MissingScoringIsDeferred(t *testing.T) {
	dir := writeRules(t, map[string]string{FiltersFile: validFilters})

	rules, err := LoadRules(dir)
	require.NoError(t, err)

	_, err = rules.Scoring.ResolveWeights()
	require.Error(t, err)
	assert.True(t, entity.IsConfigError(err))
}

func TestLoadRules_MalformedYAMLIsConfigError(t *testing.T) {
	dir := writeRules(t, map[string]string{
		FiltersFile: validFilters,
		ScoringFile: "weights: [unterminated",
	})

	_, err := LoadRules(dir)
	require.Error(t, err)
	var cfgErr *entity.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ScoringFile, cfgErr.Document)
}

func TestFilterConfig_ThresholdsRejectsInvertedRange(t *testing.T) {
	lo, hi, zero := 10.0, 5.0, 0.0
	f := FilterConfig{
		Marketcap:       RangeThreshold{MinUSD: &lo, MaxUSD: &hi},
		Liquidity:       MinThreshold{MinUSD: &zero},
		Volume24h:       MinThreshold{MinUSD: &zero},
		ChainsAllowlist: []string{},
	}

	_, err := f.Thresholds()
	var cfgErr *entity.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "marketcap", cfgErr.Key)
}

func TestFilterConfig_EmptyAllowlistIsPresent(t *testing.T) {
	zero := 0.0
	f := FilterConfig{
		Marketcap:       RangeThreshold{MinUSD: &zero, MaxUSD: &zero},
		Liquidity:       MinThreshold{MinUSD: &zero},
		Volume24h:       MinThreshold{MinUSD: &zero},
		ChainsAllowlist: []string{},
	}

	th, err := f.Thresholds()
	require.NoError(t, err)
	assert.Empty(t, th.Chains)
}

func TestScoringConfig_ResolveWeightsNamesEveryMissingKey(t *testing.T) {
	s := ScoringConfig{Weights: map[string]float64{WeightMarketcap: 0.5, WeightVolume: 0}}

	_, err := s.ResolveWeights()
	var cfgErr *entity.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "weights.liquidity_score, weights.holder_distribution_score, weights.risk_score", cfgErr.Key)
}
