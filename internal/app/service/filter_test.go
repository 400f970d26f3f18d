package service

import (
	"testing"

	"alpha_radar/internal/config"
	"alpha_radar/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func testThresholds() config.FilterThresholds {
	return config.FilterThresholds{
		MarketcapMin: 200_000,
		MarketcapMax: 15_000_000,
		LiquidityMin: 20_000,
		VolumeMin:    30_000,
		Chains:       map[string]struct{}{"solana": {}, "base": {}},
	}
}

func passingCandidate() entity.Candidate {
	return entity.Candidate{
		ChainID:      str("solana"),
		FdvUSD:       f64(1_000_000),
		LiquidityUSD: f64(50_000),
		Volume24h:    f64(100_000),
	}
}

func TestApplyFilters_Passes(t *testing.T) {
	assert.True(t, ApplyFilters(passingCandidate(), testThresholds()))
}

func TestApplyFilters_BoundsAreInclusive(t *testing.T) {
	c := passingCandidate()
	c.FdvUSD = f64(15_000_000)
	c.LiquidityUSD = f64(20_000)
	c.Volume24h = f64(30_000)
	assert.True(t, ApplyFilters(c, testThresholds()))

	c.FdvUSD = f64(200_000)
	assert.True(t, ApplyFilters(c, testThresholds()))
}

func TestApplyFilters_Rejects(t *testing.T) {
	cases := map[string]func(c *entity.Candidate){
		"fdv above max":      func(c *entity.Candidate) { c.FdvUSD = f64(20_000_000) },
		"fdv below min":      func(c *entity.Candidate) { c.FdvUSD = f64(199_999) },
		"fdv absent":         func(c *entity.Candidate) { c.FdvUSD = nil },
		"liquidity too low":  func(c *entity.Candidate) { c.LiquidityUSD = f64(19_999) },
		"liquidity absent":   func(c *entity.Candidate) { c.LiquidityUSD = nil },
		"volume too low":     func(c *entity.Candidate) { c.Volume24h = f64(1) },
		"chain absent":       func(c *entity.Candidate) { c.ChainID = nil },
		"chain not allowed":  func(c *entity.Candidate) { c.ChainID = str("ethereum") },
		"chain case differs": func(c *entity.Candidate) { c.ChainID = str("Solana") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := passingCandidate()
			mutate(&c)
			assert.False(t, ApplyFilters(c, testThresholds()))
		})
	}
}

func TestApplyFilters_ZeroMinimumAcceptsAbsentMetrics(t *testing.T) {
	th := testThresholds()
	th.MarketcapMin = 0
	th.LiquidityMin = 0
	th.VolumeMin = 0
	assert.True(t, ApplyFilters(entity.Candidate{ChainID: str("base")}, th))
}
