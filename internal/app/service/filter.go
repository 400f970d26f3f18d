package service

import (
	"alpha_radar/internal/config"
	"alpha_radar/internal/domain/entity"
)

// ApplyFilters reports whether a candidate passes every threshold.
// Absent metrics compare as zero; an absent chain never passes.
func ApplyFilters(c entity.Candidate, t config.FilterThresholds) bool {
	fdv := entity.ValueOrZero(c.FdvUSD)
	if fdv < t.MarketcapMin || fdv > t.MarketcapMax {
		return false
	}
	if entity.ValueOrZero(c.LiquidityUSD) < t.LiquidityMin {
		return false
	}
	if entity.ValueOrZero(c.Volume24h) < t.VolumeMin {
		return false
	}
	if c.ChainID == nil {
		return false
	}
	_, ok := t.Chains[*c.ChainID]
	return ok
}
