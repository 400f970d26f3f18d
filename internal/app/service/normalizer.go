package service

import (
	"time"

	"alpha_radar/internal/domain/entity"
	dex_types "alpha_radar/internal/entity"
)

// NormalizePair maps a raw DEX Screener pair into a Candidate.
// It never fails: missing or mistyped fields become nil.
func NormalizePair(raw dex_types.RawPair) entity.Candidate {
	c := entity.Candidate{
		TokenSymbol:  optString(raw, "baseToken", "symbol"),
		TokenName:    optString(raw, "baseToken", "name"),
		TokenAddress: optString(raw, "baseToken", "address"),
		ChainID:      optString(raw, "chainId"),
		PairURL:      optString(raw, "url"),
		PriceUSD:     optNumber(raw, "priceUsd"),
		Volume24h:    optNumber(raw, "volume", "h24"),
		LiquidityUSD: optNumber(raw, "liquidity", "usd"),
		FdvUSD:       optNumber(raw, "fdv"),
	}

	if ms, ok := raw.Number("pairCreatedAt"); ok {
		t := time.UnixMilli(int64(ms)).UTC()
		c.CreatedAt = &t
	}
	return c
}

func optString(raw dex_types.RawPair, path ...string) *string {
	s, ok := raw.String(path...)
	if !ok {
		return nil
	}
	return &s
}

func optNumber(raw dex_types.RawPair, path ...string) *float64 {
	f, ok := raw.Number(path...)
	if !ok {
		return nil
	}
	return &f
}
