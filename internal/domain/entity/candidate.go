package entity

import "time"

// Candidate is a normalized trading pair. Numeric fields are either a finite
// non-negative value or nil when the source did not provide them.
type Candidate struct {
	TokenSymbol  *string         `json:"token_symbol"`
	TokenName    *string         `json:"token_name"`
	TokenAddress *string         `json:"token_address,omitempty"`
	ChainID      *string         `json:"chain_id"`
	PairURL      *string         `json:"pair_url"`
	PriceUSD     *float64        `json:"price_usd"`
	Volume24h    *float64        `json:"volume_24h"`
	LiquidityUSD *float64        `json:"liquidity_usd"`
	FdvUSD       *float64        `json:"fdv_usd"`
	CreatedAt    *time.Time      `json:"created_at"`
	HolderRatio  *float64        `json:"holder_ratio"`
	RiskFlags    map[string]bool `json:"risk_flags"`
}

// Known risk flag names.
const (
	RiskHoneypot          = "honeypot"
	RiskUnlockedLiquidity = "unlocked_liquidity"
	RiskRecentDeploy      = "recent_deploy"
	RiskDevWalletHigh     = "dev_wallet_high"
)

// Symbol returns the token symbol or "?" when unknown.
func (c Candidate) Symbol() string {
	if c.TokenSymbol == nil {
		return "?"
	}
	return *c.TokenSymbol
}

// Chain returns the chain identifier or an empty string.
func (c Candidate) Chain() string {
	if c.ChainID == nil {
		return ""
	}
	return *c.ChainID
}

// HasRisk reports whether the named risk flag is set.
func (c Candidate) HasRisk(name string) bool {
	return c.RiskFlags[name]
}

// ScoredCandidate is a Candidate with its composite alpha score in [0, 100].
type ScoredCandidate struct {
	Candidate
	Score float64 `json:"score"`
}

// ValueOrZero dereferences an optional metric, treating absence as zero.
func ValueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
