package entity

// TokenEnrichment holds pre-computed holder and risk data for one token.
// It is supplied from local files, never derived on-chain.
type TokenEnrichment struct {
	Address     string          `json:"address"`
	HolderRatio *float64        `json:"holder_ratio,omitempty"`
	RiskFlags   map[string]bool `json:"risk_flags,omitempty"`
}
