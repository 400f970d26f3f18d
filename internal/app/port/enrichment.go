package port

import "alpha_radar/internal/domain/entity"

// EnrichmentProvider supplies optional holder and risk data per token.
type EnrichmentProvider interface {
	// GetEnrichment returns data for a token on a chain, if known.
	GetEnrichment(chainIdentifier, tokenAddress string) (entity.TokenEnrichment, bool)
}
