package port

import (
	"context"

	"alpha_radar/internal/domain/entity"
	dex_types "alpha_radar/internal/entity"
)

// PairSource returns raw pair records for a free-text query.
// Implementations must never panic on malformed payloads; failures come back as *entity.FetchError.
type PairSource interface {
	SearchPairs(ctx context.Context, query string) ([]dex_types.RawPair, error)
}

// ChainRegistry resolves DEX Screener chain identifiers.
type ChainRegistry interface {
	GetAllChainDefinitions() []entity.ChainDefinition
	GetChainDefinition(identifier string) (entity.ChainDefinition, bool)
	// NormalizeAddress returns a canonical form of a token address for the given chain.
	NormalizeAddress(chainIdentifier, address string) string
}
