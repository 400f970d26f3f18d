package definition

import (
	"fmt"
	"strings"

	"alpha_radar/internal/app/port"
	"alpha_radar/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// Hardcoded chain definitions, keyed by DEX Screener chainId.
var (
	Ethereum  = entity.ChainDefinition{Identifier: "ethereum", Name: "Ethereum Mainnet", EVM: true, EVMChainID: 1, BlockExplorerURL: "https://etherscan.io"}
	BSC       = entity.ChainDefinition{Identifier: "bsc", Name: "BNB Smart Chain", EVM: true, EVMChainID: 56, BlockExplorerURL: "https://bscscan.com"}
	Polygon   = entity.ChainDefinition{Identifier: "polygon", Name: "Polygon PoS", EVM: true, EVMChainID: 137, BlockExplorerURL: "https://polygonscan.com"}
	Arbitrum  = entity.ChainDefinition{Identifier: "arbitrum", Name: "Arbitrum One", EVM: true, EVMChainID: 42161, BlockExplorerURL: "https://arbiscan.io"}
	Avalanche = entity.ChainDefinition{Identifier: "avalanche", Name: "Avalanche C-Chain", EVM: true, EVMChainID: 43114, BlockExplorerURL: "https://snowtrace.io"}
	Base      = entity.ChainDefinition{Identifier: "base", Name: "Base Mainnet", EVM: true, EVMChainID: 8453, BlockExplorerURL: "https://basescan.org"}
	Blast     = entity.ChainDefinition{Identifier: "blast", Name: "Blast Mainnet", EVM: true, EVMChainID: 81457, BlockExplorerURL: "https://blastscan.io"}
	Linea     = entity.ChainDefinition{Identifier: "linea", Name: "Linea Mainnet", EVM: true, EVMChainID: 59144, BlockExplorerURL: "https://lineascan.build"}
	Optimism  = entity.ChainDefinition{Identifier: "optimism", Name: "OP Mainnet", EVM: true, EVMChainID: 10, BlockExplorerURL: "https://optimistic.etherscan.io"}
	Scroll    = entity.ChainDefinition{Identifier: "scroll", Name: "Scroll", EVM: true, EVMChainID: 534352, BlockExplorerURL: "https://scrollscan.com"}
	ZkSync    = entity.ChainDefinition{Identifier: "zksync", Name: "zkSync Era Mainnet", EVM: true, EVMChainID: 324, BlockExplorerURL: "https://explorer.zksync.io"}
	Solana    = entity.ChainDefinition{Identifier: "solana", Name: "Solana", BlockExplorerURL: "https://solscan.io"}
	Sui       = entity.ChainDefinition{Identifier: "sui", Name: "Sui", BlockExplorerURL: "https://suiscan.xyz"}
	Ton       = entity.ChainDefinition{Identifier: "ton", Name: "TON", BlockExplorerURL: "https://tonviewer.com"}
)

var allKnownDefinitions = map[string]entity.ChainDefinition{
	Ethereum.Identifier:  Ethereum,
	BSC.Identifier:       BSC,
	Polygon.Identifier:   Polygon,
	Arbitrum.Identifier:  Arbitrum,
	Avalanche.Identifier: Avalanche,
	Base.Identifier:      Base,
	Blast.Identifier:     Blast,
	Linea.Identifier:     Linea,
	Optimism.Identifier:  Optimism,
	Scroll.Identifier:    Scroll,
	ZkSync.Identifier:    ZkSync,
	Solana.Identifier:    Solana,
	Sui.Identifier:       Sui,
	Ton.Identifier:       Ton,
}

// ChainRegistry implements port.ChainRegistry for the chains in the allowlist.
type ChainRegistry struct {
	logger      port.Logger
	activeChain []entity.ChainDefinition
	byID        map[string]entity.ChainDefinition
}

// NewChainRegistry activates every allowlisted chain. Unknown identifiers are
// still activated as non-EVM chains so the allowlist stays authoritative.
func NewChainRegistry(log port.Logger, allowlist []string) *ChainRegistry {
	r := &ChainRegistry{
		logger: log,
		byID:   make(map[string]entity.ChainDefinition, len(allowlist)),
	}

	for _, raw := range allowlist {
		identifier := strings.ToLower(strings.TrimSpace(raw))
		if identifier == "" {
			continue
		}
		if _, dup := r.byID[identifier]; dup {
			r.logger.Warn(fmt.Sprintf("Duplicate chain in allowlist: %s. Skipping.", identifier))
			continue
		}
		def, ok := allKnownDefinitions[identifier]
		if !ok {
			r.logger.Warn(fmt.Sprintf("Chain '%s' has no hardcoded definition, treating it as non-EVM.", identifier))
			def = entity.ChainDefinition{Identifier: identifier, Name: identifier}
		}
		r.byID[identifier] = def
		r.activeChain = append(r.activeChain, def)
	}

	if len(r.activeChain) == 0 {
		r.logger.Warn("Chain allowlist is empty. No candidate will pass the chain filter.")
	} else {
		r.logger.Info(fmt.Sprintf("ChainRegistry initialized. Active chains: %d", len(r.activeChain)))
		for _, def := range r.activeChain {
			r.logger.Debug(fmt.Sprintf("  - Active chain: %s (ID: %s, EVM: %t)", def.Name, def.Identifier, def.EVM))
		}
	}
	return r
}

// GetAllChainDefinitions returns a copy of the active chains in allowlist order.
func (r *ChainRegistry) GetAllChainDefinitions() []entity.ChainDefinition {
	if r == nil {
		return []entity.ChainDefinition{}
	}
	defs := make([]entity.ChainDefinition, len(r.activeChain))
	copy(defs, r.activeChain)
	return defs
}

// GetChainDefinition returns an active chain, falling back to the hardcoded set.
func (r *ChainRegistry) GetChainDefinition(identifier string) (entity.ChainDefinition, bool) {
	if r == nil {
		return entity.ChainDefinition{}, false
	}
	identifier = strings.ToLower(identifier)
	if def, ok := r.byID[identifier]; ok {
		return def, true
	}
	def, ok := allKnownDefinitions[identifier]
	return def, ok
}

// NormalizeAddress checksums EVM addresses so lookups ignore case.
// Other chains use case-sensitive encodings and are returned trimmed only.
func (r *ChainRegistry) NormalizeAddress(chainIdentifier, address string) string {
	address = strings.TrimSpace(address)
	def, ok := r.GetChainDefinition(chainIdentifier)
	if ok && def.EVM && common.IsHexAddress(address) {
		return common.HexToAddress(address).Hex()
	}
	return address
}
