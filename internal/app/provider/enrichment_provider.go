package provider

import (
	"strings"
	"sync"

	"alpha_radar/internal/app/port"
	"alpha_radar/internal/domain/entity"
	"alpha_radar/internal/infrastructure/tokenloader"
)

type enrichmentProviderImpl struct {
	dir      string
	registry port.ChainRegistry
	logger   port.Logger

	once  sync.Once
	index tokenloader.EnrichmentIndex
}

// NewEnrichmentProvider creates a provider that loads enrichment files lazily, once.
func NewEnrichmentProvider(dir string, registry port.ChainRegistry, logger port.Logger) port.EnrichmentProvider {
	return &enrichmentProviderImpl{dir: dir, registry: registry, logger: logger}
}

// GetEnrichment implements port.EnrichmentProvider.
func (p *enrichmentProviderImpl) GetEnrichment(chainIdentifier, tokenAddress string) (entity.TokenEnrichment, bool) {
	p.once.Do(p.load)
	byAddress, ok := p.index[strings.ToLower(chainIdentifier)]
	if !ok {
		return entity.TokenEnrichment{}, false
	}
	e, ok := byAddress[p.registry.NormalizeAddress(chainIdentifier, tokenAddress)]
	return e, ok
}

func (p *enrichmentProviderImpl) load() {
	p.logger.Debug("Loading enrichment from disk", "directory", p.dir)
	index, err := tokenloader.LoadEnrichment(p.dir, p.registry, p.logger)
	if err != nil {
		p.logger.Error("Failed to load enrichment, continuing without it", "directory", p.dir, "error", err)
		index = tokenloader.EnrichmentIndex{}
	}
	p.index = index
}
