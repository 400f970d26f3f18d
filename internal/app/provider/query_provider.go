package provider

import (
	"errors"
	"os"

	"alpha_radar/internal/app/port"
	"alpha_radar/internal/infrastructure/queryloader"
	"alpha_radar/internal/pkg/utils"
)

type queryProviderImpl struct {
	configured []string
	filePath   string
	logger     port.Logger
}

// NewQueryProvider combines the terms from sources.yaml with an optional query file.
func NewQueryProvider(configured []string, filePath string, logger port.Logger) port.QueryProvider {
	return &queryProviderImpl{configured: configured, filePath: filePath, logger: logger}
}

// GetQueries returns configured terms followed by file terms, in order.
func (p *queryProviderImpl) GetQueries() ([]string, error) {
	queries := utils.CleanTerms(p.configured)
	if p.filePath == "" {
		return queries, nil
	}

	extra, err := queryloader.LoadQueries(p.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			p.logger.Debug("Query file not found, using configured queries only", "path", p.filePath)
			return queries, nil
		}
		p.logger.Error("Failed to load queries", "path", p.filePath, "error", err)
		return nil, err
	}

	p.logger.Debug("Queries loaded from file", "count", len(extra), "path", p.filePath)
	return append(queries, extra...), nil
}
