package tokenloader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"alpha_radar/internal/app/port"
	"alpha_radar/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultEnrichmentDir holds one <chain>.json file per chain.
const DefaultEnrichmentDir = "data/enrichment"

// EnrichmentIndex maps chain identifier -> normalized token address -> enrichment.
type EnrichmentIndex map[string]map[string]entity.TokenEnrichment

// LoadEnrichment scans dir for <chain>.json files, each holding a JSON array of
// entity.TokenEnrichment. A missing directory is not an error: enrichment is
// optional input. Unreadable or malformed files are skipped with a warning.
func LoadEnrichment(dir string, registry port.ChainRegistry, logger port.Logger) (EnrichmentIndex, error) {
	index := make(EnrichmentIndex)

	files, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("Enrichment directory not found, holder and risk data will be absent", "path", dir)
			return index, nil
		}
		return nil, fmt.Errorf("failed to read enrichment directory %s: %w", dir, err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".json") {
			continue
		}
		chain := strings.ToLower(strings.TrimSuffix(file.Name(), filepath.Ext(file.Name())))

		filePath := filepath.Join(dir, file.Name())
		data, err := os.ReadFile(filePath)
		if err != nil {
			logger.Warn("Failed to read enrichment file, skipping file.", "path", filePath, "error", err)
			continue
		}

		var records []entity.TokenEnrichment
		if err := json.Unmarshal(data, &records); err != nil {
			logger.Warn("Failed to unmarshal enrichment file, skipping file.", "path", filePath, "error", err)
			continue
		}

		byAddress := make(map[string]entity.TokenEnrichment, len(records))
		for _, rec := range records {
			if strings.TrimSpace(rec.Address) == "" {
				logger.Warn("Enrichment record without address, skipping record.", "path", filePath)
				continue
			}
			if rec.HolderRatio != nil && (*rec.HolderRatio < 0 || *rec.HolderRatio > 1) {
				logger.Warn("Holder ratio out of [0,1], ignoring it.", "path", filePath, "address", rec.Address, "holder_ratio", *rec.HolderRatio)
				rec.HolderRatio = nil
			}
			byAddress[registry.NormalizeAddress(chain, rec.Address)] = rec
		}

		index[chain] = byAddress
		logger.Info("Loaded enrichment for chain", "chain", chain, "file", file.Name(), "count", len(byAddress))
	}
	return index, nil
}
