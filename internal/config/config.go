package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"alpha_radar/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Rule document file names inside the config directory.
const (
	FiltersFile = "filters.yaml"
	ScoringFile = "scoring.yaml"
	SourcesFile = "sources.yaml"
)

// Weight keys expected under "weights:" in scoring.yaml.
const (
	WeightMarketcap          = "marketcap_score"
	WeightLiquidity          = "liquidity_score"
	WeightVolume             = "volume_score"
	WeightHolderDistribution = "holder_distribution_score"
	WeightRisk               = "risk_score"
)

// DefaultQueries is used when sources.yaml does not list any search terms.
var DefaultQueries = []string{"ai", "agent", "meme", "sol", "base", "layer2", "new", "proto", "zk"}

// Rules holds the three rule documents used by a scan.
type Rules struct {
	Filters FilterConfig
	Scoring ScoringConfig
	Sources SourcesConfig
}

// GetRules lets *Rules satisfy the rules provider port directly.
func (r *Rules) GetRules() *Rules { return r }

// MinThreshold is a lower bound in USD. A nil MinUSD means the key is missing.
type MinThreshold struct {
	MinUSD *float64 `yaml:"min_usd"`
}

// RangeThreshold is an inclusive USD range.
type RangeThreshold struct {
	MinUSD *float64 `yaml:"min_usd"`
	MaxUSD *float64 `yaml:"max_usd"`
}

// FilterConfig mirrors filters.yaml.
type FilterConfig struct {
	Marketcap       RangeThreshold `yaml:"marketcap"`
	Liquidity       MinThreshold   `yaml:"liquidity"`
	Volume24h       MinThreshold   `yaml:"volume_24h"`
	ChainsAllowlist []string       `yaml:"chains_allowlist"`
}

// FilterThresholds is a validated FilterConfig with every key present.
type FilterThresholds struct {
	MarketcapMin float64
	MarketcapMax float64
	LiquidityMin float64
	VolumeMin    float64
	Chains       map[string]struct{}
}

// Thresholds validates the document and returns resolved thresholds.
// Every missing key is reported in a single *entity.ConfigError.
func (f FilterConfig) Thresholds() (FilterThresholds, error) {
	var missing []string
	if f.Marketcap.MinUSD == nil {
		missing = append(missing, "marketcap.min_usd")
	}
	if f.Marketcap.MaxUSD == nil {
		missing = append(missing, "marketcap.max_usd")
	}
	if f.Liquidity.MinUSD == nil {
		missing = append(missing, "liquidity.min_usd")
	}
	if f.Volume24h.MinUSD == nil {
		missing = append(missing, "volume_24h.min_usd")
	}
	if f.ChainsAllowlist == nil {
		missing = append(missing, "chains_allowlist")
	}
	if len(missing) > 0 {
		return FilterThresholds{}, &entity.ConfigError{
			Document: FiltersFile,
			Key:      joinKeys(missing),
			Err:      entity.ErrMissingKey,
		}
	}
	if *f.Marketcap.MinUSD > *f.Marketcap.MaxUSD {
		return FilterThresholds{}, &entity.ConfigError{
			Document: FiltersFile,
			Key:      "marketcap",
			Err:      fmt.Errorf("min_usd %.2f is greater than max_usd %.2f", *f.Marketcap.MinUSD, *f.Marketcap.MaxUSD),
		}
	}

	chains := make(map[string]struct{}, len(f.ChainsAllowlist))
	for _, c := range f.ChainsAllowlist {
		chains[c] = struct{}{}
	}
	return FilterThresholds{
		MarketcapMin: *f.Marketcap.MinUSD,
		MarketcapMax: *f.Marketcap.MaxUSD,
		LiquidityMin: *f.Liquidity.MinUSD,
		VolumeMin:    *f.Volume24h.MinUSD,
		Chains:       chains,
	}, nil
}

// ScoringConfig mirrors scoring.yaml.
type ScoringConfig struct {
	Weights map[string]float64 `yaml:"weights"`
}

// ScoringWeights is a validated set of the five sub-score weights.
// Weights are not required to sum to one.
type ScoringWeights struct {
	Marketcap          float64
	Liquidity          float64
	Volume             float64
	HolderDistribution float64
	Risk               float64
}

// ResolveWeights returns the five weights or a *entity.ConfigError naming the missing keys.
func (s ScoringConfig) ResolveWeights() (ScoringWeights, error) {
	var missing []string
	get := func(key string) float64 {
		v, ok := s.Weights[key]
		if !ok {
			missing = append(missing, "weights."+key)
		}
		return v
	}

	w := ScoringWeights{
		Marketcap:          get(WeightMarketcap),
		Liquidity:          get(WeightLiquidity),
		Volume:             get(WeightVolume),
		HolderDistribution: get(WeightHolderDistribution),
		Risk:               get(WeightRisk),
	}
	if len(missing) > 0 {
		return ScoringWeights{}, &entity.ConfigError{
			Document: ScoringFile,
			Key:      joinKeys(missing),
			Err:      entity.ErrMissingKey,
		}
	}
	return w, nil
}

// SourcesConfig mirrors sources.yaml.
type SourcesConfig struct {
	DEXScreener DEXScreenerSource `yaml:"dexscreener"`
	Scan        ScanSource        `yaml:"scan"`
}

// DEXScreenerSource lists the search terms and endpoint overrides.
type DEXScreenerSource struct {
	BaseURL        string   `yaml:"base_url"`
	Queries        []string `yaml:"queries"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// ScanSource holds run-level settings that belong with the sources.
type ScanSource struct {
	TopN int `yaml:"top_n"`
}

// LoadRules loads filters.yaml, scoring.yaml and sources.yaml from dir.
// A missing document yields an empty configuration and a warning. Filter
// thresholds are validated here so a bad document fails before any network call.
// Weights are validated later, when scoring first runs.
func LoadRules(dir string) (*Rules, error) {
	logrus.Infof("Loading rule documents from directory: %s", dir)

	var rules Rules
	if err := loadDocument(filepath.Join(dir, FiltersFile), &rules.Filters); err != nil {
		return nil, err
	}
	if err := loadDocument(filepath.Join(dir, ScoringFile), &rules.Scoring); err != nil {
		return nil, err
	}
	if err := loadDocument(filepath.Join(dir, SourcesFile), &rules.Sources); err != nil {
		return nil, err
	}

	if _, err := rules.Filters.Thresholds(); err != nil {
		logrus.Errorf("Filter thresholds are invalid: %v", err)
		return nil, err
	}

	if len(rules.Sources.DEXScreener.Queries) == 0 {
		rules.Sources.DEXScreener.Queries = append([]string(nil), DefaultQueries...)
		logrus.Infof("No queries in %s, defaulting to %v", SourcesFile, rules.Sources.DEXScreener.Queries)
	}
	if rules.Sources.Scan.TopN <= 0 {
		rules.Sources.Scan.TopN = 5
		logrus.Infof("scan.top_n not set, defaulting to %d", rules.Sources.Scan.TopN)
	}

	logrus.Info("Rule documents loaded successfully.")
	return &rules, nil
}

func loadDocument(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logrus.Warnf("Config document %s not found, using empty configuration", path)
			return nil
		}
		logrus.Errorf("Failed to read config document %s: %v", path, err)
		return &entity.ConfigError{Document: filepath.Base(path), Err: err}
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		logrus.Errorf("Failed to unmarshal config document %s: %v", path, err)
		return &entity.ConfigError{Document: filepath.Base(path), Err: fmt.Errorf("unmarshal: %w", err)}
	}
	return nil
}

func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}
