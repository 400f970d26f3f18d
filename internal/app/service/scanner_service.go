package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"alpha_radar/internal/app/port"
	"alpha_radar/internal/config"
	"alpha_radar/internal/domain/entity"
	dex_types "alpha_radar/internal/entity"
	"alpha_radar/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrency = 4

// ScannerOptions tunes the scanner. Zero values fall back to defaults.
type ScannerOptions struct {
	MaxConcurrency int
	// QueryCacheTTL keeps raw results per query between runs; zero disables caching.
	QueryCacheTTL time.Duration
	// TopN overrides scan.top_n from sources.yaml when positive.
	TopN int
}

// scannerServiceImpl implements port.ScannerService.
type scannerServiceImpl struct {
	source     port.PairSource
	queries    port.QueryProvider
	enrichment port.EnrichmentProvider
	logger     port.Logger

	thresholds config.FilterThresholds
	scorer     *Scorer
	topN       int

	maxConcurrency int
	queryCache     *cache.Cache
	queryCacheTTL  time.Duration

	mu   sync.RWMutex
	last *entity.ScanResult
	now  func() time.Time
}

// NewScannerService resolves the filter thresholds up front, so a broken
// filters document fails here with a *entity.ConfigError before any fetch.
func NewScannerService(
	source port.PairSource,
	queries port.QueryProvider,
	rules port.RulesProvider,
	enrichment port.EnrichmentProvider,
	logger port.Logger,
	opts ScannerOptions,
) (port.ScannerService, error) {
	r := rules.GetRules()
	thresholds, err := r.Filters.Thresholds()
	if err != nil {
		return nil, err
	}

	topN := r.Sources.Scan.TopN
	if opts.TopN > 0 {
		topN = opts.TopN
	}
	maxConcurrency := opts.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}

	s := &scannerServiceImpl{
		source:         source,
		queries:        queries,
		enrichment:     enrichment,
		logger:         logger,
		thresholds:     thresholds,
		scorer:         NewScorer(r.Scoring),
		topN:           topN,
		maxConcurrency: maxConcurrency,
		queryCacheTTL:  opts.QueryCacheTTL,
		now:            time.Now,
	}
	if opts.QueryCacheTTL > 0 {
		s.queryCache = cache.New(opts.QueryCacheTTL, 2*opts.QueryCacheTTL)
	}
	logger.Info("ScannerService initialized", "top_n", topN, "max_concurrency", maxConcurrency, "query_cache_ttl", opts.QueryCacheTTL)
	return s, nil
}

// Scan implements port.ScannerService.
func (s *scannerServiceImpl) Scan(ctx context.Context) (*entity.ScanResult, error) {
	started := s.now()
	queries, err := s.queries.GetQueries()
	if err != nil {
		return nil, &entity.ConfigError{Document: "queries", Err: err}
	}

	result := &entity.ScanResult{
		RunID:     uuid.NewString(),
		StartedAt: started.UTC(),
		Queries:   queries,
	}
	s.logger.Info("Starting alpha scan", "run_id", result.RunID, "queries", len(queries))

	// Each worker owns one slot; slots are merged in query order after Wait.
	perQuery := make([][]entity.Candidate, len(queries))
	fetched := make([]int, len(queries))
	failures := make([]error, len(queries))

	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)
	for i, q := range queries {
		g.Go(func() error {
			raw, err := s.fetch(ctx, q)
			if err != nil {
				failures[i] = err
				return nil
			}
			fetched[i] = len(raw)
			perQuery[i] = s.filterPairs(raw)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan %s interrupted: %w", result.RunID, err)
	}

	var candidates []entity.Candidate
	for i, q := range queries {
		if failures[i] != nil {
			s.logger.Warn("Skipping query after fetch failure", "query", q, "error", failures[i])
			metrics.FetchFailuresTotal.WithLabelValues(q).Inc()
			result.FailedQueries = append(result.FailedQueries, entity.QueryFailure{Query: q, Message: failures[i].Error()})
			continue
		}
		result.Fetched += fetched[i]
		candidates = append(candidates, perQuery[i]...)
	}
	result.Passed = len(candidates)
	metrics.PairsFetchedTotal.Add(float64(result.Fetched))
	metrics.CandidatesPassed.Set(float64(result.Passed))

	if len(candidates) == 0 {
		s.logger.Warn("No opportunities found in this scan", "run_id", result.RunID, "failed_queries", len(result.FailedQueries))
		s.finish(result, started)
		return result, nil
	}
	s.logger.Info("Candidates passed filters", "run_id", result.RunID, "count", len(candidates))

	scored, err := s.scorer.ScoreAll(candidates)
	if err != nil {
		s.logger.Error("Scoring aborted", "run_id", result.RunID, "error", err)
		return nil, err
	}

	result.Ranked = Rank(scored)
	result.Top = TopN(result.Ranked, s.topN)
	for i, c := range result.Top {
		s.logger.Info("Top candidate",
			"rank", i+1,
			"symbol", c.Symbol(),
			"chain", c.Chain(),
			"score", c.Score,
			"fdv_usd", entity.ValueOrZero(c.FdvUSD),
			"liquidity_usd", entity.ValueOrZero(c.LiquidityUSD),
			"volume_24h", entity.ValueOrZero(c.Volume24h))
	}

	s.finish(result, started)
	return result, nil
}

// LastResult implements port.ScannerService.
func (s *scannerServiceImpl) LastResult() (*entity.ScanResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.last != nil
}

func (s *scannerServiceImpl) finish(result *entity.ScanResult, started time.Time) {
	finished := s.now()
	result.FinishedAt = finished.UTC()
	metrics.ScansTotal.Inc()
	metrics.ScanDuration.Observe(finished.Sub(started).Seconds())

	s.mu.Lock()
	s.last = result
	s.mu.Unlock()
	s.logger.Info("Scan finished", "run_id", result.RunID, "fetched", result.Fetched, "passed", result.Passed, "top", len(result.Top))
}

// fetch returns raw pairs for a query, served from the TTL cache when enabled.
// Errors are always *entity.FetchError.
func (s *scannerServiceImpl) fetch(ctx context.Context, query string) ([]dex_types.RawPair, error) {
	if s.queryCache != nil {
		if cached, ok := s.queryCache.Get(query); ok {
			s.logger.Debug("Query served from cache", "query", query)
			return cached.([]dex_types.RawPair), nil
		}
	}

	raw, err := s.source.SearchPairs(ctx, query)
	if err != nil {
		var fetchErr *entity.FetchError
		if !errors.As(err, &fetchErr) {
			err = &entity.FetchError{Query: query, Err: err}
		}
		return nil, err
	}

	if s.queryCache != nil {
		s.queryCache.Set(query, raw, s.queryCacheTTL)
	}
	return raw, nil
}

// filterPairs normalizes, enriches and filters one query's pairs, keeping source order.
func (s *scannerServiceImpl) filterPairs(raw []dex_types.RawPair) []entity.Candidate {
	var passed []entity.Candidate
	for _, r := range raw {
		c := s.enrich(NormalizePair(r))
		if ApplyFilters(c, s.thresholds) {
			passed = append(passed, c)
		}
	}
	return passed
}

func (s *scannerServiceImpl) enrich(c entity.Candidate) entity.Candidate {
	if s.enrichment == nil || c.ChainID == nil || c.TokenAddress == nil {
		return c
	}
	e, ok := s.enrichment.GetEnrichment(*c.ChainID, *c.TokenAddress)
	if !ok {
		return c
	}
	if e.HolderRatio != nil {
		ratio := *e.HolderRatio
		c.HolderRatio = &ratio
	}
	if len(e.RiskFlags) > 0 {
		flags := make(map[string]bool, len(e.RiskFlags))
		for k, v := range e.RiskFlags {
			flags[k] = v
		}
		c.RiskFlags = flags
	}
	return c
}
