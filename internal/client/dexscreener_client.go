package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"alpha_radar/internal/domain/entity"
	dex_types "alpha_radar/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/sony/gobreaker"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpproxy"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultBaseURL = "https://api.dexscreener.com"
	searchPath     = "/latest/dex/search"
)

// DEXScreenerOptions configures the DEX Screener search client.
type DEXScreenerOptions struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond caps outgoing requests; zero disables the limiter.
	RequestsPerSecond float64
	Burst             int
	// BreakerFailures is the number of consecutive failures that opens the breaker.
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// DEXScreenerClient defines the interface for searching pairs on the DEX Screener API.
type DEXScreenerClient interface {
	SearchPairs(ctx context.Context, query string) ([]dex_types.RawPair, error)
}

// dexScreenerClientImpl is the fasthttp implementation of DEXScreenerClient.
type dexScreenerClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewDEXScreenerClient creates a new search client. Proxy settings are taken
// from HTTPS_PROXY / HTTP_PROXY when present.
func NewDEXScreenerClient(opts DEXScreenerOptions, logger *zap.Logger) DEXScreenerClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}
	if opts.BreakerCooldown <= 0 {
		opts.BreakerCooldown = 30 * time.Second
	}

	named := logger.Named("DEXScreenerClient")

	httpClient := &fasthttp.Client{
		Name:                "alpha-radar",
		ReadTimeout:         opts.Timeout,
		WriteTimeout:        opts.Timeout,
		MaxIdleConnDuration: time.Minute,
	}
	if proxyFromEnv() {
		httpClient.Dial = fasthttpproxy.FasthttpProxyHTTPDialerTimeout(opts.Timeout)
		named.Info("Using HTTP proxy from environment")
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "dexscreener",
		MaxRequests: 1,
		Timeout:     opts.BreakerCooldown,
		// An empty search is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, entity.ErrNoData)
		},
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			named.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &dexScreenerClientImpl{
		client:  httpClient,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		limiter: limiter,
		breaker: breaker,
		logger:  named,
	}
}

// SearchPairs implements DEXScreenerClient. Every failure is a *entity.FetchError.
func (c *dexScreenerClientImpl) SearchPairs(ctx context.Context, query string) ([]dex_types.RawPair, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &entity.FetchError{Query: query, Err: errors.New("query cannot be empty")}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &entity.FetchError{Query: query, Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doSearch(ctx, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %v", entity.ErrCircuitOpen, err)
		}
		return nil, &entity.FetchError{Query: query, Err: err}
	}
	return out.([]dex_types.RawPair), nil
}

func (c *dexScreenerClientImpl) doSearch(ctx context.Context, query string) ([]dex_types.RawPair, error) {
	requestURL := fmt.Sprintf("%s%s?q=%s", c.baseURL, searchPath, url.QueryEscape(query))

	c.logger.Debug("Requesting pairs from DEX Screener", zap.String("url", requestURL), zap.String("query", query))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request to DEX Screener", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute request to DEX Screener (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("DEX Screener API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", truncate(rawBody, 512)),
		)
		return nil, fmt.Errorf("DEX Screener API request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var envelope dex_types.SearchResponse
	if err := json.Unmarshal(rawBody, &envelope); err == nil && envelope.Pairs != nil {
		c.logger.Debug("Successfully unmarshalled DEX Screener search response",
			zap.String("query", query),
			zap.Int("pairCount", len(envelope.Pairs)))
		return envelope.Pairs, nil
	}

	// Some deployments answer with a bare array of pairs.
	var directPairs []dex_types.RawPair
	if err := json.Unmarshal(rawBody, &directPairs); err == nil && directPairs != nil {
		c.logger.Debug("Successfully unmarshalled DEX Screener response (direct array)",
			zap.String("query", query),
			zap.Int("pairCount", len(directPairs)))
		return directPairs, nil
	}

	c.logger.Warn("DEX Screener returned no pairs payload",
		zap.String("url", requestURL),
		zap.ByteString("responseBody", truncate(rawBody, 512)))
	return nil, entity.ErrNoData
}

func proxyFromEnv() bool {
	for _, key := range []string{"HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
