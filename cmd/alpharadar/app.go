package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alpha_radar/internal/app/port"
	"alpha_radar/internal/app/provider"
	"alpha_radar/internal/app/service"
	dex_client "alpha_radar/internal/client"
	"alpha_radar/internal/config"
	"alpha_radar/internal/infrastructure/configloader"
	"alpha_radar/internal/infrastructure/httpclient"
	networkdefinition "alpha_radar/internal/infrastructure/network/definition"
	"alpha_radar/internal/infrastructure/storage"
	"alpha_radar/internal/pkg/logger"
	"alpha_radar/internal/pkg/metrics"

	"go.uber.org/zap"
)

// errStartup marks failures that prevent the process from starting at all.
var errStartup = errors.New("startup failed")

// application holds the wired components shared by all commands.
type application struct {
	cfg      *configloader.Config
	rules    *config.Rules
	log      port.Logger
	registry *networkdefinition.ChainRegistry
	notifier *httpclient.TelegramNotifier
	scanner  port.ScannerService
	runner   *service.Runner
	closers  []func() error
}

// loadSettings reads the app config and starts logging. It is enough for test-telegram.
func loadSettings(configPath string) (*configloader.Config, *zap.Logger, error) {
	cfg, err := configloader.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errStartup, err)
	}
	zl, err := logger.Init(cfg.Logging.Level, cfg.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errStartup, err)
	}
	return cfg, zl, nil
}

func newNotifier(cfg *configloader.Config, zl *zap.Logger) *httpclient.TelegramNotifier {
	return httpclient.NewTelegramNotifier(
		cfg.Telegram.BaseURL,
		cfg.Telegram.BotToken,
		cfg.Telegram.ChatID,
		time.Duration(cfg.Telegram.TimeoutMillis)*time.Millisecond,
		zl,
	)
}

// buildApplication wires every component. A rules problem comes back as *entity.ConfigError.
func buildApplication(ctx context.Context, configPath string) (*application, error) {
	cfg, zl, err := loadSettings(configPath)
	if err != nil {
		return nil, err
	}
	metrics.MustRegisterMetrics()

	appLogger := logger.NewSlogAdapter()
	appLogger.Info("alpha radar starting", "env", cfg.Env, "rules_dir", cfg.Scan.RulesDir)

	rules, err := config.LoadRules(cfg.Scan.RulesDir)
	if err != nil {
		return nil, err
	}

	registry := networkdefinition.NewChainRegistry(logger.NewNamedAdapter("ChainRegistry"), rules.Filters.ChainsAllowlist)

	// sources.yaml may pin the endpoint and timeout for the search API.
	baseURL := cfg.DEXScreener.BaseURL
	if rules.Sources.DEXScreener.BaseURL != "" {
		baseURL = rules.Sources.DEXScreener.BaseURL
	}
	timeout := time.Duration(cfg.DEXScreener.RequestTimeoutMillis) * time.Millisecond
	if rules.Sources.DEXScreener.TimeoutSeconds > 0 {
		timeout = time.Duration(rules.Sources.DEXScreener.TimeoutSeconds) * time.Second
	}
	dexClient := dex_client.NewDEXScreenerClient(dex_client.DEXScreenerOptions{
		BaseURL:           baseURL,
		Timeout:           timeout,
		RequestsPerSecond: cfg.DEXScreener.RequestsPerSecond,
		Burst:             cfg.DEXScreener.Burst,
		BreakerFailures:   cfg.DEXScreener.BreakerFailures,
		BreakerCooldown:   time.Duration(cfg.DEXScreener.BreakerCooldownSecs) * time.Second,
	}, zl)

	queries := provider.NewQueryProvider(rules.Sources.DEXScreener.Queries, cfg.Scan.QueryFile, logger.NewNamedAdapter("QueryProvider"))
	enrichment := provider.NewEnrichmentProvider(cfg.Scan.EnrichmentDir, registry, logger.NewNamedAdapter("EnrichmentProvider"))

	scanner, err := service.NewScannerService(dexClient, queries, rules, enrichment, logger.NewNamedAdapter("ScannerService"), service.ScannerOptions{
		MaxConcurrency: cfg.Scan.MaxConcurrentRoutines,
		QueryCacheTTL:  time.Duration(cfg.Scan.QueryCacheTTLSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	app := &application{
		cfg:      cfg,
		rules:    rules,
		log:      appLogger,
		registry: registry,
		notifier: newNotifier(cfg, zl),
		scanner:  scanner,
	}

	sink, err := app.buildSinks(ctx)
	if err != nil {
		app.close()
		return nil, err
	}
	delivery := service.NewDeliveryService(app.notifier, sink, logger.NewNamedAdapter("DeliveryService"))
	app.runner = service.NewRunner(scanner, delivery, logger.NewNamedAdapter("Runner"))
	return app, nil
}

// buildSinks always writes local files; S3 and Redis mirrors are added when enabled.
func (a *application) buildSinks(ctx context.Context) (port.SnapshotSink, error) {
	sinkLogger := logger.NewNamedAdapter("Snapshot")
	sinks := []port.SnapshotSink{
		storage.NewFileSink(a.cfg.Storage.ReportsDir, a.cfg.Storage.LatestFile, sinkLogger),
	}

	if a.cfg.S3.Enabled {
		client, err := storage.NewS3Client(ctx, storage.S3Config{
			Endpoint:       a.cfg.S3.Endpoint,
			Region:         a.cfg.S3.Region,
			Bucket:         a.cfg.S3.Bucket,
			Prefix:         a.cfg.S3.Prefix,
			AccessKey:      a.cfg.S3.AccessKey,
			SecretKey:      a.cfg.S3.SecretKey,
			ForcePathStyle: a.cfg.S3.ForcePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errStartup, err)
		}
		sinks = append(sinks, storage.NewS3Sink(client, a.cfg.S3.Bucket, a.cfg.S3.Prefix, sinkLogger))
		a.log.Info("S3 snapshot mirror enabled", "bucket", a.cfg.S3.Bucket)
	}

	if a.cfg.Redis.Enabled {
		ttl := time.Duration(a.cfg.Redis.TTLMinutes) * time.Minute
		client, err := storage.NewRedisClient(ctx, storage.RedisConfig{
			Addr:       a.cfg.Redis.Addr,
			Password:   a.cfg.Redis.Password,
			DB:         a.cfg.Redis.DB,
			TLSEnabled: a.cfg.Redis.TLSEnabled,
			Key:        a.cfg.Redis.Key,
			TTL:        ttl,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errStartup, err)
		}
		a.closers = append(a.closers, client.Close)
		sinks = append(sinks, storage.NewRedisSink(client, a.cfg.Redis.Key, ttl, sinkLogger))
		a.log.Info("Redis snapshot mirror enabled", "addr", a.cfg.Redis.Addr, "key", a.cfg.Redis.Key)
	}

	return storage.NewMultiSink(sinkLogger, sinks...), nil
}

func (a *application) close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn("Failed to close resource", "error", err)
		}
	}
}

// runOnce executes one scan with the configured timeout and logs the delivery outcome.
func (a *application) runOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(a.cfg.Scan.TimeoutSeconds)*time.Second)
	defer cancel()

	result, report, err := a.runner.RunOnce(ctx)
	if err != nil {
		return err
	}
	switch {
	case report.Skipped:
		a.log.Info("Nothing to deliver", "run_id", result.RunID)
	default:
		if report.NotifyErr != nil {
			a.log.Warn("Notification failed", "run_id", result.RunID, "error", report.NotifyErr)
		}
		if report.PersistenceErr != nil {
			a.log.Warn("Snapshot persistence failed", "run_id", result.RunID, "error", report.PersistenceErr)
		}
	}
	return nil
}
