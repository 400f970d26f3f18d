package storage

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"alpha_radar/internal/app/port"
	"alpha_radar/internal/domain/entity"

	"github.com/redis/go-redis/v9"
)

const (
	redisTarget     = "redis"
	DefaultRedisKey = "alpharadar:latest"
)

// RedisConfig holds connection parameters for the latest-snapshot mirror.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TLSEnabled bool
	Key        string
	TTL        time.Duration
}

// latestSetter is the subset of *redis.Client used by the sink.
type latestSetter interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// NewRedisClient connects and pings.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLSEnabled {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}

// RedisSink stores the latest ranked list under one key for dashboards.
type RedisSink struct {
	client latestSetter
	key    string
	ttl    time.Duration
	logger port.Logger
}

func NewRedisSink(client latestSetter, key string, ttl time.Duration, logger port.Logger) *RedisSink {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSink{client: client, key: key, ttl: ttl, logger: logger}
}

// Name implements port.SnapshotSink.
func (s *RedisSink) Name() string { return redisTarget }

// Persist implements port.SnapshotSink.
func (s *RedisSink) Persist(ctx context.Context, candidates []entity.ScoredCandidate) error {
	data, err := EncodeSnapshot(candidates)
	if err != nil {
		return &entity.PersistenceError{Target: redisTarget, Path: s.key, Err: err}
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return &entity.PersistenceError{Target: redisTarget, Path: s.key, Err: err}
	}
	s.logger.Debug("Latest snapshot stored in redis", "key", s.key, "bytes", len(data))
	return nil
}
