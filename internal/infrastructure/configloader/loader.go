package configloader

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                string `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DEXScreenerConfig holds DEX Screener API specific configurations.
type DEXScreenerConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RequestsPerSecond    float64 `yaml:"requestsPerSecond"`
	Burst                int     `yaml:"burst"`
	BreakerFailures      uint32  `yaml:"breakerFailures"`
	BreakerCooldownSecs  int     `yaml:"breakerCooldownSeconds"`
}

// ScanConfig holds orchestrator settings.
type ScanConfig struct {
	RulesDir              string `yaml:"rulesDir"`
	QueryFile             string `yaml:"queryFile"`
	EnrichmentDir         string `yaml:"enrichmentDir"`
	MaxConcurrentRoutines int    `yaml:"max_concurrent_routines"`
	QueryCacheTTLSeconds  int    `yaml:"queryCacheTTLSeconds"`
	IntervalMinutes       int    `yaml:"intervalMinutes"`
	TimeoutSeconds        int    `yaml:"timeoutSeconds"`
}

// TelegramConfig holds the bot credentials. Both normally come from the environment.
type TelegramConfig struct {
	BaseURL       string `yaml:"baseURL"`
	BotToken      string `yaml:"botToken"`
	ChatID        string `yaml:"chatID"`
	TimeoutMillis int64  `yaml:"timeoutMillis"`
}

// StorageConfig holds snapshot paths.
type StorageConfig struct {
	ReportsDir string `yaml:"reportsDir"`
	LatestFile string `yaml:"latestFile"`
}

// S3Config holds the optional snapshot mirror.
type S3Config struct {
	Enabled        bool   `yaml:"enabled"`
	Endpoint       string `yaml:"endpoint"`
	Region         string `yaml:"region"`
	Bucket         string `yaml:"bucket"`
	Prefix         string `yaml:"prefix"`
	AccessKey      string `yaml:"accessKey"`
	SecretKey      string `yaml:"secretKey"`
	ForcePathStyle bool   `yaml:"forcePathStyle"`
}

// RedisConfig holds the optional latest-snapshot mirror.
type RedisConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TLSEnabled bool   `yaml:"tls"`
	Key        string `yaml:"key"`
	TTLMinutes int    `yaml:"ttlMinutes"`
}

// Config is the top-level configuration structure.
type Config struct {
	Env         string            `yaml:"env"`
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	DEXScreener DEXScreenerConfig `yaml:"dexScreener"`
	Scan        ScanConfig        `yaml:"scan"`
	Telegram    TelegramConfig    `yaml:"telegram"`
	Storage     StorageConfig     `yaml:"storage"`
	S3          S3Config          `yaml:"s3"`
	Redis       RedisConfig       `yaml:"redis"`
}

// Load reads .env (when present), the YAML file at path (optional), applies
// environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults and environment only.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Env, "ENV")
	setStr(&cfg.Logging.Level, "LOG_LEVEL")
	setStr(&cfg.Scan.RulesDir, "CONFIG_DIR")
	setStr(&cfg.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setStr(&cfg.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	setStr(&cfg.Server.Port, "SERVER_PORT")
	setStr(&cfg.DEXScreener.BaseURL, "DEXSCREENER_BASE_URL")

	setBool(&cfg.S3.Enabled, "ALPHA_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "ALPHA_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "ALPHA_S3_REGION")
	setStr(&cfg.S3.Bucket, "ALPHA_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "ALPHA_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "ALPHA_S3_SECRET_KEY")

	setBool(&cfg.Redis.Enabled, "ALPHA_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "ALPHA_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "ALPHA_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "ALPHA_REDIS_DB")
}

func applyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "local"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 10
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		cfg.Server.WriteTimeoutSeconds = 10
	}

	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = "https://api.dexscreener.com"
	}
	if cfg.DEXScreener.RequestTimeoutMillis == 0 {
		cfg.DEXScreener.RequestTimeoutMillis = 10000 // 10 seconds
	}
	if cfg.DEXScreener.RequestsPerSecond == 0 {
		cfg.DEXScreener.RequestsPerSecond = 4 // public search endpoint allows ~300 req/min
	}
	if cfg.DEXScreener.BreakerFailures == 0 {
		cfg.DEXScreener.BreakerFailures = 5
	}
	if cfg.DEXScreener.BreakerCooldownSecs <= 0 {
		cfg.DEXScreener.BreakerCooldownSecs = 30
	}

	if cfg.Scan.RulesDir == "" {
		cfg.Scan.RulesDir = "config"
	}
	if cfg.Scan.QueryFile == "" {
		cfg.Scan.QueryFile = "data/queries.txt"
	}
	if cfg.Scan.EnrichmentDir == "" {
		cfg.Scan.EnrichmentDir = "data/enrichment"
	}
	if cfg.Scan.MaxConcurrentRoutines <= 0 {
		cfg.Scan.MaxConcurrentRoutines = 4
	}
	if cfg.Scan.IntervalMinutes <= 0 {
		cfg.Scan.IntervalMinutes = 15
	}
	if cfg.Scan.TimeoutSeconds <= 0 {
		cfg.Scan.TimeoutSeconds = 120
	}

	if cfg.Telegram.TimeoutMillis == 0 {
		cfg.Telegram.TimeoutMillis = 10000
	}

	if cfg.Storage.ReportsDir == "" {
		cfg.Storage.ReportsDir = "storage/reports"
	}
	if cfg.Storage.LatestFile == "" {
		cfg.Storage.LatestFile = "storage/latest_opportunities.json"
	}

	if cfg.S3.Prefix == "" {
		cfg.S3.Prefix = "alpha-radar"
	}
	if cfg.Redis.Key == "" {
		cfg.Redis.Key = "alpharadar:latest"
	}
}

// Validate checks cross-field requirements and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level))
	}
	if c.DEXScreener.RequestTimeoutMillis < 0 {
		errs = append(errs, "dexScreener.requestTimeoutMillis must not be negative")
	}
	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			errs = append(errs, "s3.bucket is required when s3 is enabled")
		}
		if c.S3.Region == "" {
			errs = append(errs, "s3.region is required when s3 is enabled")
		}
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, "redis.addr is required when redis is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// TelegramConfigured reports whether both bot credentials are present.
func (c *Config) TelegramConfigured() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

func setStr(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
