package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("config/config.yml")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://api.dexscreener.com", cfg.DEXScreener.BaseURL)
	assert.Equal(t, "config", cfg.Scan.RulesDir)
	assert.Equal(t, 4, cfg.Scan.MaxConcurrentRoutines)
	assert.Equal(t, "storage/reports", cfg.Storage.ReportsDir)
	assert.Equal(t, "storage/latest_opportunities.json", cfg.Storage.LatestFile)
	assert.False(t, cfg.TelegramConfigured())
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: production
logging:
  level: debug
server:
  port: "9000"
scan:
  rulesDir: rules
  max_concurrent_routines: 8
telegram:
  botToken: from-file
`), 0o644))

	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("ALPHA_REDIS_ENABLED", "true")
	t.Setenv("ALPHA_REDIS_ADDR", "localhost:6379")
	t.Setenv("ALPHA_REDIS_DB", "2")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "rules", cfg.Scan.RulesDir)
	assert.Equal(t, 8, cfg.Scan.MaxConcurrentRoutines)
	assert.Equal(t, "from-env", cfg.Telegram.BotToken)
	assert.True(t, cfg.TelegramConfigured())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "alpharadar:latest", cfg.Redis.Key)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: [oops"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "verbose"},
		S3:      S3Config{Enabled: true},
		Redis:   RedisConfig{Enabled: true},
	}

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "logging.level")
	assert.Contains(t, msg, "s3.bucket")
	assert.Contains(t, msg, "s3.region")
	assert.Contains(t, msg, "redis.addr")
}
