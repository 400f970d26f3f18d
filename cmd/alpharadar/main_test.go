package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"alpha_radar/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"scan", "watch", "test-telegram"}, names)

	watch, _, err := root.Find([]string{"watch"})
	require.NoError(t, err)
	assert.NotNil(t, watch.Flags().Lookup("interval"))
	assert.NotNil(t, watch.Flags().Lookup("serve"))
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuildApplication_RunOncePersistsSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pairs":[{"chainId":"solana","url":"https://dexscreener.com/solana/x",
			"baseToken":{"symbol":"RAD","address":"x"},"fdv":5000000,
			"liquidity":{"usd":250000},"volume":{"h24":600000}}]}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	writeTestFile(t, filepath.Join(dir, "rules", "filters.yaml"), `
marketcap: {min_usd: 200000, max_usd: 15000000}
liquidity: {min_usd: 20000}
volume_24h: {min_usd: 30000}
chains_allowlist: [solana]
`)
	writeTestFile(t, filepath.Join(dir, "rules", "scoring.yaml"), `
weights:
  marketcap_score: 0.25
  liquidity_score: 0.25
  volume_score: 0.2
  holder_distribution_score: 0.15
  risk_score: 0.15
`)
	writeTestFile(t, filepath.Join(dir, "rules", "sources.yaml"), "dexscreener:\n  queries: [ai]\n")
	configPath := filepath.Join(dir, "config.yml")
	writeTestFile(t, configPath, `
logging: {level: error}
dexScreener:
  baseURL: `+server.URL+`
  requestsPerSecond: 100
scan:
  rulesDir: `+filepath.Join(dir, "rules")+`
  queryFile: `+filepath.Join(dir, "queries.txt")+`
  enrichmentDir: `+filepath.Join(dir, "enrichment")+`
storage:
  reportsDir: `+filepath.Join(dir, "reports")+`
  latestFile: `+filepath.Join(dir, "latest.json")+`
`)

	app, err := buildApplication(context.Background(), configPath)
	require.NoError(t, err)
	defer app.close()

	require.NoError(t, app.runOnce(context.Background()))

	last, ok := app.scanner.LastResult()
	require.True(t, ok)
	require.Len(t, last.Top, 1)
	assert.Equal(t, 85.83, last.Top[0].Score)

	data, err := os.ReadFile(filepath.Join(dir, "latest.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"token_symbol": "RAD"`)
}

func TestBuildApplication_InvalidRulesIsConfigError(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	writeTestFile(t, configPath, "logging: {level: error}\nscan:\n  rulesDir: "+filepath.Join(dir, "empty")+"\n")

	_, err := buildApplication(context.Background(), configPath)
	require.Error(t, err)
	assert.True(t, entity.IsConfigError(err))
}
