package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://nginx.org/en/docs", cfg.Docs.BaseURL)
	assert.Equal(t, DefaultModules, cfg.Docs.Modules)
	assert.Equal(t, FetcherHeadless, cfg.Fetcher.Kind)
	assert.True(t, cfg.Headless.Enabled)
	assert.True(t, cfg.Headless.BlockImages)
	assert.Equal(t, 50*time.Millisecond, cfg.SlowMo())
	assert.Equal(t, 60*time.Second, cfg.NavigationTimeout())
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout())
	assert.Zero(t, cfg.Fetcher.RequestsPerSecond)
	assert.Equal(t, 1, cfg.Fetcher.Burst)
	assert.Equal(t, "documentation.json", cfg.Storage.Document)
	assert.Equal(t, "types-mapping.json", cfg.Storage.Mapping)
}

func TestLoadWithFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
docs:
  base_url: http://localhost:8080/docs
  modules: ["ngx_http_gzip_module"]
fetcher:
  kind: colly
  user_agent: docs-bot
  timeout_seconds: 5
headless:
  nav_timeout_seconds: 10
  slow_mo_ms: 0
storage:
  base_dir: /tmp/out
types:
  emit_skeleton: true
logging:
  development: false
`
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/docs", cfg.Docs.BaseURL)
	assert.Equal(t, []string{"ngx_http_gzip_module"}, cfg.Docs.Modules)
	assert.Equal(t, FetcherColly, cfg.Fetcher.Kind)
	assert.Equal(t, "docs-bot", cfg.Fetcher.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout())
	assert.Equal(t, time.Duration(0), cfg.SlowMo())
	assert.Equal(t, "/tmp/out", cfg.Storage.BaseDir)
	assert.True(t, cfg.Types.EmitSkeleton)
	assert.False(t, cfg.Logging.Development)
}

func TestLoadHeadlessEnvToggle(t *testing.T) {
	t.Setenv("HEADLESS", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Headless.Enabled)
}

func TestLoadPrefixedEnvOverride(t *testing.T) {
	t.Setenv("NGXDOCS_STORAGE_DOCUMENT", "out.json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "out.json", cfg.Storage.Document)
}

func TestLoadFromEnvMissingFile(t *testing.T) {
	t.Setenv(PathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := func() Config {
		return Config{
			Docs:     DocsConfig{BaseURL: "https://nginx.org/en/docs", Modules: []string{"ngx_http_core_module"}},
			Fetcher:  FetcherConfig{Kind: FetcherHeadless, TimeoutSeconds: 1},
			Headless: HeadlessConfig{NavTimeoutSec: 1},
			Storage:  StorageConfig{BaseDir: ".", Document: "d.json", Mapping: "m.json"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative base url", func(c *Config) { c.Docs.BaseURL = "/en/docs" }},
		{"ftp base url", func(c *Config) { c.Docs.BaseURL = "ftp://nginx.org" }},
		{"no modules", func(c *Config) { c.Docs.Modules = nil }},
		{"unknown fetcher", func(c *Config) { c.Fetcher.Kind = "curl" }},
		{"zero fetch timeout", func(c *Config) { c.Fetcher.TimeoutSeconds = 0 }},
		{"zero nav timeout", func(c *Config) { c.Headless.NavTimeoutSec = 0 }},
		{"negative request rate", func(c *Config) { c.Fetcher.RequestsPerSecond = -1 }},
		{"negative slow mo", func(c *Config) { c.Headless.SlowMoMs = -1 }},
		{"blank base dir", func(c *Config) { c.Storage.BaseDir = " " }},
		{"no mapping name", func(c *Config) { c.Storage.Mapping = "" }},
	}

	require.NoError(t, base().Validate())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := base()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
