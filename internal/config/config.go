// Package config loads and validates pipeline configuration via Viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Fetcher kinds.
const (
	FetcherHeadless = "headless"
	FetcherColly    = "colly"
)

// PathEnv names the environment variable holding an optional config file path.
const PathEnv = "NGXDOCS_CONFIG"

// DefaultModules is the allow-list of documentation modules to scrape.
var DefaultModules = []string{
	"ngx_http_core_module",
	"ngx_http_access_module",
	"ngx_http_addition_module",
	"ngx_http_api_module",
	"ngx_http_auth_basic_module",
	"ngx_http_auth_request_module",
	"ngx_http_browser_module",
	"ngx_http_charset_module",
	"ngx_http_empty_gif_module",
	"ngx_http_fastcgi_module",
	"ngx_http_geo_module",
	"ngx_http_geoip_module",
	"ngx_http_grpc_module",
	"ngx_http_gunzip_module",
	"ngx_http_gzip_module",
	"ngx_http_gzip_static_module",
	"ngx_http_headers_module",
	"ngx_http_image_filter_module",
	"ngx_http_index_module",
	"ngx_http_limit_conn_module",
	"ngx_http_limit_req_module",
	"ngx_http_log_module",
	"ngx_http_map_module",
	"ngx_http_mirror_module",
	"ngx_http_proxy_module",
	"ngx_http_realip_module",
	"ngx_http_referer_module",
	"ngx_http_rewrite_module",
	"ngx_http_split_clients_module",
	"ngx_http_ssl_module",
	"ngx_http_status_module",
	"ngx_http_stub_status_module",
	"ngx_http_sub_module",
	"ngx_http_userid_module",
	"ngx_http_v2_module",
	"ngx_stream_core_module",
	"ngx_stream_access_module",
	"ngx_stream_geo_module",
	"ngx_stream_geoip_module",
	"ngx_stream_keyval_module",
	"ngx_stream_limit_conn_module",
	"ngx_stream_log_module",
	"ngx_stream_map_module",
	"ngx_stream_proxy_module",
	"ngx_stream_realip_module",
	"ngx_stream_return_module",
	"ngx_stream_split_clients_module",
	"ngx_stream_ssl_module",
	"ngx_stream_ssl_preread_module",
}

// Config captures all pipeline configuration knobs loaded via Viper.
type Config struct {
	Docs     DocsConfig     `mapstructure:"docs"`
	Fetcher  FetcherConfig  `mapstructure:"fetcher"`
	Headless HeadlessConfig `mapstructure:"headless"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Types    TypesConfig    `mapstructure:"types"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DocsConfig points at the documentation site.
type DocsConfig struct {
	BaseURL string   `mapstructure:"base_url"`
	Modules []string `mapstructure:"modules"`
}

// FetcherConfig selects and tunes the page fetcher.
type FetcherConfig struct {
	Kind           string `mapstructure:"kind"`
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	// RequestsPerSecond throttles page fetches. Zero means unthrottled.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// HeadlessConfig configures the browser used by the headless fetcher.
type HeadlessConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	NavTimeoutSec int  `mapstructure:"nav_timeout_seconds"`
	SlowMoMs      int  `mapstructure:"slow_mo_ms"`
	BlockImages   bool `mapstructure:"block_images"`
}

// StorageConfig names the JSON artifacts and where they live.
type StorageConfig struct {
	BaseDir  string `mapstructure:"base_dir"`
	Document string `mapstructure:"document"`
	Mapping  string `mapstructure:"mapping"`
}

// TypesConfig tunes the frequency report.
type TypesConfig struct {
	EmitSkeleton bool `mapstructure:"emit_skeleton"`
}

// MetricsConfig controls where run metrics are pushed.
type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	Job            string `mapstructure:"job"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// LoadFromEnv loads configuration using the file named by NGXDOCS_CONFIG, if any.
func LoadFromEnv() (Config, error) {
	return Load(os.Getenv(PathEnv))
}

// Load builds a Config from an optional .env file, disk, and environment.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("NGXDOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.BindEnv("headless.enabled", "NGXDOCS_HEADLESS_ENABLED", "HEADLESS"); err != nil {
		return Config{}, fmt.Errorf("bind HEADLESS: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("docs.base_url", "https://nginx.org/en/docs")
	v.SetDefault("docs.modules", DefaultModules)
	v.SetDefault("fetcher.kind", FetcherHeadless)
	v.SetDefault("fetcher.user_agent", "")
	v.SetDefault("fetcher.timeout_seconds", 30)
	v.SetDefault("fetcher.requests_per_second", 0)
	v.SetDefault("fetcher.burst", 1)
	v.SetDefault("headless.enabled", true)
	v.SetDefault("headless.nav_timeout_seconds", 60)
	v.SetDefault("headless.slow_mo_ms", 50)
	v.SetDefault("headless.block_images", true)
	v.SetDefault("storage.base_dir", ".")
	v.SetDefault("storage.document", "documentation.json")
	v.SetDefault("storage.mapping", "types-mapping.json")
	v.SetDefault("types.emit_skeleton", false)
	v.SetDefault("metrics.pushgateway_url", "")
	v.SetDefault("metrics.job", "nginx_docs")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	u, err := url.Parse(c.Docs.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("docs.base_url must be an absolute http(s) URL, got %q", c.Docs.BaseURL)
	}
	if len(c.Docs.Modules) == 0 {
		return fmt.Errorf("docs.modules must not be empty")
	}
	switch c.Fetcher.Kind {
	case FetcherHeadless, FetcherColly:
	default:
		return fmt.Errorf("fetcher.kind must be %q or %q, got %q", FetcherHeadless, FetcherColly, c.Fetcher.Kind)
	}
	if c.Fetcher.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetcher.timeout_seconds must be > 0")
	}
	if c.Fetcher.RequestsPerSecond < 0 {
		return fmt.Errorf("fetcher.requests_per_second must be >= 0")
	}
	if c.Headless.NavTimeoutSec <= 0 {
		return fmt.Errorf("headless.nav_timeout_seconds must be > 0")
	}
	if c.Headless.SlowMoMs < 0 {
		return fmt.Errorf("headless.slow_mo_ms must be >= 0")
	}
	if strings.TrimSpace(c.Storage.BaseDir) == "" {
		return fmt.Errorf("storage.base_dir must be set")
	}
	if c.Storage.Document == "" || c.Storage.Mapping == "" {
		return fmt.Errorf("storage.document and storage.mapping must be set")
	}
	return nil
}

// FetchTimeout is the per-page budget for the static fetcher.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetcher.TimeoutSeconds) * time.Second
}

// NavigationTimeout is the per-page budget for the headless fetcher.
func (c Config) NavigationTimeout() time.Duration {
	return time.Duration(c.Headless.NavTimeoutSec) * time.Second
}

// SlowMo is the pause inserted after each navigation.
func (c Config) SlowMo() time.Duration {
	return time.Duration(c.Headless.SlowMoMs) * time.Millisecond
}
