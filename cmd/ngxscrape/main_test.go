package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/nginx-docs/internal/app"
	"github.com/JakeFAU/nginx-docs/internal/config"
	"github.com/JakeFAU/nginx-docs/internal/docs"
	collyfetcher "github.com/JakeFAU/nginx-docs/internal/fetcher/colly"
)

const indexPage = `<html><body><ul class="compact">
<li><a href="http/ngx_http_gzip_module.html">ngx_http_gzip_module</a></li>
<li><a href="http/ngx_http_mp4_module.html">ngx_http_mp4_module</a></li>
</ul></body></html>`

const gzipPage = `<html><body>
<a name="gzip"></a><div class="directive"><table><tr><th>Syntax:</th><td><code><strong>gzip</strong> <code>on</code> | <code>off</code>;</code></td></tr><tr><th>Default:</th><td><pre>gzip off;</pre></td></tr><tr><th>Context:</th><td><code>http</code></td></tr></table></div>
<p>Enables gzipping of responses.</p>
<a name="gzip_vary"></a>
</body></html>`

func testConfig(baseURL, dir string) config.Config {
	return config.Config{
		Docs:     config.DocsConfig{BaseURL: baseURL, Modules: []string{"ngx_http_gzip_module"}},
		Fetcher:  config.FetcherConfig{Kind: config.FetcherColly, TimeoutSeconds: 5},
		Headless: config.HeadlessConfig{Enabled: true, NavTimeoutSec: 5},
		Storage:  config.StorageConfig{BaseDir: dir, Document: "documentation.json", Mapping: "types-mapping.json"},
	}
}

func TestNewFetcher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		kind  string
		valid bool
	}{
		{"colly", config.FetcherColly, true},
		{"headless", config.FetcherHeadless, true},
		{"unknown", "wget", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig("https://nginx.org/en/docs/", t.TempDir())
			cfg.Fetcher.Kind = tc.kind
			err := cfg.Validate()
			if !tc.valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.kind != config.FetcherColly {
				// Launching Chrome is left to the fetcher's own tests.
				return
			}
			f, closeFetcher, err := newFetcher(cfg, zap.NewNop())
			require.NoError(t, err)
			assert.IsType(t, &collyfetcher.Fetcher{}, f)
			require.NotNil(t, closeFetcher)
			assert.NotPanics(t, closeFetcher)
		})
	}
}

func TestRunWritesDocumentation(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/en/docs/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(indexPage))
	})
	mux.HandleFunc("/en/docs/http/ngx_http_gzip_module.html", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(gzipPage))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	a, err := app.New("ngxscrape", testConfig(srv.URL+"/en/docs/", dir), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, run(context.Background(), a))

	// #nosec G304 -- test reads from the controlled temp directory.
	raw, err := os.ReadFile(filepath.Join(dir, "documentation.json"))
	require.NoError(t, err)
	assert.NotEqual(t, byte('\n'), raw[len(raw)-1])

	var doc docs.Document
	require.NoError(t, a.Store.ReadJSON("documentation.json", &doc))
	require.Len(t, doc.Modules, 1)
	module := doc.Modules[0]
	assert.Equal(t, "ngx_http_gzip_module", module.Name)
	assert.Equal(t, srv.URL+"/en/docs/http/ngx_http_gzip_module.html", module.Link)
	require.Len(t, module.Directives, 1)
	assert.Equal(t, []docs.Field{
		{Key: "name", Value: "gzip"},
		{Key: "fieldName", Value: "Gzip"},
		{Key: "syntax", Value: "gzip on | off;"},
		{Key: "default", Value: "gzip off;"},
		{Key: "context", Value: "http"},
		{Key: "description", Value: "Enables gzipping of responses."},
	}, module.Directives[0].Fields())
}

func TestRunWritesNothingOnFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	a, err := app.New("ngxscrape", testConfig(srv.URL+"/en/docs/", dir), zap.NewNop())
	require.NoError(t, err)
	require.Error(t, run(context.Background(), a))

	_, err = os.Stat(filepath.Join(dir, "documentation.json"))
	assert.True(t, os.IsNotExist(err))
}
