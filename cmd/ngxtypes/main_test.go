package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/nginx-docs/internal/app"
	"github.com/JakeFAU/nginx-docs/internal/config"
)

const documentation = `{"modules": [{"name": "ngx_http_core_module", "link": "https://nginx.org/en/docs/http/ngx_http_core_module.html", "directives": [
  {"name": "sendfile", "fieldName": "Sendfile", "syntax": "sendfile on | off;", "description": ""},
  {"name": "tcp_nopush", "fieldName": "TcpNopush", "syntax": "tcp_nopush on | off;", "description": ""},
  {"name": "client_max_body_size", "fieldName": "ClientMaxBodySize", "syntax": "client_max_body_size size;", "description": ""},
  {"name": "internal", "fieldName": "Internal", "syntax": "internal;", "description": ""}
]}]}`

func newTestApp(t *testing.T, emitSkeleton bool) *app.App {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "documentation.json"), []byte(documentation), 0o600))
	a, err := app.New("ngxtypes", config.Config{
		Storage: config.StorageConfig{BaseDir: dir, Document: "documentation.json"},
		Types:   config.TypesConfig{EmitSkeleton: emitSkeleton},
	}, zap.NewNop())
	require.NoError(t, err)
	return a
}

func TestRunPrintsReport(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), newTestApp(t, false), &out))

	want := "[\n  \"on | off\"\n]\n{\n  \"on | off\": 2,\n  \"size\": 1\n}\n"
	assert.Equal(t, want, out.String())
}

func TestRunEmitsSkeleton(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), newTestApp(t, true), &out))

	assert.Contains(t, out.String(), "{\n  \"on | off\": 2,\n  \"size\": 1\n}\n{\n  \"on | off\": 2,\n  \"size\": 1\n}\n")
}

func TestRunFailsWithoutDocument(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, false)
	a.Config.Storage.Document = "missing.json"
	assert.Error(t, run(context.Background(), a, &bytes.Buffer{}))
}
