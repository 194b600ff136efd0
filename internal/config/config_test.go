package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/f3rmion/senti/internal/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, analyzer.DefaultEndpoint, cfg.Analyzer.Endpoint)
	assert.Zero(t, cfg.Analyzer.Timeout)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(dir, "history.db"), cfg.History.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "senti.log"), cfg.Log.File)
	assert.Equal(t, "localhost:5000", cfg.Serve.Addr)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `analyzer:
  endpoint: http://analyzer.internal:8080/api/analyze-sentiment
  timeout: 15s
history:
  enabled: true
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://analyzer.internal:8080/api/analyze-sentiment", cfg.Analyzer.Endpoint)
	assert.Equal(t, 15*time.Second, cfg.Analyzer.Timeout)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(dir, "history.db"), cfg.History.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "localhost:5000", cfg.Serve.Addr, "unset sections keep defaults")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "analyzer: [",
			wantErr: "parsing config file",
		},
		{
			name:    "empty endpoint",
			content: "analyzer:\n  endpoint: \"\"\n",
			wantErr: "analyzer.endpoint is required",
		},
		{
			name:    "negative timeout",
			content: "analyzer:\n  timeout: -1s\n",
			wantErr: "must not be negative",
		},
		{
			name:    "unknown log level",
			content: "log:\n  level: loud\n",
			wantErr: "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(tt.content), 0644))

			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "senti")

	cfg := Default()
	cfg.Analyzer.Timeout = 5 * time.Second
	cfg.History.Enabled = true
	cfg.Serve.Addr = "0.0.0.0:5001"

	require.NoError(t, Save(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, loaded.Analyzer.Timeout)
	assert.True(t, loaded.History.Enabled)
	assert.Equal(t, "0.0.0.0:5001", loaded.Serve.Addr)
}
