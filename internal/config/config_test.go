package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_FILE", path)
}

func TestLoad_Defaults(t *testing.T) {
	writeConfig(t, `
providers:
  - name: "local"
    base_url: "http://localhost:11434/v1"
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Empty(t, cfg.Server.APIKey)
	assert.False(t, cfg.Tracing.Enabled)
	require.Len(t, cfg.Providers, 1)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Providers[0].BaseURL)
	assert.Nil(t, cfg.Providers[0].Models)
}

func TestLoad_ProviderOrderAndStaticModels(t *testing.T) {
	writeConfig(t, `
server:
  api_key: "secret"
providers:
  - name: "first"
    base_url: "https://first.example.com/v1"
    api_key: "sk-first"
    models: ["x", "y"]
  - name: "second"
    base_url: "https://second.example.com/v1"
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Server.APIKey)
	require.Len(t, cfg.Providers, 2)
	assert.Equal(t, "first", cfg.Providers[0].Name)
	assert.Equal(t, []string{"x", "y"}, cfg.Providers[0].Models)
	assert.Equal(t, "second", cfg.Providers[1].Name)
	assert.Nil(t, cfg.Providers[1].Models)
}

func TestLoad_APIKeyEnvIndirection(t *testing.T) {
	t.Setenv("UPSTREAM_KEY", "sk-resolved")
	writeConfig(t, `
providers:
  - name: "p"
    base_url: "https://api.example.com/v1"
    api_key: "ENV:UPSTREAM_KEY"
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-resolved", cfg.Providers[0].APIKey)
}

func TestLoad_MissingFileIsFatal(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_NoProvidersIsFatal(t *testing.T) {
	writeConfig(t, `
server:
  port: "9090"
`)

	_, err := Load()
	assert.ErrorContains(t, err, "no providers")
}

func TestLoad_InvalidBaseURLIsFatal(t *testing.T) {
	writeConfig(t, `
providers:
  - name: "broken"
    base_url: "not a url"
`)

	_, err := Load()
	assert.Error(t, err)
}
