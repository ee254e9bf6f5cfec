package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Glossary.NoDecompose)
	assert.Equal(t, 1, cfg.Glossary.MinMarkedWords)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, int64(1<<20), cfg.Session.MaxUploadBytes)
	assert.Empty(t, cfg.Auth.Password)
	assert.Equal(t, []string{"*"}, cfg.CORS.Origins())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
glossary:
  no_decompose: true
  strict: true
  min_marked_words: 2
log:
  format: json
cors:
  allowed_origins: "https://a.example, https://b.example"
`)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("APP_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Glossary.NoDecompose)
	assert.True(t, cfg.Glossary.Strict)
	assert.Equal(t, 2, cfg.Glossary.MinMarkedWords)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "secret", cfg.Auth.Password)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.Origins())
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 70000
glossary:
  min_marked_words: -1
log:
  level: loud
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "min_marked_words")
	assert.Contains(t, err.Error(), "log.level")
}
