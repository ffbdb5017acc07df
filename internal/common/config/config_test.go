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
	cfg, err := LoadFrom("")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 10, cfg.ReadTimeout)
	assert.Equal(t, 4*1024*1024, cfg.BodyLimit)
	assert.Equal(t, "ollama", cfg.AIBackend)
	assert.Equal(t, "llama2", cfg.OllamaModel)
	assert.Equal(t, "", cfg.CacheDBPath)
	assert.False(t, cfg.StrictReferences)
	assert.Equal(t, time.Minute, cfg.AITimeoutDuration())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circuits.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "4000"
ai_backend: chat
chat_model: gpt-4o
ai_retries: 5
`), 0o644))

	t.Setenv("PORT", "5000")
	t.Setenv("STRICT_REFERENCES", "true")
	t.Setenv("AI_TIMEOUT", "15")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "chat", cfg.AIBackend)
	assert.Equal(t, "gpt-4o", cfg.ChatModel)
	assert.Equal(t, 5, cfg.AIRetries)
	assert.True(t, cfg.StrictReferences)
	assert.Equal(t, 15*time.Second, cfg.AITimeoutDuration())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadUsesConfigFileEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circuits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("circuits_url: http://circuits:3001\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	assert.Equal(t, "http://circuits:3001", Load().CircuitsURL)
}
