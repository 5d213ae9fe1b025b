package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"CCU_HOST", "CCU_PORT", "CCU_HTTPS", "CCU_USERNAME", "CCU_PASSWORD"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.False(t, cfg.HTTPS)
	assert.False(t, cfg.HasAuth())
	assert.Equal(t, "http://localhost:2121", cfg.BaseURL())
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{"CCU_HOST", "CCU_PORT", "CCU_HTTPS", "CCU_USERNAME", "CCU_PASSWORD"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfgDir := filepath.Join(dir, "ccuctl")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(`
[ccu]
host = "ccu.example"
port = 8443
https = true
username = "admin"
password = "secret"
`), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ccu.example", cfg.Host)
	assert.Equal(t, 8443, cfg.Port)
	assert.True(t, cfg.HTTPS)
	assert.True(t, cfg.HasAuth())
	assert.Equal(t, "https://ccu.example:8443", cfg.BaseURL())
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfgDir := filepath.Join(dir, "ccuctl")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(`
[ccu]
host = "from-file"
port = 1000
`), 0o600))

	t.Setenv("CCU_HOST", "from-env")
	t.Setenv("CCU_PORT", "2000")
	t.Setenv("CCU_HTTPS", "yes")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Host)
	assert.Equal(t, 2000, cfg.Port)
	assert.True(t, cfg.HTTPS)
}

func TestBadPortEnvIgnored(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CCU_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
}
