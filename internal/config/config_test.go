package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(viper.New(), Options{})
	require.NoError(t, err)

	assert.Equal(t, "https://xingchen-api.xf-yun.com/workflow/v1/chat/completions", cfg.API.URL())
	assert.Equal(t, 120*time.Second, cfg.API.Timeout)
	assert.Equal(t, "123", cfg.API.UID)
	assert.Equal(t, BackendTOML, cfg.Library.Backend)
	assert.Equal(t, filepath.Join(home, ".paperswipe", "library.toml"), cfg.Library.Path)
	assert.Equal(t, "127.0.0.1:5000", cfg.Server.Addr)
	assert.ErrorIs(t, cfg.API.RequireCredentials(), ErrMissingCredentials)
}

func TestLoadReadsConfigFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PAPERSWIPE_API_SECRET", "from-env")
	t.Setenv("XFIND_FLOW_ID", "flow-legacy")

	dir := filepath.Join(home, ".paperswipe")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[api]
base_url = "http://localhost:9999/"
key = "file-key"
timeout = "5s"

[library]
backend = "sqlite"
`), 0o600))

	cfg, err := Load(viper.New(), Options{})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/workflow/v1/chat/completions", cfg.API.URL())
	assert.Equal(t, "file-key", cfg.API.Key)
	assert.Equal(t, "from-env", cfg.API.Secret)
	assert.Equal(t, "flow-legacy", cfg.API.FlowID)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, filepath.Join(home, ".paperswipe", "library.db"), cfg.Library.Path)
	assert.NoError(t, cfg.API.RequireCredentials())
}

func TestLoadDotEnvFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PAPERSWIPE_API_KEY=dotenv-key\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PAPERSWIPE_API_KEY") })

	cfg, err := Load(viper.New(), Options{DotEnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.API.Key)

	_, err = Load(viper.New(), Options{DotEnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "unknown backend", content: "[library]\nbackend = \"redis\"\n", wantErr: ErrUnknownBackend},
		{name: "zero timeout", content: "[api]\ntimeout = \"0s\"\n", wantErr: ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			path := filepath.Join(t.TempDir(), "custom.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Load(viper.New(), Options{ConfigFile: path})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
