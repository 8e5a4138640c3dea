package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDecodeDefaults(t *testing.T) {
	cfg, err := Decode(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.ProviderEnabled())
	assert.False(t, cfg.CoverStorageEnabled())
}

func TestDecodeFileThenEnv(t *testing.T) {
	path := writeFile(t, `
server:
  port: 8080
  env: staging
provider:
  timeout: 3s
cors:
  trusted_origins:
    - http://localhost:5173
`)
	t.Setenv("PORT", "9090")
	t.Setenv("SHELF_USER_ID", "7")

	cfg, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port, "environment wins over the file")
	assert.Equal(t, "staging", cfg.Server.Env)
	assert.Equal(t, int64(7), cfg.Shelf.UserID)
	assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Cors.TrustedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.Provider.CacheTTL, "unset values keep their defaults")
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "server:\n  prot: 8080\n")
	_, err := Decode(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.Env = "test"
	cfg.Provider.AccessKey = "AKID"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.env")
	assert.Contains(t, err.Error(), "provider.secret_key")
	assert.Contains(t, err.Error(), "provider.partner_tag")

	cfg = Default()
	cfg.Provider.AccessKey = "AKID"
	cfg.Provider.SecretKey = "secret"
	cfg.Provider.PartnerTag = "shelf-22"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.ProviderEnabled())
}
