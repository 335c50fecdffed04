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
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 10, cfg.HashCost)
	assert.Empty(t, cfg.SystemSecret)
}

func TestValidate_RequiresSystemSecret(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	require.Error(t, cfg.Validate())

	cfg.SystemSecret = "sys-secret"
	require.NoError(t, cfg.Validate())
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("PASSVAULT_SYSTEM_SECRET", "from-env")
	t.Setenv("PASSVAULT_JWT_SECRET", "jwt-from-env")
	t.Setenv("DATABASE_DSN", "postgres://env")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "from-env", cfg.SystemSecret)
	assert.Equal(t, "jwt-from-env", cfg.JWTSecret)
	assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
}

func TestParseEnv_EmptyValuesIgnored(t *testing.T) {
	t.Setenv("PASSVAULT_SYSTEM_SECRET", "")

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.SystemSecret = "configured"
	parseEnv(cfg)

	assert.Equal(t, "configured", cfg.SystemSecret)
}

func TestParseJson_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	body := `{
		"endpoint_addr": ":9090",
		"system_secret": "json-secret",
		"token_validity_duration": "30m"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	oldArgs := os.Args
	os.Args = []string{"server", "-c", path}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "json-secret", cfg.SystemSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenValidityDuration)
	// untouched fields keep their defaults
	assert.Equal(t, 10, cfg.HashCost)
}
