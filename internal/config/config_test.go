package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Engine.StageTimeout)
	assert.Equal(t, 74.0, cfg.Rates.DomesticPerDiem)
	assert.Equal(t, 110.0, cfg.Rates.InternationalPerDiem)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Audit.File)
	assert.Empty(t, cfg.Modules.Remote)
}

func TestLoadFromYAMLFile(t *testing.T) {
	content := `
server:
  address: ":9090"
  enable_cors: true
engine:
  stage_timeout: 5s
audit:
  file: /tmp/audit.jsonl
rates:
  domestic_per_diem: 80
  per_diem:
    JFK: 96.5
modules:
  remote:
    flight_time: http://flight-time.internal:8080/calculate
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.True(t, cfg.Server.EnableCORS)
	assert.Equal(t, 5*time.Second, cfg.Engine.StageTimeout)
	assert.Equal(t, "/tmp/audit.jsonl", cfg.Audit.File)
	assert.Equal(t, 80.0, cfg.Rates.DomesticPerDiem)
	assert.Equal(t, 96.5, cfg.Rates.PerDiem["JFK"])
	assert.Equal(t, "http://flight-time.internal:8080/calculate", cfg.Modules.Remote["flight_time"])
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched values keep their defaults.
	assert.Equal(t, 110.0, cfg.Rates.InternationalPerDiem)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PE_SERVER_ADDRESS", ":7070")
	t.Setenv("PE_ENGINE_STAGE_TIMEOUT", "45s")
	t.Setenv("PE_RATES_DOMESTIC_PER_DIEM", "85.5")
	t.Setenv("PE_SERVER_ENABLE_CORS", "true")
	t.Setenv("PE_LOG_LEVEL", "debug")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, 45*time.Second, cfg.Engine.StageTimeout)
	assert.Equal(t, 85.5, cfg.Rates.DomesticPerDiem)
	assert.True(t, cfg.Server.EnableCORS)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  address: \":9090\"\n"), 0o644))
	t.Setenv("PE_SERVER_ADDRESS", ":6060")

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.Server.Address)
}

func TestEnvInvalidDuration(t *testing.T) {
	t.Setenv("PE_ENGINE_STAGE_TIMEOUT", "not-a-duration")

	_, err := NewLoader().Load()
	assert.Error(t, err)
}

func TestSerializeRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Address = ":9999"
	cfg.Rates.PerDiem["LAS"] = 70.0

	data, err := cfg.Serialize()
	require.NoError(t, err)

	parsed, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, ":9999", parsed.Server.Address)
	assert.Equal(t, 70.0, parsed.Rates.PerDiem["LAS"])
}
