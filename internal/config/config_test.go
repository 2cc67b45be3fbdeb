package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_firstRunCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, firstRun, err := Load(path)
	require.NoError(t, err)
	assert.True(t, firstRun)
	assert.Equal(t, "metric", cfg.Units)
	assert.FileExists(t, path)

	// Second load sees the existing file.
	_, firstRun, err = Load(path)
	require.NoError(t, err)
	assert.False(t, firstRun)
}

func TestLoad_roundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, _, err := Load(path)
	require.NoError(t, err)

	cfg.Units = "imperial"
	cfg.SetAPIKey("secret-key")
	assert.True(t, cfg.AddAirport("kjfk", 40.6413, -73.7781))
	require.NoError(t, cfg.Save())

	loaded, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "imperial", loaded.Units)
	assert.Equal(t, "secret-key", loaded.APIKey())

	airport, ok := loaded.FindAirport("KJFK")
	require.True(t, ok)
	assert.InDelta(t, 40.6413, airport.Latitude, 1e-9)
}

func TestLoad_envOverridesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("OPENWEATHER_API_KEY", "from-env")

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey())
}

func TestValidate(t *testing.T) {
	t.Parallel()
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.Units = "nautical"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestAirportCRUD(t *testing.T) {
	t.Parallel()
	cfg := Default()

	assert.True(t, cfg.AddAirport("EGLL", 51.4706, -0.4619))
	assert.False(t, cfg.AddAirport("egll", 0, 0), "duplicate ICAO must be rejected")
	assert.Len(t, cfg.Airports, 1)

	assert.False(t, cfg.RemoveAirport("KSEA"))
	assert.True(t, cfg.RemoveAirport("EGLL"))
	assert.Empty(t, cfg.Airports)
}

func TestKeyObfuscation(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", EncodeKey(""))
	assert.Equal(t, "", DecodeKey(""))
	assert.Equal(t, "", DecodeKey("not base64!!"))
	assert.Equal(t, "abc123", DecodeKey(EncodeKey("abc123")))
}

func TestMain(m *testing.M) {
	// Keys from the developer environment must not leak into tests.
	os.Unsetenv("OPENWEATHER_API_KEY")
	os.Unsetenv("ONECALL_API_KEY")
	os.Exit(m.Run())
}
