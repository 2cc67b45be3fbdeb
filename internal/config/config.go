// Package config loads and persists the application configuration: units,
// provider API keys, logging, storage, and the user's saved airports. Keys
// are stored base64-obfuscated, which keeps them out of casual sight in the
// file without pretending to be real encryption.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultPath is used when no -config flag is given.
const DefaultPath = "config.toml"

// Config is the root configuration structure.
type Config struct {
	Units         string         `toml:"units"`            // "metric" or "imperial"
	APIKeyEnc     string         `toml:"api_key"`          // OpenWeatherMap key, base64-obfuscated
	OneCallKeyEnc string         `toml:"one_call_api_key"` // One Call 3.0 key, base64-obfuscated
	Logging       LoggingConfig  `toml:"logging"`
	Server        ServerConfig   `toml:"server"`
	Storage       StorageConfig  `toml:"storage"`
	Airports      []SavedAirport `toml:"airports"`

	path string
}

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", or "error"
	Format string `toml:"format"` // "json" or "console"
}

// ServerConfig controls the optional HTTP serve mode.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig controls the report history store.
type StorageConfig struct {
	SQLitePath   string `toml:"sqlite_path"`   // empty disables history
	HistoryLimit int    `toml:"history_limit"` // max rows returned by history queries
}

// SavedAirport is a user-stored station with resolved coordinates.
type SavedAirport struct {
	ICAO      string  `toml:"icao"`
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		Units: "metric",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Storage: StorageConfig{
			SQLitePath:   "metgen.db",
			HistoryLimit: 20,
		},
	}
}

// Load reads the config file at path, creating a default one when it does
// not exist yet. Environment variables OPENWEATHER_API_KEY and
// ONECALL_API_KEY (optionally from a .env file) override the stored keys.
// The returned bool reports whether this was a first run.
func Load(path string) (*Config, bool, error) {
	if path == "" {
		path = DefaultPath
	}

	// A missing .env file is fine.
	_ = godotenv.Load()

	firstRun := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		cfg.path = path
		if err := cfg.Save(); err != nil {
			return nil, false, fmt.Errorf("writing default config: %w", err)
		}
		firstRun = true
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, false, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg.path = path

	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.APIKeyEnc = EncodeKey(v)
	}
	if v := os.Getenv("ONECALL_API_KEY"); v != "" {
		cfg.OneCallKeyEnc = EncodeKey(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return cfg, firstRun, nil
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("creating config %s: %w", c.path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// Validate checks the fields the rest of the application depends on.
func (c *Config) Validate() error {
	switch c.Units {
	case "metric", "imperial":
	default:
		return fmt.Errorf("units must be \"metric\" or \"imperial\", got %q", c.Units)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// APIKey returns the decoded OpenWeatherMap key, or "" when unset.
func (c *Config) APIKey() string { return DecodeKey(c.APIKeyEnc) }

// OneCallKey returns the decoded One Call key, or "" when unset.
func (c *Config) OneCallKey() string { return DecodeKey(c.OneCallKeyEnc) }

// SetAPIKey stores the OpenWeatherMap key obfuscated.
func (c *Config) SetAPIKey(key string) { c.APIKeyEnc = EncodeKey(key) }

// SetOneCallKey stores the One Call key obfuscated.
func (c *Config) SetOneCallKey(key string) { c.OneCallKeyEnc = EncodeKey(key) }

// AddAirport stores a saved airport. It reports false when the ICAO is
// already present; ICAOs are kept uppercase and unique.
func (c *Config) AddAirport(icao string, lat, lon float64) bool {
	icao = strings.ToUpper(strings.TrimSpace(icao))
	for _, a := range c.Airports {
		if a.ICAO == icao {
			return false
		}
	}
	c.Airports = append(c.Airports, SavedAirport{ICAO: icao, Latitude: lat, Longitude: lon})
	return true
}

// RemoveAirport deletes a saved airport by ICAO, reporting whether one was
// removed.
func (c *Config) RemoveAirport(icao string) bool {
	icao = strings.ToUpper(strings.TrimSpace(icao))
	for i, a := range c.Airports {
		if a.ICAO == icao {
			c.Airports = append(c.Airports[:i], c.Airports[i+1:]...)
			return true
		}
	}
	return false
}

// FindAirport looks up a saved airport by ICAO.
func (c *Config) FindAirport(icao string) (SavedAirport, bool) {
	icao = strings.ToUpper(strings.TrimSpace(icao))
	for _, a := range c.Airports {
		if a.ICAO == icao {
			return a, true
		}
	}
	return SavedAirport{}, false
}

// EncodeKey obfuscates an API key for storage.
func EncodeKey(key string) string {
	if key == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(key))
}

// DecodeKey reverses EncodeKey. Malformed input decodes to "".
func DecodeKey(encoded string) string {
	if encoded == "" {
		return ""
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	return string(raw)
}
