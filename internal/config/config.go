package config

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	DefaultPropertiesFile   = "data/enRole.properties"
	DefaultDecryptCacheSize = 16
	DefaultStatsAddress     = "localhost:8125"
)

type Config struct {
	ItimHome         string             `json:"itim_home"`
	PropertiesFile   string             `json:"properties_file"` // relative to itim_home unless absolute
	Overrides        map[string]string  `json:"overrides"`       // checked before the properties file
	Verbose          bool               `json:"verbose"`
	DecryptCacheSize int                `json:"decrypt_cache_size"`
	Stats            StatsConfiguration `json:"stats"`
}

type StatsConfiguration struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
	Prefix  string `json:"prefix"`
}

// Load reads a JSON config file and fills in defaults
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	c.ApplyDefaults()
	return c, nil
}

func (c *Config) ApplyDefaults() {
	if c.PropertiesFile == "" {
		c.PropertiesFile = DefaultPropertiesFile
	}
	if c.DecryptCacheSize <= 0 {
		c.DecryptCacheSize = DefaultDecryptCacheSize
	}
	if c.Overrides == nil {
		c.Overrides = map[string]string{}
	}
	// the product home may also be given the old way, as an itim.home override
	if c.ItimHome == "" {
		c.ItimHome = c.Overrides["itim.home"]
	} else if _, ok := c.Overrides["itim.home"]; !ok {
		c.Overrides["itim.home"] = c.ItimHome
	}
	if c.Stats.Address == "" {
		c.Stats.Address = os.Getenv("STATSD_SERVER")
	}
	if c.Stats.Address == "" {
		c.Stats.Address = DefaultStatsAddress
	}
}
