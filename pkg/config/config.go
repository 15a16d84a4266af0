// Package config handles loading and managing Atlas Fit configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/atlascommand/atlasfit/pkg/fitscore"
)

// Config is the top-level configuration for Atlas Fit.
type Config struct {
	Scoring ScoringConfig `yaml:"scoring"`
	Service ServiceConfig `yaml:"service"`
}

// ScoringConfig carries overrides for the scoring weights. A zero value
// leaves the corresponding default untouched.
type ScoringConfig struct {
	EquipmentMatch    int `yaml:"equipment_match"`
	EquipmentNeutral  int `yaml:"equipment_neutral"`
	EquipmentMismatch int `yaml:"equipment_mismatch"`
	RegionMatch       int `yaml:"region_match"`
	RegionNeutral     int `yaml:"region_neutral"`
	RegionMiss        int `yaml:"region_miss"`
	AvoidStatePenalty int `yaml:"avoid_state_penalty"`
	HomeBaseBonus     int `yaml:"home_base_bonus"`

	ToleranceBandMiles float64 `yaml:"tolerance_band_miles"`
}

// ServiceConfig controls the atlasfitd daemon.
type ServiceConfig struct {
	Addr           string `yaml:"addr"`
	DatabaseURL    string `yaml:"database_url"`
	RedisAddr      string `yaml:"redis_addr"`
	StorageBackend string `yaml:"storage_backend"` // local, s3, gcs
	StoragePath    string `yaml:"storage_path"`    // local backend root
	Bucket         string `yaml:"bucket"`          // s3/gcs bucket
	APIKey         string `yaml:"api_key"`
	WebhookSecret  string `yaml:"webhook_secret"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Addr:           ":8080",
			DatabaseURL:    "postgres://localhost:5432/atlasfit?sslmode=disable",
			RedisAddr:      "localhost:6379",
			StorageBackend: "local",
			StoragePath:    "/tmp/atlasfit-data",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// FindConfigFile looks for .atlasfit/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".atlasfit", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Weights materializes the scoring weights with any configured overrides
// applied over the defaults.
func (c *Config) Weights() fitscore.Weights {
	w := fitscore.Defaults()
	s := c.Scoring

	if s.EquipmentMatch > 0 {
		w.EquipmentMatch = s.EquipmentMatch
	}
	if s.EquipmentNeutral > 0 {
		w.EquipmentNeutral = s.EquipmentNeutral
	}
	if s.EquipmentMismatch > 0 {
		w.EquipmentMismatch = s.EquipmentMismatch
	}
	if s.RegionMatch > 0 {
		w.RegionMatch = s.RegionMatch
	}
	if s.RegionNeutral > 0 {
		w.RegionNeutral = s.RegionNeutral
	}
	if s.RegionMiss > 0 {
		w.RegionMiss = s.RegionMiss
	}
	if s.AvoidStatePenalty > 0 {
		w.AvoidStatePenalty = s.AvoidStatePenalty
	}
	if s.HomeBaseBonus > 0 {
		w.HomeBaseBonus = s.HomeBaseBonus
	}
	if s.ToleranceBandMiles > 0 {
		w.ToleranceBandMiles = s.ToleranceBandMiles
	}

	return w
}

// Engine builds a scoring engine from the configured weights.
func (c *Config) Engine() *fitscore.Engine {
	return fitscore.NewEngine(fitscore.CategoriesFromWeights(c.Weights())...)
}
