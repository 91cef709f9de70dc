// Package config loads clustering and logging settings.
//
// Precedence, lowest first: built-in defaults, .kokkai/config.yaml,
// KOKKAI_* environment variables (a .env file in the project root is loaded
// into the environment first), command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/corey/kokkai/internal/domain/cluster"
)

// Config is the top-level configuration.
type Config struct {
	Cluster ClusterConfig `yaml:"cluster"`
	Match   MatchConfig   `yaml:"match"`
	Logging LoggingConfig `yaml:"logging"`
}

// ClusterConfig mirrors cluster.Options.
type ClusterConfig struct {
	CoreThreshold float64 `yaml:"coreThreshold"`
	SubThreshold  float64 `yaml:"subThreshold"`
	MaxClusters   int     `yaml:"maxClusters"`
	MinCoreSize   int     `yaml:"minCoreSize"`
	Workers       int     `yaml:"workers"`
	CleanText     bool    `yaml:"cleanText"` // input is raw minutes text
}

// MatchConfig controls clip matching and topic suggestions.
type MatchConfig struct {
	TopK         int `yaml:"topK"`
	MinPhraseLen int `yaml:"minPhraseLen"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	o := cluster.DefaultOptions()
	return &Config{
		Cluster: ClusterConfig{
			CoreThreshold: o.CoreThreshold,
			SubThreshold:  o.SubThreshold,
			MaxClusters:   o.MaxClusters,
			MinCoreSize:   o.MinCoreSize,
		},
		Match: MatchConfig{
			TopK:         5,
			MinPhraseLen: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path (a missing file is fine), then applies
// environment overrides. envFile, when non-empty and present, is loaded into
// the process environment first without overriding variables already set.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ClusterOptions converts the cluster section to cluster.Options.
func (c *Config) ClusterOptions() cluster.Options {
	return cluster.Options{
		CoreThreshold: c.Cluster.CoreThreshold,
		SubThreshold:  c.Cluster.SubThreshold,
		MaxClusters:   c.Cluster.MaxClusters,
		MinCoreSize:   c.Cluster.MinCoreSize,
		Workers:       c.Cluster.Workers,
	}
}

func applyEnvOverrides(cfg *Config) error {
	floats := map[string]*float64{
		"KOKKAI_CORE_THRESHOLD": &cfg.Cluster.CoreThreshold,
		"KOKKAI_SUB_THRESHOLD":  &cfg.Cluster.SubThreshold,
	}
	for key, dst := range floats {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = f
		}
	}

	ints := map[string]*int{
		"KOKKAI_MAX_CLUSTERS":   &cfg.Cluster.MaxClusters,
		"KOKKAI_MIN_CORE_SIZE":  &cfg.Cluster.MinCoreSize,
		"KOKKAI_WORKERS":        &cfg.Cluster.Workers,
		"KOKKAI_TOP_K":          &cfg.Match.TopK,
		"KOKKAI_MIN_PHRASE_LEN": &cfg.Match.MinPhraseLen,
	}
	for key, dst := range ints {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}

	if v := os.Getenv("KOKKAI_CLEAN_TEXT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("KOKKAI_CLEAN_TEXT: %w", err)
		}
		cfg.Cluster.CleanText = b
	}
	if v := os.Getenv("KOKKAI_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("KOKKAI_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	return nil
}
