package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound indicates no configuration file exists at the given path.
// Callers typically fall back to Default when they see it.
var ErrNotFound = errors.New("configuration file not found")

// Config represents a protoreg.yaml configuration file.
type Config struct {
	// Networks are the partition directory names under the registry root.
	Networks []string `yaml:"networks"`

	// CanonicalFile is the file within each partition holding the
	// canonical contract set. It is excluded from corpus checks.
	CanonicalFile string `yaml:"canonical_file"`

	// Exclude lists documentation or other non-protocol files to skip.
	Exclude []string `yaml:"exclude,omitempty"`

	// CategoriesFile is the allowed-category list, relative to the
	// registry root.
	CategoriesFile string `yaml:"categories_file"`

	// Probe configures the optional network liveness pass.
	Probe ProbeConfig `yaml:"probe,omitempty"`

	// Export configures the exporter defaults.
	Export ExportConfig `yaml:"export,omitempty"`
}

// ProbeConfig holds the settings for contract verification and link checks.
type ProbeConfig struct {
	// APIBaseURL is the contract-verification endpoint.
	APIBaseURL string `yaml:"api_base_url"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `yaml:"api_key_env"`

	// Workers is the probe pool size.
	Workers int `yaml:"workers"`

	// RequestDelay throttles request launches, as a duration string
	// (e.g. "200ms").
	RequestDelay string `yaml:"request_delay"`

	// CacheURL is an optional Redis URL for the verification cache.
	// Empty disables caching.
	CacheURL string `yaml:"cache_url,omitempty"`

	// CacheTTL is how long verified addresses stay cached, as a duration
	// string (e.g. "24h").
	CacheTTL string `yaml:"cache_ttl"`
}

// GetRequestDelay returns the parsed request delay, defaulting to 200ms when
// unset or unparseable.
func (p *ProbeConfig) GetRequestDelay() time.Duration {
	if p.RequestDelay == "" {
		return 200 * time.Millisecond
	}
	d, err := time.ParseDuration(p.RequestDelay)
	if err != nil {
		return 200 * time.Millisecond
	}
	return d
}

// GetCacheTTL returns the parsed cache TTL, defaulting to 24h when unset or
// unparseable.
func (p *ProbeConfig) GetCacheTTL() time.Duration {
	if p.CacheTTL == "" {
		return 24 * time.Hour
	}
	d, err := time.ParseDuration(p.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// ExportConfig holds exporter defaults.
type ExportConfig struct {
	// Format is "csv" or "json".
	Format string `yaml:"format"`

	// Out is the output file name pattern; %s is replaced with the
	// network name.
	Out string `yaml:"out"`
}

// Default returns the configuration used when no protoreg.yaml exists.
func Default() *Config {
	return &Config{
		Networks:       []string{"testnet", "mainnet"},
		CanonicalFile:  "canonical.jsonc",
		CategoriesFile: "categories.json",
		Probe: ProbeConfig{
			APIBaseURL:   "https://api.blockvision.org/v2/monad/contract/source/code",
			APIKeyEnv:    "BLOCKVISION_API_KEY",
			Workers:      5,
			RequestDelay: "200ms",
			CacheTTL:     "24h",
		},
		Export: ExportConfig{
			Format: "csv",
			Out:    "protocols-%s.csv",
		},
	}
}

// Load reads a configuration file. If path is a directory, protoreg.yaml
// then protoreg.yml are tried inside it. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		yamlPath := filepath.Join(path, "protoreg.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "protoreg.yml")
			if _, err := os.Stat(ymlPath); err != nil {
				return nil, fmt.Errorf("%w: no protoreg.yaml or protoreg.yml in %s", ErrNotFound, path)
			}
			configPath = ymlPath
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for values the tool cannot work with.
func (c *Config) Validate() error {
	if len(c.Networks) == 0 {
		return fmt.Errorf("config declares no networks")
	}
	if c.CanonicalFile == "" {
		return fmt.Errorf("config declares no canonical_file")
	}
	if c.CategoriesFile == "" {
		return fmt.Errorf("config declares no categories_file")
	}
	if c.Probe.Workers < 0 {
		return fmt.Errorf("probe workers cannot be negative")
	}
	if c.Export.Format != "" && c.Export.Format != "csv" && c.Export.Format != "json" {
		return fmt.Errorf("invalid export format: %s", c.Export.Format)
	}
	return nil
}

// HasNetwork reports whether the named partition is configured.
func (c *Config) HasNetwork(network string) bool {
	return slices.Contains(c.Networks, network)
}

// Skip reports whether a file is outside the corpus: the canonical record
// itself or an explicitly excluded file.
func (c *Config) Skip(file string) bool {
	return file == c.CanonicalFile || slices.Contains(c.Exclude, file)
}
