package clientcli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultEndpoint is the default gateway endpoint URL.
const DefaultEndpoint = "http://localhost:7071"

// Profile holds connection settings for one gateway.
type Profile struct {
	Name        string `yaml:"name"`
	Endpoint    string `yaml:"endpoint"`
	FunctionKey string `yaml:"function_key,omitempty"`
	Default     bool   `yaml:"default,omitempty"`
}

// ConfigFile is the on-disk profile list.
type ConfigFile struct {
	Profiles []Profile `yaml:"profiles"`
}

func (c *ConfigFile) index(name string) int {
	return slices.IndexFunc(c.Profiles, func(p Profile) bool { return p.Name == name })
}

// GetProfile returns the named profile, or the default profile when name is
// empty. Without a profile marked default the first one is used.
func (c *ConfigFile) GetProfile(name string) (*Profile, error) {
	if len(c.Profiles) == 0 {
		return nil, ErrNoProfiles
	}

	if name == "" {
		for i := range c.Profiles {
			if c.Profiles[i].Default {
				return &c.Profiles[i], nil
			}
		}
		return &c.Profiles[0], nil
	}

	if i := c.index(name); i >= 0 {
		return &c.Profiles[i], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}

// SetProfile adds p or replaces the profile with the same name. When p is
// marked default every other profile loses the flag.
func (c *ConfigFile) SetProfile(p Profile) {
	if p.Default {
		for i := range c.Profiles {
			c.Profiles[i].Default = false
		}
	}
	if i := c.index(p.Name); i >= 0 {
		c.Profiles[i] = p
		return
	}
	c.Profiles = append(c.Profiles, p)
}

// RemoveProfile removes a profile by name.
func (c *ConfigFile) RemoveProfile(name string) error {
	i := c.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	c.Profiles = slices.Delete(c.Profiles, i, i+1)
	return nil
}

// SetDefault marks name as the only default profile.
func (c *ConfigFile) SetDefault(name string) error {
	if c.index(name) < 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	for i := range c.Profiles {
		c.Profiles[i].Default = c.Profiles[i].Name == name
	}
	return nil
}

// DefaultName returns the name GetProfile("") resolves to, or "" without
// profiles.
func (c *ConfigFile) DefaultName() string {
	p, err := c.GetProfile("")
	if err != nil {
		return ""
	}
	return p.Name
}

// Save writes the config to path with owner-only permissions, creating the
// parent directory if needed.
func (c *ConfigFile) Save(path string) error {
	cleanPath := filepath.Clean(path)

	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(cleanPath, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// LoadConfigFile loads the profile list from path.
func LoadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(filepath.Clean(path)) //#nosec G304 -- path is user-provided config file
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg ConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &cfg, nil
}

// DefaultConfigPath returns ~/.lakegate/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lakegate", "config.yaml")
}

// Config holds resolved client settings for a single gateway.
type Config struct {
	Endpoint    string
	FunctionKey string
}

// WithDefaults returns a copy of the config with default values applied.
func (c *Config) WithDefaults() *Config {
	cfg := *c
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &cfg
}

// ConfigFromProfile creates a Config from a Profile.
func ConfigFromProfile(p *Profile) *Config {
	if p == nil {
		return &Config{}
	}
	return &Config{Endpoint: p.Endpoint, FunctionKey: p.FunctionKey}
}

// ConfigFromEnv reads LAKEGATE_ENDPOINT and LAKEGATE_FUNCTION_KEY.
func ConfigFromEnv() *Config {
	return &Config{
		Endpoint:    os.Getenv("LAKEGATE_ENDPOINT"),
		FunctionKey: os.Getenv("LAKEGATE_FUNCTION_KEY"),
	}
}

// ProfileFromEnv returns the profile name from LAKEGATE_PROFILE.
func ProfileFromEnv() string {
	return os.Getenv("LAKEGATE_PROFILE")
}

// ConfigPathFromEnv returns the config file path from LAKEGATE_CONFIG.
func ConfigPathFromEnv() string {
	return os.Getenv("LAKEGATE_CONFIG")
}

// MergeConfig merges configs left to right. Empty fields never override.
func MergeConfig(configs ...*Config) *Config {
	result := &Config{}
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if cfg.Endpoint != "" {
			result.Endpoint = cfg.Endpoint
		}
		if cfg.FunctionKey != "" {
			result.FunctionKey = cfg.FunctionKey
		}
	}
	return result
}
