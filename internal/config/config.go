// Package config loads and saves the CLI configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration
type Config struct {
	// Canvas instance URL, for example https://canvas.example.edu
	BaseURL string `yaml:"base_url,omitempty"`

	// Default output format (text, json, ndjson, table, yaml)
	Output string `yaml:"output,omitempty"`

	// Default color mode (auto, always, never)
	Color string `yaml:"color,omitempty"`

	// Course ID used when a command is run without --course
	DefaultCourse int64 `yaml:"default_course,omitempty"`

	// Default profile name (for multi-instance support)
	DefaultProfile string `yaml:"default_profile,omitempty"`

	// Profiles configuration
	Profiles map[string]ProfileConfig `yaml:"profiles,omitempty"`
}

// ProfileConfig represents instance-specific configuration
type ProfileConfig struct {
	// Profile display name
	Name string `yaml:"name,omitempty"`

	// Canvas instance URL for this profile
	BaseURL string `yaml:"base_url,omitempty"`

	// Token source: "keyring", "env:VAR_NAME", or direct token value
	TokenSource string `yaml:"token_source,omitempty"`

	// Override output format for this profile
	Output string `yaml:"output,omitempty"`
}

// configPathFunc is the function used to get the default config path
// It can be overridden for testing
var configPathFunc = defaultConfigPath

// SetConfigPathFunc sets the config path function for testing.
// Returns the original function so it can be restored.
func SetConfigPathFunc(fn func() (string, error)) func() (string, error) {
	orig := configPathFunc
	configPathFunc = fn
	return orig
}

// defaultConfigPath returns ~/.config/canvas-cli/config.yaml
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "canvas-cli", "config.yaml"), nil
}

// DefaultConfigPath returns ~/.config/canvas-cli/config.yaml
func DefaultConfigPath() (string, error) {
	return configPathFunc()
}

// Load loads config from the default path, returns empty config if not found
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil // Return empty config if file doesn't exist
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return &cfg, nil
}

// Save saves config to the default path
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveToPath(path)
}

// SaveToPath saves config to a specific path
func (c *Config) SaveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// GetProfile returns the profile configuration by name
func (c *Config) GetProfile(name string) (*ProfileConfig, error) {
	if c.Profiles == nil {
		return nil, fmt.Errorf("profile %q not found", name)
	}

	p, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found", name)
	}

	return &p, nil
}

// GetDefaultProfile returns the default profile configuration
func (c *Config) GetDefaultProfile() (*ProfileConfig, error) {
	if c.DefaultProfile != "" {
		return c.GetProfile(c.DefaultProfile)
	}

	// With exactly one profile configured, use it
	if len(c.Profiles) == 1 {
		for _, p := range c.Profiles {
			p := p
			return &p, nil
		}
	}

	return nil, fmt.Errorf("no default profile configured")
}

// SetDefaultProfile sets the default profile by name
func (c *Config) SetDefaultProfile(name string) error {
	if _, err := c.GetProfile(name); err != nil {
		return err
	}

	c.DefaultProfile = name

	return nil
}

// AddProfile adds a new profile to the configuration
func (c *Config) AddProfile(name string, p ProfileConfig) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	if c.Profiles == nil {
		c.Profiles = make(map[string]ProfileConfig)
	}

	if _, exists := c.Profiles[name]; exists {
		return fmt.Errorf("profile %q already exists", name)
	}

	p.Name = name

	// The first profile becomes the default
	if len(c.Profiles) == 0 {
		c.DefaultProfile = name
	}

	c.Profiles[name] = p
	return nil
}

// RemoveProfile removes a profile from the configuration
func (c *Config) RemoveProfile(name string) error {
	if c.Profiles == nil {
		return fmt.Errorf("profile %q not found", name)
	}

	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile %q not found", name)
	}

	isDefault := c.DefaultProfile == name

	delete(c.Profiles, name)

	if isDefault {
		c.DefaultProfile = ""

		// If there's exactly one profile left, make it the default
		if len(c.Profiles) == 1 {
			for pName := range c.Profiles {
				c.DefaultProfile = pName
				break
			}
		}
	}

	return nil
}

// ListProfiles returns a sorted list of all profile names
func (c *Config) ListProfiles() []string {
	if c.Profiles == nil {
		return []string{}
	}

	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
