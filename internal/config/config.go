package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"xrename/internal/errors"
)

// Rules holds the optional name transformations. Each rule is independently
// enabled by being non-empty (or true for booleans).
type Rules struct {
	Prefix    string `yaml:"prefix"`    // Prepended to the base name
	Suffix    string `yaml:"suffix"`    // Appended to the base name, before the extension
	Number    bool   `yaml:"number"`    // Append a sequential number (_001, _002, ...)
	Extension string `yaml:"extension"` // Replacement extension; leading dot optional
	Pattern   string `yaml:"pattern"`   // Custom template, e.g. "file_{index:03d}"; wins over prefix/suffix/number
}

// Filter restricts which discovered files join the batch.
type Filter struct {
	Extensions []string `yaml:"extensions"` // Only these extensions are processed (".jpg", ".png")
	Match      string   `yaml:"match"`      // Glob over the file name, e.g. "IMG_*"
}

// Settings holds run-level behavior.
type Settings struct {
	Recursive bool   `yaml:"recursive"` // Walk subdirectories
	DryRun    bool   `yaml:"dry_run"`   // Compute and report the plan without renaming
	LogFile   string `yaml:"log_file"`  // Plan log destination; empty disables the log
}

// Config represents the application configuration structure.
type Config struct {
	Rules    Rules    `yaml:"rules"`
	Filter   Filter   `yaml:"filter"`
	Settings Settings `yaml:"settings"`
}

// characters never allowed in user-supplied name fragments
const illegalNameChars = "/\\\x00"

// LoadConfig loads configuration from the default location
// (~/.config/xrename/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "xrename", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if tempCfg.Rules.Prefix != "" {
		cfg.Rules.Prefix = tempCfg.Rules.Prefix
	}
	if tempCfg.Rules.Suffix != "" {
		cfg.Rules.Suffix = tempCfg.Rules.Suffix
	}
	cfg.Rules.Number = tempCfg.Rules.Number
	if tempCfg.Rules.Extension != "" {
		cfg.Rules.Extension = tempCfg.Rules.Extension
	}
	if tempCfg.Rules.Pattern != "" {
		cfg.Rules.Pattern = tempCfg.Rules.Pattern
	}
	if len(tempCfg.Filter.Extensions) > 0 {
		cfg.Filter.Extensions = tempCfg.Filter.Extensions
	}
	if tempCfg.Filter.Match != "" {
		cfg.Filter.Match = tempCfg.Filter.Match
	}
	cfg.Settings.Recursive = tempCfg.Settings.Recursive
	cfg.Settings.DryRun = tempCfg.Settings.DryRun
	if tempCfg.Settings.LogFile != "" {
		cfg.Settings.LogFile = tempCfg.Settings.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	return &Config{}
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid. All user-supplied name
// fragments are rejected before any filesystem access when they contain
// path separators or NUL bytes.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", nil)
	}

	fragments := map[string]string{
		"prefix":    c.Rules.Prefix,
		"suffix":    c.Rules.Suffix,
		"extension": c.Rules.Extension,
		"pattern":   c.Rules.Pattern,
	}
	for param, value := range fragments {
		if strings.ContainsAny(value, illegalNameChars) {
			return errors.NewNameError(fmt.Sprintf("%s contains illegal characters", param), value)
		}
	}

	for _, ext := range c.Filter.Extensions {
		trimmed := strings.TrimPrefix(ext, ".")
		if trimmed == "" {
			return errors.NewConfigError("empty extension in filter", "filter.extensions", nil)
		}
		if strings.ContainsAny(trimmed, illegalNameChars+".") {
			return errors.NewNameError("filter extension contains illegal characters", ext)
		}
	}

	if c.Filter.Match != "" {
		if _, err := glob.Compile(c.Filter.Match); err != nil {
			return errors.NewConfigError("invalid match glob", c.Filter.Match, err)
		}
	}

	return nil
}

// FilterExtensions returns the extension filter normalized for comparison:
// lowercase with a leading dot. Returns nil when no filter is configured.
func (c *Config) FilterExtensions() []string {
	if len(c.Filter.Extensions) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(c.Filter.Extensions))
	for _, ext := range c.Filter.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}

// NewExtension returns the replacement extension with a leading dot,
// preserving the case the user supplied. Empty when no replacement is set.
func (c *Config) NewExtension() string {
	ext := strings.TrimSpace(c.Rules.Extension)
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// CompileMatch compiles the filename glob filter. Returns nil when unset.
func (c *Config) CompileMatch() (glob.Glob, error) {
	if c.Filter.Match == "" {
		return nil, nil
	}
	return glob.Compile(c.Filter.Match)
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Rules.Prefix = "IMG_"
	cfg.Filter.Extensions = []string{".jpg", ".png"}
	cfg.Settings.DryRun = true
	return cfg
}
