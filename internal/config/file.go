package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// ProjectConfigDir is the directory name for project-level configuration
const ProjectConfigDir = ".build-shell"

// FileConfig represents the configuration file structure
type FileConfig struct {
	// Prompt template, e.g. "{project}@{toolchain} ({version}) > "
	Prompt string `yaml:"prompt,omitempty"`

	// Toolchain settings
	DefaultToolchain string   `yaml:"default_toolchain,omitempty"`
	Toolchains       []string `yaml:"toolchains,omitempty"`

	// Binary names
	Selector string `yaml:"selector,omitempty"`
	Tool     string `yaml:"tool,omitempty"`

	// Manifest file name, defaults to Cargo.toml
	Manifest string `yaml:"manifest,omitempty"`

	// Default flags
	Defaults *DefaultsConfig `yaml:"defaults,omitempty"`
}

// DefaultsConfig holds default flag values
type DefaultsConfig struct {
	Render    bool   `yaml:"render,omitempty"`
	Verbose   bool   `yaml:"verbose,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of
// priority): project directory first, then the user config locations.
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory (project-level config)
	paths = append(paths, filepath.Join(".", ProjectConfigDir, ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "build-shell", ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "build-shell", ConfigFileName))
	}

	return paths
}

// LoadConfigFile attempts to load configuration from the first existing file.
func LoadConfigFile() (*FileConfig, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return loadConfigFromPath(path)
		}
	}

	// No config file found, return empty config
	return &FileConfig{}, nil
}

// loadConfigFromPath loads config from a specific path
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config.
// File config has lower priority than environment variables and CLI flags.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if c.Prompt == "" && fc.Prompt != "" {
		c.Prompt = fc.Prompt
	}
	if c.DefaultToolchain == "" && fc.DefaultToolchain != "" {
		c.DefaultToolchain = fc.DefaultToolchain
	}
	if len(c.Toolchains) == 0 && len(fc.Toolchains) > 0 {
		c.Toolchains = append([]string(nil), fc.Toolchains...)
	}
	if c.Selector == "" && fc.Selector != "" {
		c.Selector = fc.Selector
	}
	if c.Tool == "" && fc.Tool != "" {
		c.Tool = fc.Tool
	}
	if c.Manifest == "" && fc.Manifest != "" {
		c.Manifest = fc.Manifest
	}

	// Defaults only apply for "true"/non-empty values in the config file;
	// a flag explicitly set on the command line cannot be distinguished
	// from its zero value, so false never overrides.
	if fc.Defaults != nil {
		if fc.Defaults.Render && !c.Render {
			c.Render = true
		}
		if fc.Defaults.Verbose && !c.Verbose {
			c.Verbose = true
		}
		if c.LogLevel == "" && fc.Defaults.LogLevel != "" {
			c.LogLevel = fc.Defaults.LogLevel
		}
		if c.LogFormat == "" && fc.Defaults.LogFormat != "" {
			c.LogFormat = fc.Defaults.LogFormat
		}
	}
}

// CreateDefaultConfigFile creates a commented default config file in the
// user config directory and returns its path.
func CreateDefaultConfigFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, "build-shell")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	defaultConfig := `# build-shell configuration
# Location: ~/.config/build-shell/config.yaml
# A project-level .build-shell/config.yaml takes precedence.

# Prompt template. Placeholders: {project}, {version}, {toolchain}
# prompt: "{project}@{toolchain} ({version}) > "

# Toolchain the shell starts out on
# default_toolchain: stable

# Toolchains iterated by the "+ <command>" fan-out
# toolchains:
#   - stable
#   - beta
#   - nightly

# Binary names
# selector: rustup   # toolchain selector, invoked as: selector run <tc> <tool> ...
# tool: cargo        # build tool every command is handed to
# manifest: Cargo.toml

# Default flags for every session
# defaults:
#   render: true       # render help text as markdown
#   verbose: false
#   log_level: error   # debug, info, warn, error, none
#   log_format: text   # text or json
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
