// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: CLI flags > environment variables > config file > embedded > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/videolighter/desktop-host/internal/messaging"
)

const (
	// DefaultMaxMessageBytes is the native messaging frame limit (1MB).
	DefaultMaxMessageBytes = messaging.DefaultMaxMessageSize

	maxMessageBytesLimit = messaging.MaxMessageSizeLimit
)

// Config holds all host configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Reveal    RevealConfig    `yaml:"reveal"`
	MachineID MachineIDConfig `yaml:"machine_id"`
	Host      HostConfig      `yaml:"host"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// RevealConfig names the executables used to reveal a file in the file manager.
type RevealConfig struct {
	Explorer string `yaml:"explorer"` // Windows file manager
	Finder   string `yaml:"finder"`   // macOS "open" utility
	Opener   string `yaml:"opener"`   // generic opener on Linux and other POSIX systems
}

// MachineIDConfig holds machine identifier settings.
type MachineIDConfig struct {
	// Salt, when set, is mixed into the raw machine ID with SHA-256 so that
	// different applications derive different stable identifiers.
	Salt string `yaml:"salt"`
}

// HostConfig holds native messaging host settings.
type HostConfig struct {
	MaxMessageBytes int `yaml:"max_message_bytes"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
		Reveal: RevealConfig{
			Explorer: "explorer",
			Finder:   "open",
			Opener:   "xdg-open",
		},
		Host: HostConfig{
			MaxMessageBytes: DefaultMaxMessageBytes,
		},
	}
}

// CLIOverrides holds values from command-line flags.
// Empty strings are treated as "not set" and skipped.
type CLIOverrides struct {
	LogLevel string
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > external YAML file > embedded bytes > defaults.
//
// An optional configPath argument controls external-file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value  → use that path ("" means no external file)
func LoadLayered(cli CLIOverrides, embedded []byte, configPath ...string) (*Config, error) {
	cfg := DefaultConfig()

	if len(embedded) > 0 {
		if err := yaml.Unmarshal(embedded, cfg); err != nil {
			return nil, fmt.Errorf("parsing embedded config: %w", err)
		}
	}

	var filePath string
	if len(configPath) > 0 {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", filePath, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}

	return cfg, nil
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0640)
}

func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv("VL_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if file := os.Getenv("VL_LOG_FILE"); file != "" {
		cfg.Logging.File = file
	}
	if salt := os.Getenv("VL_MACHINE_ID_SALT"); salt != "" {
		cfg.MachineID.Salt = salt
	}
}

// Validate checks that the configuration can be used to run the host.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	if c.Reveal.Explorer == "" || c.Reveal.Finder == "" || c.Reveal.Opener == "" {
		return fmt.Errorf("reveal executables must not be empty")
	}
	if c.Host.MaxMessageBytes <= 0 || c.Host.MaxMessageBytes > maxMessageBytesLimit {
		return fmt.Errorf("host.max_message_bytes must be in (0, %d] (got: %d)", maxMessageBytesLimit, c.Host.MaxMessageBytes)
	}
	return nil
}
