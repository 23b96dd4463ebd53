package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the compiler's tunable settings.
type Config struct {
	// Trampoline island sizing
	Trampoline struct {
		IslandMargin int `toml:"island_margin"`
	} `toml:"trampoline"`

	// Verification strictness
	Verify struct {
		RequireFullCoverage bool   `toml:"require_full_coverage"`
		Assembler           string `toml:"assembler"`
		ObjdumpTool         string `toml:"objdump_tool"`
	} `toml:"verify"`

	// Disassembly formatting
	Disasm struct {
		BytesPerLine  int  `toml:"bytes_per_line"`
		ShowEncoding  bool `toml:"show_encoding"`
		ShowSourceMap bool `toml:"show_source_map"`
	} `toml:"disasm"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Trampoline.IslandMargin = 64

	cfg.Verify.RequireFullCoverage = true
	cfg.Verify.Assembler = "clang"
	cfg.Verify.ObjdumpTool = "otool"

	cfg.Disasm.BytesPerLine = 4
	cfg.Disasm.ShowEncoding = true
	cfg.Disasm.ShowSourceMap = true

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "fasterbasic")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "fbc.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "fasterbasic")

	default:
		return "fbc.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "fbc.toml"
	}

	return filepath.Join(configDir, "fbc.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
