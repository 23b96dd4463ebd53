package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Trampoline.IslandMargin != 64 {
		t.Errorf("Expected IslandMargin=64, got %d", cfg.Trampoline.IslandMargin)
	}
	if !cfg.Verify.RequireFullCoverage {
		t.Error("Expected RequireFullCoverage=true")
	}
	if cfg.Verify.Assembler != "clang" {
		t.Errorf("Expected Assembler=clang, got %s", cfg.Verify.Assembler)
	}
	if cfg.Disasm.BytesPerLine != 4 {
		t.Errorf("Expected BytesPerLine=4, got %d", cfg.Disasm.BytesPerLine)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "fbc.toml" {
		t.Errorf("Expected path to end with fbc.toml, got %s", path)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Trampoline.IslandMargin = 128
	cfg.Verify.RequireFullCoverage = false
	cfg.Disasm.BytesPerLine = 8

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Trampoline.IslandMargin != 128 {
		t.Errorf("Expected IslandMargin=128, got %d", loaded.Trampoline.IslandMargin)
	}
	if loaded.Verify.RequireFullCoverage {
		t.Error("Expected RequireFullCoverage=false")
	}
	if loaded.Disasm.BytesPerLine != 8 {
		t.Errorf("Expected BytesPerLine=8, got %d", loaded.Disasm.BytesPerLine)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}
	if cfg.Trampoline.IslandMargin != 64 {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[trampoline]
island_margin = "not a number"
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
