package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestGetDefaultOpener(t *testing.T) {
	expected := map[string]string{
		"darwin":  "open",
		"linux":   "xdg-open",
		"windows": "rundll32",
	}

	opener := getDefaultOpener()

	if expectedOpener, ok := expected[runtime.GOOS]; ok {
		if opener != expectedOpener {
			t.Errorf("getDefaultOpener() = %s, want %s for %s", opener, expectedOpener, runtime.GOOS)
		}
	} else {
		// For unknown OS, should default to "open"
		if opener != "open" {
			t.Errorf("getDefaultOpener() = %s, want 'open' for unknown OS", opener)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	// Palette defaults
	if cfg.Palette.MaxResults != 50 {
		t.Errorf("Palette.MaxResults = %d, want 50", cfg.Palette.MaxResults)
	}
	if cfg.Palette.MoreCharsText != "Please enter at least 2 characters" {
		t.Errorf("Palette.MoreCharsText = %q", cfg.Palette.MoreCharsText)
	}
	if !cfg.Palette.EnableInPageSearch {
		t.Error("Palette.EnableInPageSearch should default to true")
	}

	// Keys
	if !cfg.Keys.Enabled || cfg.Keys.Shortcuts != "ctrl+k,ctrl+space" {
		t.Errorf("Keys = %+v", cfg.Keys)
	}

	// Data and cache
	if cfg.Data.HTTPTimeout != 30*time.Second {
		t.Errorf("Data.HTTPTimeout = %v, want 30s", cfg.Data.HTTPTimeout)
	}
	if cfg.Data.UserAgent == "" {
		t.Error("Data.UserAgent should not be empty")
	}
	if cfg.Cache.Timeout != 1*time.Second {
		t.Errorf("Cache.Timeout = %v, want 1s", cfg.Cache.Timeout)
	}
	if cfg.Cache.MaxAge != 12*time.Hour {
		t.Errorf("Cache.MaxAge = %v, want 12h", cfg.Cache.MaxAge)
	}

	// Navigator
	if cfg.Navigator.InternalPrefix != "f?p=" {
		t.Errorf("Navigator.InternalPrefix = %q, want 'f?p='", cfg.Navigator.InternalPrefix)
	}
	if cfg.Navigator.DefaultOpener == "" {
		t.Error("Navigator.DefaultOpener should not be empty")
	}

	if cfg.Log.Level != "off" {
		t.Errorf("Log.Level = %q, want 'off'", cfg.Log.Level)
	}
}

func TestLoad_DefaultConfig(t *testing.T) {
	// Test loading without a config file (should use defaults)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	// Should have default values
	if cfg.Cache.MaxAge != 12*time.Hour {
		t.Errorf("Cache.MaxAge = %v, want 12h", cfg.Cache.MaxAge)
	}
	if cfg.Palette.Theme != "default" {
		t.Errorf("Palette.Theme = %q, want 'default'", cfg.Palette.Theme)
	}
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "test-config.toml")
	configContent := `
[palette]
theme = "orange"
no_match_text = "Nothing here"

[data]
source = "https://apex.example.org/ords/spotlight"
submit_items = ["P1_ITEM", "P1_OTHER"]
http_timeout = "10s"

[cache]
path = "/tmp/test-cache.db"
max_age = "1h"

[navigator]
base_url = "https://apex.example.org/ords/"
`

	if writeErr := os.WriteFile(configPath, []byte(configContent), 0o644); writeErr != nil {
		t.Fatal(writeErr)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Check loaded values
	if cfg.Palette.Theme != "orange" {
		t.Errorf("Palette.Theme = %s, want 'orange'", cfg.Palette.Theme)
	}
	if cfg.Palette.NoMatchText != "Nothing here" {
		t.Errorf("Palette.NoMatchText = %s, want 'Nothing here'", cfg.Palette.NoMatchText)
	}
	if cfg.Data.Source != "https://apex.example.org/ords/spotlight" {
		t.Errorf("Data.Source = %s, URL sources must not be expanded", cfg.Data.Source)
	}
	if len(cfg.Data.SubmitItems) != 2 || cfg.Data.SubmitItems[1] != "P1_OTHER" {
		t.Errorf("Data.SubmitItems = %v", cfg.Data.SubmitItems)
	}
	if cfg.Data.HTTPTimeout != 10*time.Second {
		t.Errorf("Data.HTTPTimeout = %v, want 10s", cfg.Data.HTTPTimeout)
	}
	if cfg.Cache.Path != "/tmp/test-cache.db" {
		t.Errorf("Cache.Path = %s, want '/tmp/test-cache.db'", cfg.Cache.Path)
	}
	if cfg.Cache.MaxAge != time.Hour {
		t.Errorf("Cache.MaxAge = %v, want 1h", cfg.Cache.MaxAge)
	}

	// Keys missing from a section keep their defaults
	if cfg.Palette.MaxResults != 50 {
		t.Errorf("Palette.MaxResults = %d, want default 50", cfg.Palette.MaxResults)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should keep its default")
	}
	if cfg.Navigator.InternalPrefix != "f?p=" {
		t.Errorf("Navigator.InternalPrefix = %q, want default", cfg.Navigator.InternalPrefix)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SPOTLIGHT_PALETTE_THEME", "dark")
	t.Setenv("SPOTLIGHT_DATA_SOURCE", "https://example.org/index.json")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		// An explicit path that does not exist is an error
		t.Fatal("Load() with a missing explicit file should fail")
	}

	path := filepath.Join(t.TempDir(), "empty.toml")
	if writeErr := os.WriteFile(path, nil, 0o644); writeErr != nil {
		t.Fatal(writeErr)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Palette.Theme != "dark" {
		t.Errorf("Palette.Theme = %q, want 'dark' from env", cfg.Palette.Theme)
	}
	if cfg.Data.Source != "https://example.org/index.json" {
		t.Errorf("Data.Source = %q from env", cfg.Data.Source)
	}
}

func TestLoad_ExpandsLocalSource(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "c.toml")
	content := "[data]\nsource = \"~/index.toml\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := filepath.Join(home, "index.toml"); cfg.Data.Source != want {
		t.Errorf("Data.Source = %s, want %s", cfg.Data.Source, want)
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := defaultConfig()
	cfg.Palette.Theme = "red"
	cfg.Palette.MoreCharsText = "Type more"
	cfg.Data.Source = "/srv/index.json"
	cfg.Data.HTTPTimeout = 45 * time.Second
	cfg.Cache.Enabled = false
	cfg.Cache.MaxAge = 20 * time.Minute
	cfg.Navigator.BaseURL = "https://apex.example.org/ords/"
	cfg.Keys.Shortcuts = "alt+p"

	savePath := filepath.Join(tmpDir, "nested", "saved-config.toml")
	if saveErr := Save(cfg, savePath); saveErr != nil {
		t.Fatalf("Save() error = %v", saveErr)
	}

	// Verify file was created
	if _, statErr := os.Stat(savePath); os.IsNotExist(statErr) {
		t.Fatal("Save() did not create config file")
	}

	// Load it back and verify
	loaded, err := Load(savePath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.Palette.Theme != "red" {
		t.Errorf("Loaded Palette.Theme = %s, want red", loaded.Palette.Theme)
	}
	if loaded.Palette.MoreCharsText != "Type more" {
		t.Errorf("Loaded Palette.MoreCharsText = %s", loaded.Palette.MoreCharsText)
	}
	if loaded.Data.Source != cfg.Data.Source {
		t.Errorf("Loaded Data.Source = %s, want %s", loaded.Data.Source, cfg.Data.Source)
	}
	if loaded.Data.HTTPTimeout != cfg.Data.HTTPTimeout {
		t.Errorf("Loaded Data.HTTPTimeout = %v, want %v", loaded.Data.HTTPTimeout, cfg.Data.HTTPTimeout)
	}
	if loaded.Cache.Enabled {
		t.Error("Loaded Cache.Enabled = true, want false")
	}
	if loaded.Cache.MaxAge != cfg.Cache.MaxAge {
		t.Errorf("Loaded Cache.MaxAge = %v, want %v", loaded.Cache.MaxAge, cfg.Cache.MaxAge)
	}
	if loaded.Navigator.BaseURL != cfg.Navigator.BaseURL {
		t.Errorf("Loaded Navigator.BaseURL = %s", loaded.Navigator.BaseURL)
	}
	if loaded.Keys.Shortcuts != "alt+p" {
		t.Errorf("Loaded Keys.Shortcuts = %s, want alt+p", loaded.Keys.Shortcuts)
	}
}

func TestGenerateDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "generated.toml")
	if genErr := GenerateDefaultConfig(configPath); genErr != nil {
		t.Fatalf("GenerateDefaultConfig() error = %v", genErr)
	}

	// Verify file exists
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		t.Fatal("GenerateDefaultConfig() did not create file")
	}

	// Load and verify it has defaults
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load generated config: %v", err)
	}

	if cfg.Keys.Shortcuts != "ctrl+k,ctrl+space" {
		t.Errorf("Generated config has Keys.Shortcuts = %s", cfg.Keys.Shortcuts)
	}
	if cfg.Cache.MaxAge != 12*time.Hour {
		t.Errorf("Generated config has Cache.MaxAge = %v", cfg.Cache.MaxAge)
	}
}

func TestPaletteOptions(t *testing.T) {
	cfg := defaultConfig()
	cfg.Palette.Width = 60
	cfg.Palette.PrefillSelection = true
	cfg.Keys.Enabled = false

	p := cfg.PaletteOptions()
	if p.Width != 60 || !p.Options.PrefillSelection || p.KeysEnabled {
		t.Errorf("PaletteOptions() = %+v", p)
	}
	if p.Options.Texts.InPageSearch != "Search on current Page" {
		t.Errorf("Texts.InPageSearch = %q", p.Options.Texts.InPageSearch)
	}
	if p.Hotkeys != "ctrl+k,ctrl+space" {
		t.Errorf("Hotkeys = %q", p.Hotkeys)
	}
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()

	if cfg == nil {
		t.Fatal("TestConfig() returned nil")
	}

	// Verify test-specific settings
	if cfg.Cache.Enabled {
		t.Error("TestConfig Cache.Enabled should be false")
	}
	if cfg.Data.UserAgent != "spotlight-test/1.0" {
		t.Errorf("TestConfig Data.UserAgent = %s, want 'spotlight-test/1.0'", cfg.Data.UserAgent)
	}
}
