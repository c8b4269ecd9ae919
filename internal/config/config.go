package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pders01/spotlight/internal/palette"
)

type Config struct {
	Palette   PaletteConfig   `mapstructure:"palette"`
	Keys      KeyConfig       `mapstructure:"keys"`
	Data      DataConfig      `mapstructure:"data"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Navigator NavigatorConfig `mapstructure:"navigator"`
	Log       LogConfig       `mapstructure:"log"`
}

type PaletteConfig struct {
	Placeholder         string `mapstructure:"placeholder"`
	MoreCharsText       string `mapstructure:"more_chars_text"`
	NoMatchText         string `mapstructure:"no_match_text"`
	OneMatchText        string `mapstructure:"one_match_text"`
	MultipleMatchesText string `mapstructure:"multiple_matches_text"`
	InPageSearchText    string `mapstructure:"in_page_search_text"`
	EnableInPageSearch  bool   `mapstructure:"enable_in_page_search"`
	MaxResults          int    `mapstructure:"max_results"`
	Width               int    `mapstructure:"width"`
	Theme               string `mapstructure:"theme"`
	PrefillSelection    bool   `mapstructure:"prefill_selection"`
	ShowProcessing      bool   `mapstructure:"show_processing"`
	OpenOnStart         bool   `mapstructure:"open_on_start"`
}

type KeyConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Shortcuts string `mapstructure:"shortcuts"`
}

type DataConfig struct {
	Source      string        `mapstructure:"source"`
	SubmitItems []string      `mapstructure:"submit_items"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	Watch       bool          `mapstructure:"watch"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Path    string        `mapstructure:"path"`
	App     string        `mapstructure:"app"`
	Session string        `mapstructure:"session"`
	Timeout time.Duration `mapstructure:"timeout"`
	MaxAge  time.Duration `mapstructure:"max_age"`
}

type NavigatorConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	InternalPrefix  string `mapstructure:"internal_prefix"`
	ResolveEndpoint string `mapstructure:"resolve_endpoint"`
	DefaultOpener   string `mapstructure:"default_opener"`
	AllowPrivate    bool   `mapstructure:"allow_private"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	texts := palette.DefaultTexts()

	return &Config{
		Palette: PaletteConfig{
			Placeholder:         texts.Placeholder,
			MoreCharsText:       texts.MoreChars,
			NoMatchText:         texts.NoMatch,
			OneMatchText:        texts.OneMatch,
			MultipleMatchesText: texts.MultipleMatches,
			InPageSearchText:    texts.InPageSearch,
			EnableInPageSearch:  true,
			MaxResults:          palette.DefaultMaxResults,
			Width:               80,
			Theme:               "default",
			PrefillSelection:    false,
			ShowProcessing:      true,
			OpenOnStart:         false,
		},
		Keys: KeyConfig{
			Enabled:   true,
			Shortcuts: "ctrl+k,ctrl+space",
		},
		Data: DataConfig{
			HTTPTimeout: 30 * time.Second,
			UserAgent:   "spotlight/1.0 (https://github.com/pders01/spotlight)",
			Watch:       true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    filepath.Join(homeDir, ".spotlight", "cache.db"),
			App:     "default",
			Session: "default",
			Timeout: 1 * time.Second,
			MaxAge:  12 * time.Hour,
		},
		Navigator: NavigatorConfig{
			InternalPrefix: "f?p=",
			DefaultOpener:  getDefaultOpener(),
			AllowPrivate:   true,
		},
		Log: LogConfig{
			Level: "off",
			Path:  filepath.Join(homeDir, ".spotlight", "spotlight.log"),
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "rundll32"
	default:
		return "open"
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "spotlight", "config.toml")
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults are set per key so a partial section in the file keeps
	// the remaining defaults.
	for section, values := range sections(defaultConfig(), false) {
		for key, value := range values {
			v.SetDefault(section+"."+key, value)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SPOTLIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand paths after loading
	expandPaths(&config)

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	// Expand tilde
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	// Convert to absolute path if not already absolute
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

// expandPaths expands all paths in the config. A data source is only
// expanded when it is a local file.
func expandPaths(cfg *Config) {
	cfg.Cache.Path = expandPath(cfg.Cache.Path)
	cfg.Log.Path = expandPath(cfg.Log.Path)
	if cfg.Data.Source != "" && !isURL(cfg.Data.Source) {
		cfg.Data.Source = expandPath(cfg.Data.Source)
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// PaletteOptions builds the dialog configuration.
func (c *Config) PaletteOptions() palette.Config {
	p := c.Palette
	return palette.Config{
		Options: palette.Options{
			MaxResults:       p.MaxResults,
			InPageSearch:     p.EnableInPageSearch,
			PrefillSelection: p.PrefillSelection,
			Texts: palette.Texts{
				Placeholder:     p.Placeholder,
				MoreChars:       p.MoreCharsText,
				NoMatch:         p.NoMatchText,
				OneMatch:        p.OneMatchText,
				MultipleMatches: p.MultipleMatchesText,
				InPageSearch:    p.InPageSearchText,
			},
		},
		Hotkeys:        c.Keys.Shortcuts,
		KeysEnabled:    c.Keys.Enabled,
		Width:          p.Width,
		Theme:          p.Theme,
		ShowProcessing: p.ShowProcessing,
	}
}

// sections flattens cfg into its TOML tables. Durations become strings
// when written to a file.
func sections(cfg *Config, durationsAsString bool) map[string]map[string]interface{} {
	duration := func(d time.Duration) interface{} {
		if durationsAsString {
			return d.String()
		}
		return d
	}
	p := cfg.Palette
	return map[string]map[string]interface{}{
		"palette": {
			"placeholder":           p.Placeholder,
			"more_chars_text":       p.MoreCharsText,
			"no_match_text":         p.NoMatchText,
			"one_match_text":        p.OneMatchText,
			"multiple_matches_text": p.MultipleMatchesText,
			"in_page_search_text":   p.InPageSearchText,
			"enable_in_page_search": p.EnableInPageSearch,
			"max_results":           p.MaxResults,
			"width":                 p.Width,
			"theme":                 p.Theme,
			"prefill_selection":     p.PrefillSelection,
			"show_processing":       p.ShowProcessing,
			"open_on_start":         p.OpenOnStart,
		},
		"keys": {
			"enabled":   cfg.Keys.Enabled,
			"shortcuts": cfg.Keys.Shortcuts,
		},
		"data": {
			"source":       cfg.Data.Source,
			"submit_items": cfg.Data.SubmitItems,
			"http_timeout": duration(cfg.Data.HTTPTimeout),
			"user_agent":   cfg.Data.UserAgent,
			"watch":        cfg.Data.Watch,
		},
		"cache": {
			"enabled": cfg.Cache.Enabled,
			"path":    cfg.Cache.Path,
			"app":     cfg.Cache.App,
			"session": cfg.Cache.Session,
			"timeout": duration(cfg.Cache.Timeout),
			"max_age": duration(cfg.Cache.MaxAge),
		},
		"navigator": {
			"base_url":         cfg.Navigator.BaseURL,
			"internal_prefix":  cfg.Navigator.InternalPrefix,
			"resolve_endpoint": cfg.Navigator.ResolveEndpoint,
			"default_opener":   cfg.Navigator.DefaultOpener,
			"allow_private":    cfg.Navigator.AllowPrivate,
		},
		"log": {
			"level": cfg.Log.Level,
			"path":  cfg.Log.Path,
		},
	}
}

func Save(config *Config, path string) error {
	v := viper.New()

	for section, values := range sections(config, true) {
		v.Set(section, values)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
