package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.Data = DataConfig{
		HTTPTimeout: 5 * time.Second,
		UserAgent:   "spotlight-test/1.0",
	}
	cfg.Cache = CacheConfig{
		Enabled: false, // tests use their own store in a temp dir
		App:     "test",
		Session: "test",
		Timeout: 1 * time.Second,
		MaxAge:  time.Minute,
	}
	cfg.Log = LogConfig{Level: "off"}
	return cfg
}
