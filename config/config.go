// Package config loads client options from a TOML file. Every field has a
// default, so a config file only states what differs.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds everything needed to stand up a connected client.
type Config struct {
	Addr           string        // store address, used when Service is empty
	Service        string        // discover the address via etcd instead
	EtcdEndpoints  []string      // registry endpoints for Service discovery
	DialTimeout    time.Duration
	CommandTimeout time.Duration // 0 disables the timeout middleware
	RateLimit      float64       // commands/sec, 0 disables rate limiting
	RateBurst      int
	LogLevel       string // zerolog level name
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Addr:           "127.0.0.1:6379",
		EtcdEndpoints:  []string{"127.0.0.1:2379"},
		DialTimeout:    5 * time.Second,
		CommandTimeout: 2 * time.Second,
		RateBurst:      1,
		LogLevel:       "info",
	}
}

type fileConfig struct {
	Addr           string   `toml:"addr"`
	Service        string   `toml:"service"`
	EtcdEndpoints  []string `toml:"etcd_endpoints"`
	DialTimeout    string   `toml:"dial_timeout"`
	CommandTimeout string   `toml:"command_timeout"`
	RateLimit      float64  `toml:"rate_limit"`
	RateBurst      int      `toml:"rate_burst"`
	LogLevel       string   `toml:"log_level"`
}

// Load reads a TOML file and applies it over the defaults. Durations are
// written as strings ("500ms", "3s").
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}

	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("service") {
		cfg.Service = strings.TrimSpace(raw.Service)
	}
	if meta.IsDefined("etcd_endpoints") {
		cfg.EtcdEndpoints = raw.EtcdEndpoints
	}
	if meta.IsDefined("dial_timeout") {
		d, err := time.ParseDuration(raw.DialTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("config: parse dial_timeout: %w", err)
		}
		cfg.DialTimeout = d
	}
	if meta.IsDefined("command_timeout") {
		d, err := time.ParseDuration(raw.CommandTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("config: parse command_timeout: %w", err)
		}
		cfg.CommandTimeout = d
	}
	if meta.IsDefined("rate_limit") {
		cfg.RateLimit = raw.RateLimit
	}
	if meta.IsDefined("rate_burst") {
		cfg.RateBurst = raw.RateBurst
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	return cfg, nil
}
