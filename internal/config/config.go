// Package config loads the dashboard client configuration from YAML with
// coded defaults.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so "10s" style values parse from YAML;
// yaml.v3 has no native duration support.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Toast  ToastConfig  `yaml:"toast"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	BaseURL string `yaml:"base_url"`
}

type ToastConfig struct {
	FreshnessWindow  Duration `yaml:"freshness_window"`
	InfoDismissAfter Duration `yaml:"info_dismiss_after"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://127.0.0.1:8080",
		},
		Toast: ToastConfig{
			FreshnessWindow:  Duration(10 * time.Second),
			InfoDismissAfter: Duration(5 * time.Second),
		},
		Log: LogConfig{
			File:  "delivery-tui.log",
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads the file if it exists, otherwise returns defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return cfg, err
}
