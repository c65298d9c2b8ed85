// Cartera Mesh
// Copyright (C) 2026 cartera-mesh
//
// This file is part of Cartera Mesh.
//
// Cartera Mesh is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Cartera Mesh is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Cartera Mesh. If not, see <https://www.gnu.org/licenses/>.

// Package config loads process configuration from YAML with environment
// variable overrides, following the teacher's Load/applyEnvironmentOverrides
// /ValidateConfiguration pipeline shape.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for a mesh-dapp/mesh-wallet
// process.
type Config struct {
	Environment string        `yaml:"environment" json:"environment"`
	Relay       RelayConfig   `yaml:"relay" json:"relay"`
	RPC         RPCConfig     `yaml:"rpc" json:"rpc"`
	Storage     StorageConfig `yaml:"storage" json:"storage"`
	Logging     LoggingConfig `yaml:"logging" json:"logging"`
	Metrics     MetricsConfig `yaml:"metrics" json:"metrics"`
}

// RelayConfig configures the relay adapter (component B).
type RelayConfig struct {
	URL          string        `yaml:"url" json:"url"`
	DialTimeout  time.Duration `yaml:"dial_timeout" json:"dial_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
}

// RPCConfig configures request/response correlation defaults (spec §5).
type RPCConfig struct {
	DefaultTimeout time.Duration `yaml:"default_timeout" json:"default_timeout"`
}

// StorageConfig selects the persisted KV store backend (component A).
type StorageConfig struct {
	// Type is "memory" or "file". Only "memory" is implemented by this
	// module's store package; "file" is accepted so a deployment config
	// can name its intended backend even when the adapter is supplied by
	// the embedding application.
	Type string `yaml:"type" json:"type"`
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// LoggingConfig configures internal/logx.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// MetricsConfig configures the Prometheus exporter (spec §10 domain stack).
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
}

// Default returns a Config with the same fallback values the teacher's
// setDefaults applies before environment overrides.
func Default() Config {
	return Config{
		Environment: "development",
		Relay: RelayConfig{
			URL:          "wss://relay.example.com/ws",
			DialTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		RPC:     RPCConfig{DefaultTimeout: 5 * time.Second},
		Storage: StorageConfig{Type: "memory"},
		Logging: LoggingConfig{Level: "info"},
		Metrics: MetricsConfig{Enabled: false, Addr: ":9090"},
	}
}

// Load reads path as YAML over Default(), applies environment variable
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnvironmentOverrides(&cfg)

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, fmt.Errorf("config: invalid configuration: %s", errs[0])
	}
	return &cfg, nil
}

// applyEnvironmentOverrides lets MESH_* environment variables win over
// whatever the YAML file set, highest priority last (teacher's pattern in
// config/loader.go applyEnvironmentOverrides).
func applyEnvironmentOverrides(cfg *Config) {
	if v := os.Getenv("MESH_RELAY_URL"); v != "" {
		cfg.Relay.URL = v
	}
	if v := os.Getenv("MESH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MESH_STORAGE_TYPE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("MESH_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
		cfg.Metrics.Enabled = true
	}
}

// Validate checks the configuration for contract violations a loader
// should reject rather than silently tolerate.
func Validate(cfg *Config) []string {
	var errs []string
	if cfg.Relay.URL == "" {
		errs = append(errs, "relay.url must not be empty")
	}
	if cfg.RPC.DefaultTimeout <= 0 {
		errs = append(errs, "rpc.default_timeout must be positive")
	}
	switch cfg.Storage.Type {
	case "memory", "file":
	default:
		errs = append(errs, fmt.Sprintf("storage.type %q is not one of memory|file", cfg.Storage.Type))
	}
	return errs
}
