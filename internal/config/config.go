package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Store   StoreConfig   `yaml:"store"`
	Web     WebConfig     `yaml:"web"`
	Forward ForwardConfig `yaml:"forward"`
}

// SourceConfig selects where NMEA text comes from.
type SourceConfig struct {
	Enable *bool  `yaml:"enable"`
	Kind   string `yaml:"kind"`
	Path   string `yaml:"path"`
	Addr   string `yaml:"addr"`

	ChunkSize   int    `yaml:"chunk_size"`
	MaxFragment int    `yaml:"max_fragment"`
	Separator   string `yaml:"separator"`
	RecentLines int    `yaml:"recent_lines"`
}

// Enabled reports whether ingest should run. It defaults to true.
func (c SourceConfig) Enabled() bool {
	return c.Enable == nil || *c.Enable
}

type StoreConfig struct {
	Enable bool   `yaml:"enable"`
	Path   string `yaml:"path"`
}

// ForwardConfig sends every accepted sentence to a UDP listener.
type ForwardConfig struct {
	Enable bool   `yaml:"enable"`
	Dest   string `yaml:"dest"`
}

type WebConfig struct {
	Enable bool   `yaml:"enable"`
	Listen string `yaml:"listen"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	cfg.Source.Kind = strings.ToLower(strings.TrimSpace(cfg.Source.Kind))
	if cfg.Source.Kind == "" {
		cfg.Source.Kind = "file"
	}
	switch cfg.Source.Kind {
	case "file":
		if cfg.Source.Enabled() && strings.TrimSpace(cfg.Source.Path) == "" {
			return Config{}, fmt.Errorf("source.path is required when source.kind is 'file'")
		}
	case "stdin":
	case "tcp":
		if strings.TrimSpace(cfg.Source.Addr) == "" {
			cfg.Source.Addr = "127.0.0.1:10110"
		}
	default:
		return Config{}, fmt.Errorf("source.kind must be one of file, stdin, tcp (got %q)", cfg.Source.Kind)
	}

	if cfg.Source.ChunkSize < 0 {
		return Config{}, fmt.Errorf("source.chunk_size must be >= 0")
	}
	if cfg.Source.ChunkSize == 0 {
		cfg.Source.ChunkSize = 1024
	}
	if cfg.Source.MaxFragment < 0 {
		return Config{}, fmt.Errorf("source.max_fragment must be >= 0")
	}
	if cfg.Source.MaxFragment == 0 {
		cfg.Source.MaxFragment = 64 * 1024
	}
	if strings.ContainsAny(cfg.Source.Separator, "$*") {
		return Config{}, fmt.Errorf("source.separator must not contain '$' or '*'")
	}
	if cfg.Source.RecentLines <= 0 {
		cfg.Source.RecentLines = 100
	}

	if cfg.Store.Enable && strings.TrimSpace(cfg.Store.Path) == "" {
		return Config{}, fmt.Errorf("store.path is required when store.enable is true")
	}

	if cfg.Forward.Enable && strings.TrimSpace(cfg.Forward.Dest) == "" {
		return Config{}, fmt.Errorf("forward.dest is required when forward.enable is true")
	}

	if cfg.Web.Listen == "" {
		cfg.Web.Listen = "127.0.0.1:8080"
	}

	if !cfg.Source.Enabled() && !cfg.Web.Enable {
		return Config{}, fmt.Errorf("source and web cannot both be disabled")
	}

	return cfg, nil
}
