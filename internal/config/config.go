package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when neither --config nor WALLPAPER_CONFIG is set.
const DefaultPath = "wallpaper.yaml"

type Config struct {
	Listen         string        `yaml:"listen"`
	DataDir        string        `yaml:"data_dir"`
	OutputDir      string        `yaml:"output_dir"`
	BackgroundPath string        `yaml:"background_path"`
	UserAgent      string        `yaml:"user_agent"`
	HTTPTimeout    time.Duration `yaml:"http_timeout"`
	ArtCacheTTL    time.Duration `yaml:"art_cache_ttl"`
	LogLevel       string        `yaml:"log_level"`
	Scrape         Scrape        `yaml:"scrape"`
}

type Scrape struct {
	BaseURL           string  `yaml:"base_url"`
	MediaURL          string  `yaml:"media_url"`
	Workers           int     `yaml:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Cloudflare        bool    `yaml:"cloudflare"`
}

func DefaultConfig() *Config {
	return &Config{
		Listen:         ":8080",
		DataDir:        "data",
		OutputDir:      "wallpapers",
		BackgroundPath: filepath.Join("static", "resources", "bg.png"),
		HTTPTimeout:    15 * time.Second,
		ArtCacheTTL:    10 * time.Minute,
		LogLevel:       "info",
		Scrape: Scrape{
			BaseURL:           "https://prts.wiki/w/",
			MediaURL:          "https://media.prts.wiki/",
			Workers:           4,
			RequestsPerSecond: 2,
			Cloudflare:        true,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error; the
// returned string is the path actually used, or "" for defaults only.
func Load(path string) (*Config, string, error) {
	if path == "" {
		path = os.Getenv("WALLPAPER_CONFIG")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		applyEnv(cfg)
		return cfg, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", path, err)
	}
	normalize(cfg)
	applyEnv(cfg)
	return cfg, path, nil
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func applyEnv(c *Config) {
	if port := os.Getenv("PORT"); port != "" {
		c.Listen = ":" + port
	}
}

func normalize(c *Config) {
	d := DefaultConfig()
	if c.Listen == "" {
		c.Listen = d.Listen
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.BackgroundPath == "" {
		c.BackgroundPath = d.BackgroundPath
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = d.HTTPTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Scrape.BaseURL == "" {
		c.Scrape.BaseURL = d.Scrape.BaseURL
	}
	if c.Scrape.MediaURL == "" {
		c.Scrape.MediaURL = d.Scrape.MediaURL
	}
	if c.Scrape.Workers <= 0 {
		c.Scrape.Workers = d.Scrape.Workers
	}
	if c.Scrape.RequestsPerSecond < 0 {
		c.Scrape.RequestsPerSecond = d.Scrape.RequestsPerSecond
	}
}
