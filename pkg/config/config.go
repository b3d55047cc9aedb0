package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Metrics struct {
		// Disabled keeps the zero value meaning "scrape endpoint on".
		Disabled bool   `yaml:"disabled"`
		Path     string `yaml:"path"`
	} `yaml:"metrics"`
	Provider struct {
		BaseURL           string        `yaml:"base_url"`
		APIKey            string        `yaml:"api_key"`
		Timeout           time.Duration `yaml:"timeout"`
		OutputSize        string        `yaml:"output_size"`
		RequestsPerMinute int           `yaml:"requests_per_minute"`
	} `yaml:"provider"`
	Storage struct {
		Dir string `yaml:"dir"`
	} `yaml:"storage"`
	Cache struct {
		Path string `yaml:"path"`
	} `yaml:"cache"`
	QueryCache struct {
		Backend string        `yaml:"backend"`
		TTL     time.Duration `yaml:"ttl"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"query_cache"`
	Events struct {
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"events"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PROVIDER_API_KEY"); v != "" {
		c.Provider.APIKey = v
	}
	if v := os.Getenv("PROVIDER_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv("STORAGE_DIR"); v != "" {
		c.Storage.Dir = v
	}
	if v := os.Getenv("CACHE_PATH"); v != "" {
		c.Cache.Path = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Events.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.QueryCache.Redis.Addr = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = "https://www.alphavantage.co/query"
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = 15 * time.Second
	}
	if c.Provider.OutputSize == "" {
		c.Provider.OutputSize = "compact"
	}
	if c.Provider.RequestsPerMinute == 0 {
		c.Provider.RequestsPerMinute = 5
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "data"
	}
	if c.Cache.Path == "" {
		c.Cache.Path = "cache/market_data.json"
	}
	if c.QueryCache.Backend == "" {
		c.QueryCache.Backend = "memory"
	}
	if c.QueryCache.TTL == 0 {
		c.QueryCache.TTL = 30 * time.Second
	}
	if c.QueryCache.Redis.Prefix == "" {
		c.QueryCache.Redis.Prefix = "seriesvault"
	}
	if c.Events.Topic == "" {
		c.Events.Topic = "seriesvault.ingest"
	}
	if c.Events.RequiredAcks == 0 {
		c.Events.RequiredAcks = -1
	}
	if c.Events.Compression == "" {
		c.Events.Compression = "gzip"
	}
	if c.Events.WriteTimeout == 0 {
		c.Events.WriteTimeout = 10 * time.Second
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Provider.APIKey == "" {
		return fmt.Errorf("provider.api_key is required")
	}
	if c.QueryCache.Backend != "memory" && c.QueryCache.Backend != "redis" {
		return fmt.Errorf("query_cache.backend must be 'memory' or 'redis', got '%s'", c.QueryCache.Backend)
	}
	if c.QueryCache.Backend == "redis" && c.QueryCache.Redis.Addr == "" {
		return fmt.Errorf("query_cache.redis.addr is required for redis backend")
	}
	return nil
}

// EventsEnabled reports whether the ingest event publisher is configured.
func (c *Config) EventsEnabled() bool {
	return len(c.Events.Brokers) > 0
}

// MetricsEnabled reports whether the Prometheus scrape endpoint should
// be registered.
func (c *Config) MetricsEnabled() bool {
	return !c.Metrics.Disabled
}
