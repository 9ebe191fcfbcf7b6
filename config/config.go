package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Pipeline PipelineSettings `yaml:"pipeline"`
	Corpus   CorpusConfig     `yaml:"corpus"`
	Server   ServerConfig     `yaml:"server"`
	Logging  LoggingConfig    `yaml:"logging"`
	Cache    CacheConfig      `yaml:"cache"`
}

// CorpusConfig controls how the corpus directory is read.
type CorpusConfig struct {
	Concurrency int      `yaml:"concurrency"` // Files read in parallel
	Extensions  []string `yaml:"extensions"`  // Empty means every regular file
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	MaxBodyBytes    int64         `yaml:"maxBodyBytes"`
}

// LoggingConfig controls log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// CacheConfig selects the answer cache backend.
type CacheConfig struct {
	Backend    string        `yaml:"backend"` // "memory", "redis" or "none"
	MaxEntries int           `yaml:"maxEntries"`
	TTL        time.Duration `yaml:"ttl"`
	Redis      RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	PoolSize  int    `yaml:"poolSize"`
	KeyPrefix string `yaml:"keyPrefix"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	cfg.Pipeline.ApplyDefaults()
	return cfg, nil
}

// Default returns a Config with defaults suitable for local use.
func Default() *Config {
	cfg := &Config{
		Corpus: CorpusConfig{
			Concurrency: 8,
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Cache: CacheConfig{
			Backend:    "memory",
			MaxEntries: 1024,
			TTL:        10 * time.Minute,
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				PoolSize:  10,
				KeyPrefix: "questions:answer:",
			},
		},
	}
	cfg.Pipeline.ApplyDefaults()
	return cfg
}

// Validate checks the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	problems := c.Pipeline.Validate()

	switch c.Cache.Backend {
	case "memory", "redis", "none":
	default:
		problems = append(problems, fmt.Sprintf("invalid cache backend '%s'", c.Cache.Backend))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid logging format '%s'", c.Logging.Format))
	}
	if c.Corpus.Concurrency <= 0 {
		problems = append(problems, "corpus concurrency must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// applyEnvOverrides reads QA_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QA_LANGUAGE"); v != "" {
		cfg.Pipeline.Language = v
	}
	if v := os.Getenv("QA_FILE_MATCHES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.FileMatches = n
		}
	}
	if v := os.Getenv("QA_SENTENCE_MATCHES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.SentenceMatches = n
		}
	}
	if v := os.Getenv("QA_SENTENCE_IDENTITY"); v != "" {
		cfg.Pipeline.SentenceIdentity = v
	}
	if v := os.Getenv("QA_CORPUS_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Corpus.Concurrency = n
		}
	}
	if v := os.Getenv("QA_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("QA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("QA_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("QA_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("QA_REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
}
