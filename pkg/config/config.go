// Package config loads and validates configuration from YAML files with
// environment-variable overrides. It provides typed structs for the feature
// extractors and for every optional backend (Postgres corpus, Redis and
// Badger caches, Kafka events, Prometheus metrics).
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

// Config is the top-level application configuration.
type Config struct {
	Features FeaturesConfig `yaml:"features"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Cache    CacheConfig    `yaml:"cache"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// FeaturesConfig selects the extractor and its tokenizer/grouper parameters.
type FeaturesConfig struct {
	Extractor       string    `yaml:"extractor"`
	Tokenizer       string    `yaml:"tokenizer"`
	Vocabulary      []string  `yaml:"vocabulary"`
	FillToken       string    `yaml:"fillToken"`
	HashBuckets     int       `yaml:"hashBuckets"`
	EntropyWindow   int       `yaml:"entropyWindow"`
	PairwiseWeights []float64 `yaml:"pairwiseWeights"`
	// Prune is an optional [low, high] quantile band on token counts that
	// narrows inferred vocabularies. Empty disables pruning.
	Prune   []float64 `yaml:"prune"`
	Workers int       `yaml:"workers"`
}

// PruneBounds reports the configured quantile band, if any.
func (f FeaturesConfig) PruneBounds() (low, high float64, ok bool) {
	if len(f.Prune) != 2 {
		return 0, 0, false
	}
	return f.Prune[0], f.Prune[1], true
}

// CorpusConfig tells the CLI where books come from.
type CorpusConfig struct {
	Source           string `yaml:"source"`
	TrainingDir      string `yaml:"trainingDir"`
	TestingDir       string `yaml:"testingDir"`
	HoldoutPerAuthor int    `yaml:"holdoutPerAuthor"`
	Seed             int64  `yaml:"seed"`
}

// PostgresConfig holds PostgreSQL connection parameters for the book store.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
	ConnectAttempts int           `yaml:"connectAttempts"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr            string `yaml:"addr"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	PoolSize        int    `yaml:"poolSize"`
	ConnectAttempts int    `yaml:"connectAttempts"`
}

// CacheConfig selects the memoization backend for extracted features.
type CacheConfig struct {
	Backend   string        `yaml:"backend"`
	BadgerDir string        `yaml:"badgerDir"`
	TTL       time.Duration `yaml:"ttl"`
}

// KafkaConfig holds broker settings for extraction events.
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Group   string   `yaml:"group"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. Missing values keep their defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
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
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Features: FeaturesConfig{
			Extractor:       "frequencies",
			Tokenizer:       "basic",
			FillToken:       "<unk>",
			HashBuckets:     4096,
			EntropyWindow:   1000,
			PairwiseWeights: []float64{0.1, 0.2, 0.4, 0.2, 0.1},
			Workers:         1,
		},
		Corpus: CorpusConfig{
			Source:           "dir",
			HoldoutPerAuthor: 1,
			Seed:             1,
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "books",
			User:            "books",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
			ConnectAttempts: 3,
		},
		Redis: RedisConfig{
			Addr:            "localhost:6379",
			PoolSize:        10,
			ConnectAttempts: 3,
		},
		Cache: CacheConfig{
			Backend:   "none",
			BadgerDir: ".features-cache",
			TTL:       24 * time.Hour,
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "features-extracted",
			Group:   "featurize-events",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Port: 9090,
		},
	}
}

// Validate rejects parameters that would otherwise fail later at extraction
// time.
func (c *Config) Validate() error {
	switch c.Features.Extractor {
	case "vocabulary", "frequencies", "series", "entropies", "pairwise":
	default:
		return apperrors.Newf(apperrors.ErrConfiguration, "unknown extractor %q", c.Features.Extractor)
	}
	switch c.Features.Tokenizer {
	case "basic", "stemming", "filtering", "collapsing", "hashing":
	default:
		return apperrors.Newf(apperrors.ErrConfiguration, "unknown tokenizer %q", c.Features.Tokenizer)
	}
	if (c.Features.Tokenizer == "filtering" || c.Features.Tokenizer == "collapsing") && len(c.Features.Vocabulary) == 0 {
		return apperrors.Newf(apperrors.ErrConfiguration, "tokenizer %q needs a vocabulary", c.Features.Tokenizer)
	}
	if c.Features.EntropyWindow <= 0 {
		return apperrors.Newf(apperrors.ErrConfiguration, "entropy window must be positive, got %d", c.Features.EntropyWindow)
	}
	if n := len(c.Features.PairwiseWeights); n == 0 || n%2 == 0 {
		return apperrors.Newf(apperrors.ErrConfiguration, "pairwise weights need an odd length, got %d", n)
	}
	if n := len(c.Features.Prune); n > 0 {
		if n != 2 {
			return apperrors.Newf(apperrors.ErrConfiguration, "prune needs a low and a high quantile, got %d values", n)
		}
		if low, high := c.Features.Prune[0], c.Features.Prune[1]; !(0 < low && low < high && high < 1) {
			return apperrors.Newf(apperrors.ErrConfiguration, "prune quantiles must satisfy 0 < low < high < 1, got %g and %g", low, high)
		}
	}
	if c.Features.Workers < 1 {
		return apperrors.Newf(apperrors.ErrConfiguration, "workers must be at least 1, got %d", c.Features.Workers)
	}
	switch c.Cache.Backend {
	case "none", "memory", "redis", "badger":
	default:
		return apperrors.Newf(apperrors.ErrConfiguration, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Corpus.Source {
	case "dir", "postgres":
	default:
		return apperrors.Newf(apperrors.ErrConfiguration, "unknown corpus source %q", c.Corpus.Source)
	}
	return nil
}

// applyEnvOverrides reads AF_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AF_FEATURES_EXTRACTOR"); v != "" {
		cfg.Features.Extractor = v
	}
	if v := os.Getenv("AF_FEATURES_TOKENIZER"); v != "" {
		cfg.Features.Tokenizer = v
	}
	if v := os.Getenv("AF_FEATURES_VOCABULARY"); v != "" {
		cfg.Features.Vocabulary = strings.Split(v, ",")
	}
	if v := os.Getenv("AF_FEATURES_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Features.Workers = n
		}
	}
	if v := os.Getenv("AF_FEATURES_ENTROPY_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Features.EntropyWindow = n
		}
	}
	if v := os.Getenv("AF_FEATURES_HASH_BUCKETS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Features.HashBuckets = n
		}
	}
	if v := os.Getenv("AF_FEATURES_PAIRWISE_WEIGHTS"); v != "" {
		if weights, ok := parseFloats(v); ok {
			cfg.Features.PairwiseWeights = weights
		}
	}
	if v := os.Getenv("AF_FEATURES_PRUNE"); v != "" {
		if bounds, ok := parseFloats(v); ok {
			cfg.Features.Prune = bounds
		}
	}
	if v := os.Getenv("AF_CORPUS_SOURCE"); v != "" {
		cfg.Corpus.Source = v
	}
	if v := os.Getenv("AF_CORPUS_TRAINING_DIR"); v != "" {
		cfg.Corpus.TrainingDir = v
	}
	if v := os.Getenv("AF_CORPUS_TESTING_DIR"); v != "" {
		cfg.Corpus.TestingDir = v
	}
	if v := os.Getenv("AF_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("AF_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("AF_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("AF_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("AF_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("AF_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("AF_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("AF_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("AF_CACHE_BADGER_DIR"); v != "" {
		cfg.Cache.BadgerDir = v
	}
	if v := os.Getenv("AF_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
		cfg.Kafka.Enabled = true
	}
	if v := os.Getenv("AF_KAFKA_GROUP"); v != "" {
		cfg.Kafka.Group = v
	}
	if v := os.Getenv("AF_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("AF_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("AF_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
}

func parseFloats(v string) ([]float64, bool) {
	parts := strings.Split(v, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(f) {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}
