package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// set from the chosen env, not from the file section itself
	Environment string
	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`
	// sentry
	SentryEnabled bool `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// prometheus metrics server
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// requests rate limits
	LoginRateLimitAllowedPerMin int `toml:"login_rate_limit_allowed_per_min"`
	// training analytics
	DefaultMaxHeartRate int `toml:"default_max_heart_rate"`
	BaselineWindowDays  int `toml:"baseline_window_days"`
	InsightsCacheTTLMin int `toml:"insights_cache_ttl_min"`
	InsightsCacheSizeMB int `toml:"insights_cache_size_mb"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var tomlFile Toml
	if _, err := toml.DecodeFile(path, &tomlFile); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := tomlFile.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env %s missing", env)
	}

	cfg.Environment = env

	if cfg.BaselineWindowDays <= 0 {
		cfg.BaselineWindowDays = 14
	}
	if cfg.DefaultMaxHeartRate <= 0 {
		cfg.DefaultMaxHeartRate = 190
	}
	if cfg.InsightsCacheTTLMin <= 0 {
		cfg.InsightsCacheTTLMin = 5
	}
	if cfg.InsightsCacheSizeMB <= 0 {
		cfg.InsightsCacheSizeMB = 10
	}

	return cfg, nil
}
