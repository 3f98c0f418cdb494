package domain

import (
	"time"
)

// Config represents the main application configuration
type Config struct {
	Environment string        `mapstructure:"environment"`
	Logging     LoggingConfig `mapstructure:"logging"`
	Cache       CacheConfig   `mapstructure:"cache"`
	Batch       BatchConfig   `mapstructure:"batch"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json", "text"
	Output string `mapstructure:"output"` // "stdout", "stderr" or a file path
}

// CacheConfig represents the in-process result cache configuration
type CacheConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	MaxEntries int           `mapstructure:"max_entries"`
	TTL        time.Duration `mapstructure:"ttl"` // zero keeps entries until evicted
}

// BatchConfig represents batch evaluation configuration
type BatchConfig struct {
	MaxConcurrency int `mapstructure:"max_concurrency"`
}
