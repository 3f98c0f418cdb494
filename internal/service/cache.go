package service

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/chronos-health-scores/internal/domain"
)

// NewResultCache builds the in-memory result cache described by cfg. A
// disabled cache yields nil; a positive TTL selects the expiring LRU.
func NewResultCache(cfg domain.CacheConfig) (domain.ResultCache, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.MaxEntries <= 0 {
		return nil, fmt.Errorf("cache max entries must be positive: %d", cfg.MaxEntries)
	}

	if cfg.TTL > 0 {
		return expirable.NewLRU[domain.CacheKey, any](cfg.MaxEntries, nil, cfg.TTL), nil
	}

	cache, err := lru.New[domain.CacheKey, any](cfg.MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	return cache, nil
}
