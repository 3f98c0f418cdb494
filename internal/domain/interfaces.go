package domain

import (
	"context"
)

// Input is implemented by every calculator input.
type Input interface {
	Fields() []NamedValue
	Validate() error
}

// Scorer computes the four health scores for a single subject
type Scorer interface {
	BiologicalAge(ctx context.Context, in BioAgeInput) (*BioAgeResult, error)
	CardiovascularRisk(ctx context.Context, in CardioInput) (*CardioResult, error)
	MetabolicHealth(ctx context.Context, in MetabolicInput) (*MetabolicResult, error)
	BodyComposition(ctx context.Context, in BodyCompInput) (*BodyCompResult, error)
}

// CacheKey identifies a memoized result: the calculator and the exact input
// value it was computed from.
type CacheKey struct {
	Kind  CalculatorKind
	Input any
}

// CacheKeyer is implemented by inputs holding optional pointer fields.
// CacheInput returns a comparable value that is equal for equal inputs.
type CacheKeyer interface {
	CacheInput() any
}

// NewCacheKey builds the cache key of an input computed by kind.
func NewCacheKey(kind CalculatorKind, in Input) CacheKey {
	if k, ok := in.(CacheKeyer); ok {
		return CacheKey{Kind: kind, Input: k.CacheInput()}
	}
	return CacheKey{Kind: kind, Input: in}
}

// ResultCache stores computed results keyed by calculator and input
type ResultCache interface {
	Get(key CacheKey) (any, bool)
	Add(key CacheKey, value any) bool
	Len() int
	Purge()
}

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetConfig() *Config
	Validate() error
	IsProduction() bool
}
