package service

import (
	"encoding/json"
	"time"

	"github.com/chronos-health-scores/internal/domain"
)

// Request asks for one calculator to be run on a JSON-encoded input.
type Request struct {
	ID         string          `json:"id,omitempty" yaml:"id,omitempty"`
	Calculator string          `json:"calculator" yaml:"calculator"`
	Input      json.RawMessage `json:"input" yaml:"-"`
}

// Response carries either the result of a request or its error.
type Response struct {
	ID         string                  `json:"id" yaml:"id"`
	Calculator domain.CalculatorKind   `json:"calculator,omitempty" yaml:"calculator,omitempty"`
	Result     any                     `json:"result,omitempty" yaml:"result,omitempty"`
	Warnings   []RangeWarning          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error      *domain.EvaluationError `json:"error,omitempty" yaml:"error,omitempty"`
	Cached     bool                    `json:"cached" yaml:"cached"`
	Duration   time.Duration           `json:"duration_ns" yaml:"durationNs"`
}

// Failed reports whether the request produced an error.
func (r Response) Failed() bool {
	return r.Error != nil
}

// RangeWarning flags an input value outside the range the entry form
// accepts. The value is still scored.
type RangeWarning struct {
	Field   string  `json:"field" yaml:"field"`
	Label   string  `json:"label" yaml:"label"`
	Value   float64 `json:"value" yaml:"value"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Unit    string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Message string  `json:"message" yaml:"message"`
}

// Stats represents scoring and cache statistics
type Stats struct {
	Evaluations   int64     `json:"evaluations"`
	CacheHits     int64     `json:"cache_hits"`
	CacheMisses   int64     `json:"cache_misses"`
	CacheEntries  int       `json:"cache_entries"`
	RangeWarnings int64     `json:"range_warnings"`
	ErrorCount    int64     `json:"error_count"`
	LastReset     time.Time `json:"last_reset"`
}

// BatchSummary tallies a batch of responses.
type BatchSummary struct {
	Total     int `json:"total" yaml:"total"`
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Summarize counts the successful and failed responses.
func Summarize(responses []Response) BatchSummary {
	s := BatchSummary{Total: len(responses)}
	for _, r := range responses {
		if r.Failed() {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}
