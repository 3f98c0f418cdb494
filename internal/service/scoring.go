package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/chronos-health-scores/internal/calculator"
	"github.com/chronos-health-scores/internal/domain"
	"github.com/chronos-health-scores/internal/logging"
)

const defaultMaxConcurrency = 4

// ScoringService runs the health score calculators with logging, advisory
// range checks and an optional result cache
type ScoringService struct {
	logger         *logrus.Logger
	cache          domain.ResultCache
	maxConcurrency int

	statsMu sync.Mutex
	stats   Stats
}

var _ domain.Scorer = (*ScoringService)(nil)

// Option configures a ScoringService
type Option func(*ScoringService)

// WithCache replaces the cache built from the configuration.
func WithCache(cache domain.ResultCache) Option {
	return func(s *ScoringService) {
		s.cache = cache
	}
}

// WithMaxConcurrency overrides the batch concurrency limit.
func WithMaxConcurrency(n int) Option {
	return func(s *ScoringService) {
		if n > 0 {
			s.maxConcurrency = n
		}
	}
}

// NewScoringService creates a new scoring service
func NewScoringService(logger *logrus.Logger, cfg *domain.Config, opts ...Option) (*ScoringService, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	s := &ScoringService{
		logger:         logger,
		maxConcurrency: defaultMaxConcurrency,
		stats:          Stats{LastReset: time.Now()},
	}

	if cfg != nil {
		cache, err := NewResultCache(cfg.Cache)
		if err != nil {
			return nil, err
		}
		s.cache = cache
		if cfg.Batch.MaxConcurrency > 0 {
			s.maxConcurrency = cfg.Batch.MaxConcurrency
		}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// BiologicalAge computes the biological age estimate
func (s *ScoringService) BiologicalAge(ctx context.Context, in domain.BioAgeInput) (*domain.BioAgeResult, error) {
	res, _, _, err := compute(ctx, s, domain.KindBioAge, in, calculator.ComputeBiologicalAge, (*domain.BioAgeResult).Clone)
	return res, err
}

// CardiovascularRisk computes the 10-year cardiovascular risk
func (s *ScoringService) CardiovascularRisk(ctx context.Context, in domain.CardioInput) (*domain.CardioResult, error) {
	res, _, _, err := compute(ctx, s, domain.KindCardiovascular, in, calculator.ComputeCardiovascularRisk, (*domain.CardioResult).Clone)
	return res, err
}

// MetabolicHealth computes the metabolic health score
func (s *ScoringService) MetabolicHealth(ctx context.Context, in domain.MetabolicInput) (*domain.MetabolicResult, error) {
	res, _, _, err := compute(ctx, s, domain.KindMetabolic, in, calculator.ComputeMetabolicHealth, (*domain.MetabolicResult).Clone)
	return res, err
}

// BodyComposition computes the body composition analysis
func (s *ScoringService) BodyComposition(ctx context.Context, in domain.BodyCompInput) (*domain.BodyCompResult, error) {
	res, _, _, err := compute(ctx, s, domain.KindBodyComposition, in, calculator.ComputeBodyComposition, (*domain.BodyCompResult).Clone)
	return res, err
}

// compute runs one calculator through the cache and returns the result with
// its range warnings. Results handed out are always clones so callers cannot
// mutate cached entries.
func compute[I domain.Input, R any](
	ctx context.Context,
	s *ScoringService,
	kind domain.CalculatorKind,
	in I,
	fn func(I) (*R, error),
	clone func(*R) *R,
) (*R, []RangeWarning, bool, error) {
	if err := ctx.Err(); err != nil {
		s.incrementStat("error_count")
		return nil, nil, false, err
	}
	s.incrementStat("evaluations")

	log := logging.Entry(ctx, s.logger).WithField("calculator", kind)

	warnings := CheckRanges(kind, in)
	if len(warnings) > 0 {
		s.addStat("range_warnings", int64(len(warnings)))
		for _, w := range warnings {
			log.WithFields(logrus.Fields{
				"field": w.Field,
				"value": w.Value,
				"min":   w.Min,
				"max":   w.Max,
			}).Warn("Input value outside expected range")
		}
	}

	key := domain.NewCacheKey(kind, in)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			if res, ok := cached.(*R); ok {
				s.incrementStat("cache_hits")
				log.Debug("Cache hit")
				return clone(res), warnings, true, nil
			}
		}
		s.incrementStat("cache_misses")
	}

	start := time.Now()
	res, err := fn(in)
	if err != nil {
		s.incrementStat("error_count")
		log.WithError(err).Warn("Evaluation rejected")
		return nil, nil, false, err
	}

	if s.cache != nil {
		s.cache.Add(key, res)
	}

	log.WithField("duration", time.Since(start)).Debug("Evaluation completed")
	return clone(res), warnings, false, nil
}

// Evaluate decodes the request input for its calculator and runs it. The
// response always carries an ID: the request's, or a generated one.
func (s *ScoringService) Evaluate(ctx context.Context, req Request) Response {
	start := time.Now()

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}
	ctx = logging.WithEvaluationID(ctx, id)
	resp := Response{ID: id}

	kind, err := domain.ParseCalculatorKind(req.Calculator)
	if err != nil {
		s.incrementStat("error_count")
		resp.Error = s.evaluationError(id, err)
		resp.Duration = time.Since(start)
		return resp
	}
	resp.Calculator = kind

	switch kind {
	case domain.KindBioAge:
		resp.Result, resp.Warnings, resp.Cached, err = run(ctx, s, kind, req.Input, calculator.ComputeBiologicalAge, (*domain.BioAgeResult).Clone)
	case domain.KindCardiovascular:
		resp.Result, resp.Warnings, resp.Cached, err = run(ctx, s, kind, req.Input, calculator.ComputeCardiovascularRisk, (*domain.CardioResult).Clone)
	case domain.KindMetabolic:
		resp.Result, resp.Warnings, resp.Cached, err = run(ctx, s, kind, req.Input, calculator.ComputeMetabolicHealth, (*domain.MetabolicResult).Clone)
	case domain.KindBodyComposition:
		resp.Result, resp.Warnings, resp.Cached, err = run(ctx, s, kind, req.Input, calculator.ComputeBodyComposition, (*domain.BodyCompResult).Clone)
	}

	if err != nil {
		resp.Result = nil
		resp.Error = s.evaluationError(id, err)
	}
	resp.Duration = time.Since(start)
	return resp
}

// run decodes the raw input into I and computes it.
func run[I domain.Input, R any](
	ctx context.Context,
	s *ScoringService,
	kind domain.CalculatorKind,
	raw json.RawMessage,
	fn func(I) (*R, error),
	clone func(*R) *R,
) (any, []RangeWarning, bool, error) {
	var in I
	if err := DecodeInput(raw, &in); err != nil {
		s.incrementStat("error_count")
		return nil, nil, false, err
	}
	res, warnings, cached, err := compute(ctx, s, kind, in, fn, clone)
	if err != nil {
		return nil, nil, false, err
	}
	return res, warnings, cached, nil
}

// DecodeError reports a request input that could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode input: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeInput strictly decodes a JSON object into dst. Unknown fields and
// trailing data are rejected.
func DecodeInput(raw json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &DecodeError{Err: errors.New("input is required")}
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &DecodeError{Err: err}
	}
	if dec.More() {
		return &DecodeError{Err: errors.New("unexpected data after input object")}
	}
	return nil
}

// EvaluateBatch evaluates the requests concurrently, bounded by the
// configured concurrency. Responses keep the request order; per-request
// failures are reported in their response. Requests not yet started when
// ctx is done fail with a canceled error, which is also returned.
func (s *ScoringService) EvaluateBatch(ctx context.Context, reqs []Request) ([]Response, error) {
	responses := make([]Response, len(reqs))
	if len(reqs) == 0 {
		return responses, nil
	}

	s.logger.WithFields(logrus.Fields{
		"batch_size":      len(reqs),
		"max_concurrency": s.maxConcurrency,
	}).Info("Starting batch evaluation")

	g := new(errgroup.Group)
	g.SetLimit(s.maxConcurrency)

	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			responses[i] = s.canceledResponse(req, err)
			continue
		}
		g.Go(func() error {
			responses[i] = s.Evaluate(ctx, req)
			return nil
		})
	}
	_ = g.Wait()

	summary := Summarize(responses)
	s.logger.WithFields(logrus.Fields{
		"batch_size": summary.Total,
		"successful": summary.Succeeded,
		"failed":     summary.Failed,
	}).Info("Completed batch evaluation")

	return responses, ctx.Err()
}

func (s *ScoringService) canceledResponse(req Request, err error) Response {
	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}
	s.incrementStat("error_count")
	resp := Response{ID: id, Error: s.evaluationError(id, err)}
	if kind, perr := domain.ParseCalculatorKind(req.Calculator); perr == nil {
		resp.Calculator = kind
	}
	return resp
}

// evaluationError maps an error onto the response error codes.
func (s *ScoringService) evaluationError(id string, err error) *domain.EvaluationError {
	var (
		invalid *domain.InvalidInputError
		decode  *DecodeError
		code    string
		message string
	)

	switch {
	case errors.As(err, &decode):
		code, message = domain.ErrCodeDecode, "Input could not be decoded"
	case errors.As(err, &invalid), errors.Is(err, domain.ErrInvalidInput):
		code, message = domain.ErrCodeInvalidInput, "Input is outside the domain of the calculator"
	case errors.Is(err, domain.ErrUnknownCalculator):
		code, message = domain.ErrCodeUnknownCalculator, "Unknown calculator"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code, message = domain.ErrCodeCanceled, "Evaluation canceled"
	default:
		code, message = domain.ErrCodeInternal, "Evaluation failed"
	}

	s.logger.WithFields(logrus.Fields{
		"evaluation_id": id,
		"code":          code,
	}).WithError(err).Warn("Evaluation failed")

	return domain.NewEvaluationError(code, message, err.Error(), id)
}

// Stats returns scoring and cache statistics
func (s *ScoringService) Stats() Stats {
	s.statsMu.Lock()
	stats := s.stats
	s.statsMu.Unlock()

	if s.cache != nil {
		stats.CacheEntries = s.cache.Len()
	}
	return stats
}

// ResetStats clears the counters and purges the cache.
func (s *ScoringService) ResetStats() {
	s.statsMu.Lock()
	s.stats = Stats{LastReset: time.Now()}
	s.statsMu.Unlock()

	if s.cache != nil {
		s.cache.Purge()
	}
}

func (s *ScoringService) incrementStat(name string) {
	s.addStat(name, 1)
}

func (s *ScoringService) addStat(name string, n int64) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	switch name {
	case "evaluations":
		s.stats.Evaluations += n
	case "cache_hits":
		s.stats.CacheHits += n
	case "cache_misses":
		s.stats.CacheMisses += n
	case "range_warnings":
		s.stats.RangeWarnings += n
	case "error_count":
		s.stats.ErrorCount += n
	}
}
