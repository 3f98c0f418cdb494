package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chronos-health-scores/internal/domain"
)

// MockResultCache is a mock implementation of the ResultCache interface
type MockResultCache struct {
	mock.Mock
}

func (m *MockResultCache) Get(key domain.CacheKey) (any, bool) {
	args := m.Called(key)
	return args.Get(0), args.Bool(1)
}

func (m *MockResultCache) Add(key domain.CacheKey, value any) bool {
	args := m.Called(key, value)
	return args.Bool(0)
}

func (m *MockResultCache) Len() int {
	return m.Called().Int(0)
}

func (m *MockResultCache) Purge() {
	m.Called()
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel) // Suppress logs during testing
	return logger
}

func testConfig() *domain.Config {
	return &domain.Config{
		Cache: domain.CacheConfig{Enabled: true, MaxEntries: 16},
		Batch: domain.BatchConfig{MaxConcurrency: 2},
	}
}

func newTestService(t *testing.T, cfg *domain.Config, opts ...Option) *ScoringService {
	t.Helper()
	s, err := NewScoringService(testLogger(), cfg, opts...)
	require.NoError(t, err)
	return s
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestNewResultCache(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		cache, err := NewResultCache(domain.CacheConfig{Enabled: false})
		require.NoError(t, err)
		assert.Nil(t, cache)
	})

	t.Run("Plain_LRU_Evicts_Oldest", func(t *testing.T) {
		cache, err := NewResultCache(domain.CacheConfig{Enabled: true, MaxEntries: 2})
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			cache.Add(domain.CacheKey{Kind: domain.KindBioAge, Input: i}, i)
		}
		assert.Equal(t, 2, cache.Len())
		_, ok := cache.Get(domain.CacheKey{Kind: domain.KindBioAge, Input: 0})
		assert.False(t, ok)
		v, ok := cache.Get(domain.CacheKey{Kind: domain.KindBioAge, Input: 2})
		assert.True(t, ok)
		assert.Equal(t, 2, v)
	})

	t.Run("Expiring_LRU", func(t *testing.T) {
		cache, err := NewResultCache(domain.CacheConfig{Enabled: true, MaxEntries: 4, TTL: time.Hour})
		require.NoError(t, err)

		cache.Add(domain.CacheKey{Kind: domain.KindMetabolic, Input: "a"}, 1)
		v, ok := cache.Get(domain.CacheKey{Kind: domain.KindMetabolic, Input: "a"})
		assert.True(t, ok)
		assert.Equal(t, 1, v)

		cache.Purge()
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("Invalid_Size", func(t *testing.T) {
		_, err := NewResultCache(domain.CacheConfig{Enabled: true, MaxEntries: 0})
		assert.Error(t, err)
	})
}

func TestScoringService_CacheHit(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, testConfig())

	first, err := s.BiologicalAge(ctx, domain.DefaultBioAgeInput())
	require.NoError(t, err)

	// Mutating a returned result must not leak into the cache.
	first.Recommendations = append(first.Recommendations, "tampered")
	first.BiomarkerScores["glucose"] = domain.FactorScore{Score: -1}

	second, err := s.BiologicalAge(ctx, domain.DefaultBioAgeInput())
	require.NoError(t, err)
	assert.NotContains(t, second.Recommendations, "tampered")
	assert.NotEqual(t, -1.0, second.BiomarkerScores["glucose"].Score)
	assert.Equal(t, first.BioAge, second.BioAge)

	stats := s.Stats()
	assert.Equal(t, int64(2), stats.Evaluations)
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(1), stats.CacheMisses)
	assert.Equal(t, 1, stats.CacheEntries)

	s.ResetStats()
	stats = s.Stats()
	assert.Zero(t, stats.Evaluations)
	assert.Zero(t, stats.CacheEntries)
}

func TestScoringService_DistinctInputsAreCachedSeparately(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, testConfig())

	in := domain.DefaultCardioInput()
	base, err := s.CardiovascularRisk(ctx, in)
	require.NoError(t, err)

	in.Smoker = true
	smoker, err := s.CardiovascularRisk(ctx, in)
	require.NoError(t, err)

	assert.Greater(t, smoker.Points.Total, base.Points.Total)
	assert.Equal(t, int64(2), s.Stats().CacheMisses)
}

func TestScoringService_WithMockCache(t *testing.T) {
	ctx := context.Background()
	in := domain.DefaultCardioInput()
	key := domain.CacheKey{Kind: domain.KindCardiovascular, Input: in}

	t.Run("Miss_Populates_Cache", func(t *testing.T) {
		cache := new(MockResultCache)
		cache.On("Get", key).Return(nil, false).Once()
		cache.On("Add", key, mock.AnythingOfType("*domain.CardioResult")).Return(false).Once()

		s := newTestService(t, nil, WithCache(cache))
		res, err := s.CardiovascularRisk(ctx, in)
		require.NoError(t, err)
		assert.NotNil(t, res)

		cache.AssertExpectations(t)
	})

	t.Run("Hit_Skips_Computation", func(t *testing.T) {
		stored := &domain.CardioResult{TenYearRisk: 42, Status: domain.StatusDanger}
		cache := new(MockResultCache)
		cache.On("Get", key).Return(stored, true).Once()

		s := newTestService(t, nil, WithCache(cache))
		res, err := s.CardiovascularRisk(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 42.0, res.TenYearRisk)
		assert.NotSame(t, stored, res)

		cache.AssertExpectations(t)
		cache.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("Foreign_Value_Is_A_Miss", func(t *testing.T) {
		cache := new(MockResultCache)
		cache.On("Get", key).Return("not a result", true).Once()
		cache.On("Add", key, mock.Anything).Return(false).Once()

		s := newTestService(t, nil, WithCache(cache))
		_, err := s.CardiovascularRisk(ctx, in)
		require.NoError(t, err)

		cache.AssertExpectations(t)
	})

	t.Run("Errors_Are_Not_Cached", func(t *testing.T) {
		bad := in
		bad.Gender = "other"
		badKey := domain.CacheKey{Kind: domain.KindCardiovascular, Input: bad}

		cache := new(MockResultCache)
		cache.On("Get", badKey).Return(nil, false).Once()
		cache.On("Len").Return(0).Once()

		s := newTestService(t, nil, WithCache(cache))
		_, err := s.CardiovascularRisk(ctx, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		stats := s.Stats()
		assert.Equal(t, int64(1), stats.ErrorCount)
		assert.Equal(t, int64(1), stats.CacheMisses)
		assert.Zero(t, stats.CacheEntries)

		cache.AssertExpectations(t)
		cache.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("Stats_And_Reset_Use_Cache", func(t *testing.T) {
		cache := new(MockResultCache)
		cache.On("Len").Return(7).Once()
		cache.On("Purge").Return().Once()
		cache.On("Len").Return(0).Once()

		s := newTestService(t, nil, WithCache(cache))
		assert.Equal(t, 7, s.Stats().CacheEntries)

		s.ResetStats()
		assert.Zero(t, s.Stats().CacheEntries)

		cache.AssertExpectations(t)
	})
}

func TestScoringService_MeasuredBodyFatCacheKey(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, testConfig())

	measured := func(pct float64) domain.BodyCompInput {
		in := domain.DefaultBodyCompInput()
		in.BodyFatMethod = domain.BodyFatMeasured
		in.BodyFatPercentage = &pct
		return in
	}

	first, err := s.BodyComposition(ctx, measured(22))
	require.NoError(t, err)
	second, err := s.BodyComposition(ctx, measured(22))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := s.BodyComposition(ctx, measured(0))
	require.NoError(t, err)
	assert.Equal(t, 5.0, other.BodyFatPercentage)

	stats := s.Stats()
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(2), stats.CacheMisses)
	assert.Equal(t, 2, stats.CacheEntries)
}

func TestScoringService_CacheDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = false
	s := newTestService(t, cfg)

	for i := 0; i < 2; i++ {
		_, err := s.MetabolicHealth(context.Background(), domain.DefaultMetabolicInput())
		require.NoError(t, err)
	}

	stats := s.Stats()
	assert.Equal(t, int64(2), stats.Evaluations)
	assert.Zero(t, stats.CacheHits)
	assert.Zero(t, stats.CacheMisses)
}

func TestScoringService_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestService(t, testConfig())
	_, err := s.BodyComposition(ctx, domain.DefaultBodyCompInput())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScoringService_Evaluate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		req        Request
		wantKind   domain.CalculatorKind
		wantCode   string
		wantResult any
	}{
		{
			name:       "bio age",
			req:        Request{ID: "r1", Calculator: "bio-age", Input: mustJSON(t, domain.DefaultBioAgeInput())},
			wantKind:   domain.KindBioAge,
			wantResult: &domain.BioAgeResult{},
		},
		{
			name:       "cardio alias",
			req:        Request{ID: "r2", Calculator: "cardio", Input: mustJSON(t, domain.DefaultCardioInput())},
			wantKind:   domain.KindCardiovascular,
			wantResult: &domain.CardioResult{},
		},
		{
			name:       "metabolic",
			req:        Request{ID: "r3", Calculator: "metabolic-health", Input: mustJSON(t, domain.DefaultMetabolicInput())},
			wantKind:   domain.KindMetabolic,
			wantResult: &domain.MetabolicResult{},
		},
		{
			name:       "body composition",
			req:        Request{ID: "r4", Calculator: "body-comp", Input: mustJSON(t, domain.DefaultBodyCompInput())},
			wantKind:   domain.KindBodyComposition,
			wantResult: &domain.BodyCompResult{},
		},
		{
			name:     "unknown calculator",
			req:      Request{ID: "r5", Calculator: "kidney", Input: json.RawMessage(`{}`)},
			wantCode: domain.ErrCodeUnknownCalculator,
		},
		{
			name:     "malformed json",
			req:      Request{ID: "r6", Calculator: "metabolic", Input: json.RawMessage(`{"hdl":`)},
			wantKind: domain.KindMetabolic,
			wantCode: domain.ErrCodeDecode,
		},
		{
			name:     "unknown field",
			req:      Request{ID: "r7", Calculator: "metabolic", Input: json.RawMessage(`{"hdl": 50, "ldl": 100}`)},
			wantKind: domain.KindMetabolic,
			wantCode: domain.ErrCodeDecode,
		},
		{
			name:     "missing input",
			req:      Request{ID: "r8", Calculator: "bio-age"},
			wantKind: domain.KindBioAge,
			wantCode: domain.ErrCodeDecode,
		},
		{
			name:     "unknown gender",
			req:      Request{ID: "r9", Calculator: "cardiovascular-risk", Input: json.RawMessage(`{"age": 50, "gender": "other", "totalCholesterol": 180, "hdl": 50, "systolicBP": 120}`)},
			wantKind: domain.KindCardiovascular,
			wantCode: domain.ErrCodeInvalidInput,
		},
		{
			name: "navy estimate undefined",
			req: Request{ID: "r10", Calculator: "body-composition", Input: json.RawMessage(
				`{"age": 30, "gender": "male", "weight": 80, "height": 180, "waistCircumference": 30, "neckCircumference": 40, "hipCircumference": 95}`)},
			wantKind: domain.KindBodyComposition,
			wantCode: domain.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, testConfig())
			resp := s.Evaluate(ctx, tt.req)

			assert.Equal(t, tt.req.ID, resp.ID)
			assert.Equal(t, tt.wantKind, resp.Calculator)

			if tt.wantCode != "" {
				require.NotNil(t, resp.Error)
				assert.True(t, resp.Failed())
				assert.Equal(t, tt.wantCode, resp.Error.Code)
				assert.Equal(t, tt.req.ID, resp.Error.EvaluationID)
				assert.NotEmpty(t, resp.Error.Details)
				assert.Nil(t, resp.Result)
				return
			}

			require.Nil(t, resp.Error)
			assert.IsType(t, tt.wantResult, resp.Result)
			assert.Empty(t, resp.Warnings)
			assert.False(t, resp.Cached)
		})
	}
}

func TestScoringService_Evaluate_GeneratesID(t *testing.T) {
	s := newTestService(t, testConfig())

	resp := s.Evaluate(context.Background(), Request{Calculator: "kidney"})
	assert.Len(t, resp.ID, 36)
	require.NotNil(t, resp.Error)
	assert.Equal(t, resp.ID, resp.Error.EvaluationID)
}

func TestScoringService_Evaluate_CachedAndWarnings(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, testConfig())

	in := domain.DefaultBioAgeInput()
	in.Glucose = 350
	req := Request{Calculator: "bio-age", Input: mustJSON(t, in)}

	first := s.Evaluate(ctx, req)
	require.Nil(t, first.Error)
	require.Len(t, first.Warnings, 1)
	assert.Equal(t, "glucose", first.Warnings[0].Field)
	assert.Equal(t, 300.0, first.Warnings[0].Max)
	assert.False(t, first.Cached)

	second := s.Evaluate(ctx, req)
	require.Nil(t, second.Error)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Warnings, second.Warnings)
	assert.NotEqual(t, first.ID, second.ID)

	assert.Equal(t, int64(2), s.Stats().RangeWarnings)
}

func TestScoringService_EvaluateBatch(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, testConfig())

	var reqs []Request
	for i := 0; i < 12; i++ {
		in := domain.DefaultMetabolicInput()
		in.FastingGlucose = float64(70 + 5*i)
		reqs = append(reqs, Request{ID: fmt.Sprintf("m%d", i), Calculator: "metabolic", Input: mustJSON(t, in)})
	}
	reqs = append(reqs, Request{ID: "bad", Calculator: "unknown", Input: json.RawMessage(`{}`)})

	responses, err := s.EvaluateBatch(ctx, reqs)
	require.NoError(t, err)
	require.Len(t, responses, len(reqs))

	for i, resp := range responses {
		assert.Equal(t, reqs[i].ID, resp.ID)
	}
	for i := 0; i < 12; i++ {
		res, ok := responses[i].Result.(*domain.MetabolicResult)
		require.True(t, ok)
		assert.Equal(t, float64(70+5*i), res.MetabolicFactors["fastingGlucose"].Value)
	}
	assert.Equal(t, domain.ErrCodeUnknownCalculator, responses[12].Error.Code)

	summary := Summarize(responses)
	assert.Equal(t, BatchSummary{Total: 13, Succeeded: 12, Failed: 1}, summary)
}

func TestScoringService_EvaluateBatch_Empty(t *testing.T) {
	s := newTestService(t, testConfig())

	responses, err := s.EvaluateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, responses)
}

func TestScoringService_EvaluateBatch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestService(t, testConfig())
	reqs := []Request{
		{ID: "a", Calculator: "bio-age", Input: mustJSON(t, domain.DefaultBioAgeInput())},
		{ID: "b", Calculator: "cardio", Input: mustJSON(t, domain.DefaultCardioInput())},
	}

	responses, err := s.EvaluateBatch(ctx, reqs)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, responses, 2)
	for i, resp := range responses {
		assert.Equal(t, reqs[i].ID, resp.ID)
		require.NotNil(t, resp.Error)
		assert.Equal(t, domain.ErrCodeCanceled, resp.Error.Code)
	}
	assert.Equal(t, domain.KindCardiovascular, responses[1].Calculator)
}

func TestWithMaxConcurrency(t *testing.T) {
	s := newTestService(t, testConfig(), WithMaxConcurrency(8))
	assert.Equal(t, 8, s.maxConcurrency)

	s = newTestService(t, testConfig(), WithMaxConcurrency(0))
	assert.Equal(t, 2, s.maxConcurrency)

	s = newTestService(t, nil)
	assert.Equal(t, defaultMaxConcurrency, s.maxConcurrency)
	assert.Nil(t, s.cache)
}
