package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronos-health-scores/internal/domain"
)

func TestCheckRanges_DefaultsAreInRange(t *testing.T) {
	tests := []struct {
		kind domain.CalculatorKind
		in   domain.Input
	}{
		{domain.KindBioAge, domain.DefaultBioAgeInput()},
		{domain.KindCardiovascular, domain.DefaultCardioInput()},
		{domain.KindMetabolic, domain.DefaultMetabolicInput()},
		{domain.KindBodyComposition, domain.DefaultBodyCompInput()},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			warnings := CheckRanges(tt.kind, tt.in)
			assert.NotNil(t, warnings)
			assert.Empty(t, warnings)
		})
	}
}

func TestCheckRanges_OutOfRange(t *testing.T) {
	in := domain.DefaultCardioInput()
	in.Age = 85
	in.SystolicBP = 60

	warnings := CheckRanges(domain.KindCardiovascular, in)
	require.Len(t, warnings, 2)

	assert.Equal(t, "age", warnings[0].Field)
	assert.Equal(t, 79.0, warnings[0].Max)
	assert.Equal(t, "systolicBP", warnings[1].Field)
	assert.Equal(t, 90.0, warnings[1].Min)
	assert.Equal(t, "mmHg", warnings[1].Unit)
	assert.Contains(t, warnings[1].Message, "Systolic Blood Pressure 60")
}

func TestCheckRanges_MeasuredBodyFat(t *testing.T) {
	in := domain.DefaultBodyCompInput()
	bodyFat := 70.0
	in.BodyFatPercentage = &bodyFat

	// The percentage is ignored for estimates.
	assert.Empty(t, CheckRanges(domain.KindBodyComposition, in))

	in.BodyFatMethod = domain.BodyFatMeasured
	warnings := CheckRanges(domain.KindBodyComposition, in)
	require.Len(t, warnings, 1)
	assert.Equal(t, "bodyFatPercentage", warnings[0].Field)
}

func TestAssessRanges(t *testing.T) {
	in := domain.DefaultMetabolicInput()
	in.Triglycerides = 180

	assessments := AssessRanges(domain.KindMetabolic, in)
	require.Len(t, assessments, len(in.Fields()))

	byField := make(map[string]domain.RangeAssessment)
	for _, a := range assessments {
		byField[a.Field] = a
	}

	assert.Equal(t, domain.RangeHigh, byField["triglycerides"].Level)
	assert.True(t, byField["triglycerides"].WithinForm)
	assert.Equal(t, domain.RangeNormal, byField["fastingGlucose"].Level)
	assert.Equal(t, domain.RangeNormal, byField["hdl"].Level)
}
