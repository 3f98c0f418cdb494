package service

import (
	"fmt"

	"github.com/chronos-health-scores/internal/domain"
)

// CheckRanges lists the input values that fall outside the declared form
// ranges of the calculator, in field order. Fields without a declared range
// are skipped.
func CheckRanges(kind domain.CalculatorKind, in domain.Input) []RangeWarning {
	warnings := []RangeWarning{}
	for _, f := range in.Fields() {
		r, ok := domain.RangeFor(kind, f.Name)
		if !ok || r.Contains(f.Value) {
			continue
		}
		warnings = append(warnings, RangeWarning{
			Field:   f.Name,
			Label:   r.Label,
			Value:   f.Value,
			Min:     r.InputMin,
			Max:     r.InputMax,
			Unit:    r.Unit,
			Message: fmt.Sprintf("%s %g is outside the expected range %g-%g", r.Label, f.Value, r.InputMin, r.InputMax),
		})
	}
	return warnings
}

// AssessRanges reads every input value against its declared range.
func AssessRanges(kind domain.CalculatorKind, in domain.Input) []domain.RangeAssessment {
	assessments := []domain.RangeAssessment{}
	for _, f := range in.Fields() {
		if r, ok := domain.RangeFor(kind, f.Name); ok {
			assessments = append(assessments, r.Assess(f.Value))
		}
	}
	return assessments
}
