// Package calculator implements the four health score calculators. Each
// Compute function is a stateless pipeline: validate the input, evaluate the
// formulas, classify the results through threshold tables, run the
// recommendation rules and assemble a fresh result.
package calculator

import (
	"fmt"
	"math"
	"slices"

	"github.com/chronos-health-scores/internal/domain"
	"github.com/chronos-health-scores/internal/rules"
	"github.com/chronos-health-scores/pkg/formula"
)

// bioAgeFacts are the evaluated term contributions keyed by biomarker.
type bioAgeFacts map[string]formula.TermContribution

var bioAgeTerms = formula.BioAgeTerms()

// One rule per biomarker that can age the estimate, in panel order.
var bioAgeRules = rules.MustNewEngine(bioAgeRecommendationRules())

func bioAgeRecommendationRules() []rules.Rule[bioAgeFacts, string] {
	out := make([]rules.Rule[bioAgeFacts, string], 0, len(bioAgeTerms))
	for _, term := range bioAgeTerms {
		field := term.Field
		out = append(out, rules.Rule[bioAgeFacts, string]{
			ID: field,
			When: func(f bioAgeFacts) bool {
				return f[field].Delta > 0
			},
			Then: func(f bioAgeFacts) []string {
				return []string{fmt.Sprintf("%s needs improvement: %s", biomarkerLabel(field), bioAgeDescriptions[field])}
			},
		})
	}
	return out
}

// ComputeBiologicalAge estimates biological age by adding per-biomarker
// contributions to the chronological age. Gender does not affect the
// estimate.
func ComputeBiologicalAge(in domain.BioAgeInput) (*domain.BioAgeResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	values := make(map[string]float64, len(in.Fields()))
	for _, f := range in.Fields() {
		values[f.Name] = f.Value
	}

	contributions, delta := formula.BioAgeDelta(bioAgeTerms, values)
	bioAge := formula.Round(in.Age+delta, 1)
	diff := formula.Round(bioAge-in.Age, 1)

	facts := make(bioAgeFacts, len(contributions))
	scores := make(map[string]domain.FactorScore, len(contributions)+len(bioAgePanelOnly))
	for _, c := range contributions {
		facts[c.Field] = c
		impact := impactOf(c.Delta)
		scores[c.Field] = domain.FactorScore{
			Value:          c.Value,
			Score:          math.Abs(c.Delta),
			Category:       rangeLevel(c.Field, c.Value).String(),
			Status:         impactStatus(impact),
			Impact:         impact,
			Interpretation: bioAgeDescriptions[c.Field],
		}
	}

	for _, field := range bioAgePanelOnly {
		v := values[field]
		level := rangeLevel(field, v)
		status := domain.StatusGood
		if level != domain.RangeNormal {
			status = domain.StatusWarning
		}
		scores[field] = domain.FactorScore{
			Value:          v,
			Category:       level.String(),
			Status:         status,
			Impact:         domain.ImpactNeutral,
			Interpretation: panelInterpretation(field, level),
		}
	}

	return &domain.BioAgeResult{
		BioAge:           bioAge,
		ChronologicalAge: in.Age,
		AgeDifference:    diff,
		Status:           bioAgeStatus.Classify(diff),
		Interpretation:   bioAgeInterpretation.Classify(diff),
		BiomarkerScores:  scores,
		ImpactRanking:    impactRanking(contributions),
		Recommendations:  bioAgeRules.Evaluate(facts),
	}, nil
}

func impactOf(delta float64) domain.Impact {
	switch {
	case delta > 0:
		return domain.ImpactNegative
	case delta < 0:
		return domain.ImpactPositive
	default:
		return domain.ImpactNeutral
	}
}

func impactStatus(impact domain.Impact) domain.Status {
	switch impact {
	case domain.ImpactPositive:
		return domain.StatusGood
	case domain.ImpactNegative:
		return domain.StatusWarning
	default:
		return domain.StatusNeutral
	}
}

// impactRanking orders the biomarkers that moved the estimate by the size of
// their contribution. Ties keep panel order.
func impactRanking(contributions []formula.TermContribution) []string {
	moved := make([]formula.TermContribution, 0, len(contributions))
	for _, c := range contributions {
		if c.Delta != 0 {
			moved = append(moved, c)
		}
	}
	slices.SortStableFunc(moved, func(a, b formula.TermContribution) int {
		x, y := math.Abs(a.Delta), math.Abs(b.Delta)
		switch {
		case x > y:
			return -1
		case x < y:
			return 1
		default:
			return 0
		}
	})

	out := make([]string, len(moved))
	for i, c := range moved {
		out[i] = c.Field
	}
	return out
}

func biomarkerLabel(field string) string {
	if r, ok := domain.RangeFor(domain.KindBioAge, field); ok {
		return r.Label
	}
	return field
}

func rangeLevel(field string, value float64) domain.RangeStatus {
	r, ok := domain.RangeFor(domain.KindBioAge, field)
	if !ok {
		return domain.RangeNormal
	}
	return r.Assess(value).Level
}

func panelInterpretation(field string, level domain.RangeStatus) string {
	r, ok := domain.RangeFor(domain.KindBioAge, field)
	if !ok {
		return ""
	}
	if level == domain.RangeNormal {
		return fmt.Sprintf("%s is within the normal range (%g-%g %s).", r.Label, r.NormalMin, r.NormalMax, r.Unit)
	}
	return fmt.Sprintf("%s is %s relative to the normal range (%g-%g %s).", r.Label, level, r.NormalMin, r.NormalMax, r.Unit)
}
