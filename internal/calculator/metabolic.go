package calculator

import (
	"fmt"
	"strings"

	"github.com/chronos-health-scores/internal/domain"
	"github.com/chronos-health-scores/internal/rules"
	"github.com/chronos-health-scores/pkg/formula"
)

// Metabolic factor keys, in scoring order.
const (
	factorFastingGlucose     = "fastingGlucose"
	factorHbA1c              = "hba1c"
	factorInsulinSensitivity = "insulinSensitivity"
	factorTriglycerides      = "triglycerides"
	factorHDL                = "hdl"
	factorWaist              = "waistCircumference"
)

// MetabolicFactorKeys lists the six scored factors in their canonical order.
func MetabolicFactorKeys() []string {
	return []string{
		factorFastingGlucose,
		factorHbA1c,
		factorInsulinSensitivity,
		factorTriglycerides,
		factorHDL,
		factorWaist,
	}
}

const metabolicRecommendationCutoff = 6.0

type metabolicFacts map[string]domain.FactorScore

func (f metabolicFacts) below(key string) bool {
	return f[key].Score < metabolicRecommendationCutoff
}

var metabolicRecommendations = rules.MustNewEngine(
	[]rules.Rule[metabolicFacts, string]{
		{
			ID: "glycaemic",
			When: func(f metabolicFacts) bool {
				return f.below(factorFastingGlucose) || f.below(factorHbA1c)
			},
			Then: rules.Emit[metabolicFacts](
				"Consider reducing refined carbohydrates and added sugars in your diet.",
				"Aim for regular physical activity, especially after meals.",
			),
		},
		{
			ID:   "insulinSensitivity",
			When: func(f metabolicFacts) bool { return f.below(factorInsulinSensitivity) },
			Then: rules.Emit[metabolicFacts](
				"Focus on improving insulin sensitivity through weight management and resistance training.",
				"Consider time-restricted eating (intermittent fasting) after consulting with a healthcare provider.",
			),
		},
		{
			ID:   "triglycerides",
			When: func(f metabolicFacts) bool { return f.below(factorTriglycerides) },
			Then: rules.Emit[metabolicFacts](
				"Reduce intake of processed foods, refined carbs, and alcohol.",
				"Increase omega-3 fatty acids through fatty fish or supplements.",
			),
		},
		{
			ID:   "hdl",
			When: func(f metabolicFacts) bool { return f.below(factorHDL) },
			Then: rules.Emit[metabolicFacts](
				"Include more healthy fats from sources like olive oil, avocados, and nuts.",
				"Consider regular cardiovascular exercise to boost HDL levels.",
			),
		},
		{
			ID:   "waist",
			When: func(f metabolicFacts) bool { return f.below(factorWaist) },
			Then: rules.Emit[metabolicFacts](
				"Focus on reducing abdominal fat through combined diet and exercise.",
				"Consider strength training to improve body composition.",
			),
		},
	},
	rules.WithFallback[metabolicFacts](
		"Continue maintaining your current healthy lifestyle.",
		"Regular monitoring of metabolic markers is recommended even with optimal scores.",
	),
)

// ComputeMetabolicHealth scores six metabolic factors on a 0-10 scale and
// averages them into the overall metabolic health score.
func ComputeMetabolicHealth(in domain.MetabolicInput) (*domain.MetabolicResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	bmi := formula.BMI(in.Weight, in.Height)
	homa := formula.HOMAIR(in.FastingGlucose, in.FastingInsulin)

	factors := metabolicFacts{
		factorFastingGlucose:     scoreFactor(in.FastingGlucose, fastingGlucoseScore.Classify(in.FastingGlucose), fastingGlucoseInterpretation.Classify(in.FastingGlucose)),
		factorHbA1c:              scoreFactor(in.HbA1c, hba1cScore.Classify(in.HbA1c), hba1cInterpretation.Classify(in.HbA1c)),
		factorInsulinSensitivity: scoreFactor(homa, insulinSensitivityScore.Classify(homa), insulinSensitivityInterpretation.Classify(homa)),
		factorTriglycerides:      scoreFactor(in.Triglycerides, triglyceridesScore.Classify(in.Triglycerides), triglyceridesInterpretation.Classify(in.Triglycerides)),
		factorHDL:                scoreFactor(in.HDL, metabolicHDLScore.Classify(in.HDL), hdlInterpretation.Classify(in.HDL)),
		factorWaist:              scoreFactor(in.WaistCircumference, waistScore.Classify(in.WaistCircumference), waistInterpretation.Classify(in.WaistCircumference)),
	}

	var sum float64
	keys := MetabolicFactorKeys()
	for _, key := range keys {
		sum += factors[key].Score
	}
	total := sum / float64(len(keys))
	status := metabolicStatus.Classify(total)

	return &domain.MetabolicResult{
		TotalScore:                 total,
		Status:                     status,
		DisplayStatus:              status.DisplayStatus(),
		Interpretation:             fmt.Sprintf("Your metabolic health is %s.", strings.ToUpper(status.String())),
		BMI:                        bmi,
		BMICategory:                metabolicBMICategory.Classify(bmi),
		InsulinSensitivity:         homa,
		InsulinSensitivityCategory: insulinSensitivityCategory.Classify(homa),
		MetabolicFactors:           factors,
		Recommendations:            metabolicRecommendations.Evaluate(factors),
	}, nil
}

func scoreFactor(value, score float64, interpretation string) domain.FactorScore {
	return domain.FactorScore{
		Value:          value,
		Score:          score,
		Status:         factorStatus.Classify(score),
		Interpretation: interpretation,
	}
}
